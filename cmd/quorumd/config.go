package main

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/quorum/errors"
	"gopkg.in/yaml.v3"
)

const configFile = "quorumd.yaml"

// Config is the content of the quorumd.yaml file kept in the home directory.
type Config struct {
	// ChainID is set by the init command.
	ChainID string `yaml:"chain_id"`
	// LogLevel is passed to log.AllowLevel.
	LogLevel string `yaml:"log_level"`
	// Key is the path of the private key used to sign transactions.
	Key string `yaml:"key"`
}

func defaultConfig(home string) *Config {
	return &Config{
		LogLevel: "error",
		Key:      filepath.Join(home, "priv.key"),
	}
}

// loadConfig reads the configuration of given home directory. Missing file
// or missing values fall back to defaults.
func loadConfig(home string) (*Config, error) {
	conf := defaultConfig(home)
	raw, err := ioutil.ReadFile(filepath.Join(home, configFile))
	switch {
	case os.IsNotExist(err):
		return conf, nil
	case err != nil:
		return nil, errors.Wrapf(errors.ErrInput, "cannot read config: %s", err)
	}
	if err := yaml.Unmarshal(raw, conf); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode config: %s", err)
	}
	return conf, nil
}

func (c *Config) save(home string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.MkdirAll(home, 0700); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create home: %s", err)
	}
	if err := ioutil.WriteFile(filepath.Join(home, configFile), raw, 0600); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot write config: %s", err)
	}
	return nil
}
