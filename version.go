package quorum

// Release is the semantic version of this build. Overwrite it with
// -ldflags "-X github.com/iov-one/quorum.Release=..." for tagged builds.
var Release = "v0.1.0-dev"

// GitCommit is set by build flags.
var GitCommit = ""

// Version returns the release string followed by the commit, if known.
func Version() string {
	if GitCommit == "" {
		return Release
	}
	return Release + " " + GitCommit
}
