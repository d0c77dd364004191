package quorum

import (
	"fmt"
	"strings"
)

// Query modifiers understood by every registered handler. A key query
// returns at most one model, a prefix query returns every model whose key
// starts with the given data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key and value returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair builds a Model.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers queries against a read only view of the state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter maps query paths, such as "/wallets", to handlers. Paths are
// registered once while the application is assembled and are read only
// afterwards.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every registration function with this router. Each
// extension exposes such a function that registers its buckets.
func (r QueryRouter) RegisterAll(fns ...func(QueryRouter)) {
	for _, fn := range fns {
		fn(r)
	}
}

// Register binds a handler to a path. It panics if the path does not start
// with a slash or is already taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if !strings.HasPrefix(path, "/") {
		panic(fmt.Sprintf("query path %q must start with /", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler for the path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
