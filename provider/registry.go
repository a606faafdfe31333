package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory constructs a Provider on demand. Construction is deferred to
// first use so that registering a provider (typically via a blank
// import) cannot fail; missing credentials surface from Get instead.
type Factory func() (Provider, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register makes a chat-completion provider available under name.
// Provider packages call this from init, so a blank import is enough
// to wire one in:
//
//	import _ "github.com/reagent-ai/reagent/githubmodels"
//
// Registering the same name twice replaces the earlier factory.
func Register(name string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = factory
}

// Get constructs the provider registered under name.
func Get(name string) (Provider, error) {
	factoriesMu.RLock()
	factory, ok := factories[name]
	factoriesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown provider %q (registered providers: %s)",
			name, strings.Join(Available(), ", "))
	}

	return factory()
}

// Available returns the registered provider names, sorted.
func Available() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a provider is registered under name.
func IsRegistered(name string) bool {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	_, ok := factories[name]
	return ok
}
