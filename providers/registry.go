package providers

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/latchlm/latchlm/core"
)

// Settings carries the values a factory needs to build a provider.
// Empty fields mean "use the adapter default".
type Settings struct {
	APIKey  string
	BaseURL string
}

// Factory creates a provider from settings.
type Factory func(Settings) (core.Provider, error)

// Registration describes a provider adapter.
type Registration struct {
	// New builds a provider instance.
	New Factory

	// Catalog lists the models the adapter accepts. It must be usable
	// without credentials.
	Catalog core.Catalog

	// EnvVar is the environment variable holding the API key by default.
	EnvVar string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Registration)
)

// Register adds a provider adapter under name.
// It is typically called from an adapter's init function. Registering the
// same name again replaces the earlier entry.
//
//	func init() {
//	    providers.Register("gemini", providers.Registration{
//	        New:     func(s providers.Settings) (core.Provider, error) { ... },
//	        Catalog: Catalog(),
//	        EnvVar:  "GEMINI_API_KEY",
//	    })
//	}
func Register(name string, r Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = r
}

// Lookup returns the registration for name.
func Lookup(name string) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[name]
	return r, ok
}

// Create builds a provider by name.
// An unknown name yields a provider-kind *core.Error listing the available names.
func Create(name string, s Settings) (core.Provider, error) {
	r, ok := Lookup(name)
	if !ok || r.New == nil {
		return nil, core.NewProviderError(name, fmt.Sprintf("unknown provider (available: %s)", strings.Join(List(), ", ")))
	}
	return r.New(s)
}

// Models returns the model catalog of a registered provider.
func Models(name string) ([]core.ModelInfo, error) {
	r, ok := Lookup(name)
	if !ok || r.Catalog == nil {
		return nil, core.NewProviderError(name, "no model catalog registered")
	}
	return r.Catalog.Models(), nil
}

// ParseModel resolves id against the catalog of a registered provider.
func ParseModel(name, id string) (core.Model, error) {
	r, ok := Lookup(name)
	if !ok || r.Catalog == nil {
		return nil, core.NewProviderError(name, "no model catalog registered")
	}
	return r.Catalog.ParseModel(id)
}

// List returns the names of all registered providers in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a provider with the given name is registered.
func IsRegistered(name string) bool {
	_, ok := Lookup(name)
	return ok
}
