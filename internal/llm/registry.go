package llm

import "fmt"

// ProviderFactory builds a configured Provider from its environment.
type ProviderFactory func() (Provider, error)

// registry of factories, filled by each provider package's init
var providers = make(map[string]ProviderFactory)

// RegisterProvider makes a provider selectable by AI_PROVIDER. Provider
// packages call this from init, so importing one is enough to enable it.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider instantiates the provider registered under name.
func NewProvider(name string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return factory()
}
