package output

// TemplateStore exposes the raw message catalog to the resolver.
// Implementations must never expose a partially reloaded catalog.
type TemplateStore interface {
	// RawMessage returns the raw lines of key, or an empty slice when the key
	// is unknown.
	RawMessage(key string) []string
}

// ReloadableTemplateStore is a TemplateStore that can swap its catalog at runtime.
type ReloadableTemplateStore interface {
	TemplateStore
	Reload() error
}
