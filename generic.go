package vaultprefs

import "fmt"

// Describe validates opts like New and returns the definitions a facade built
// from them would report. It performs no storage I/O.
func Describe(opts ...Option) ([]Definition, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return (&Preferences{config: cfg}).Definitions(), nil
}

// Definitions returns the definition of every setting in display order.
// Defaults are resolved for this instance (secure screen depends on the build).
func (p *Preferences) Definitions() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, d := range registry {
		defs = append(defs, d.definition(p))
	}
	return defs
}

// Definition returns the definition for key.
func (p *Preferences) Definition(key string) (Definition, bool) {
	d, ok := lookup(key)
	if !ok {
		return Definition{}, false
	}
	return d.definition(p), true
}

// Value returns the stored-or-default value of a single setting in its
// backing representation: bool, int32, int64, string or []string.
// Legacy fallbacks apply; cross-setting gates (pause-focused, plaintext
// warning) do not.
func (p *Preferences) Value(key string) (interface{}, error) {
	d, ok := lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPreferenceNotDefined, key)
	}
	return d.current(p), nil
}

// IsStored reports whether the backing store holds a value for key.
func (p *Preferences) IsStored(key string) bool {
	return p.contains(key)
}

// SetValue validates value against the setting's definition and stores it.
// Unlike the typed setters it rejects enum codes and masks outside their domain.
func (p *Preferences) SetValue(key string, value interface{}) error {
	if key == "" {
		return ErrInvalidKey
	}
	d, ok := lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPreferenceNotDefined, key)
	}
	return d.assign(p, value)
}

// Reset removes the stored value for key so readers see the default again.
func (p *Preferences) Reset(key string) error {
	if _, ok := lookup(key); !ok {
		return fmt.Errorf("%w: %s", ErrPreferenceNotDefined, key)
	}
	p.remove(key)
	return nil
}

// Snapshot returns the value of every setting keyed by persisted key.
func (p *Preferences) Snapshot() map[string]interface{} {
	return p.ByCategory("")
}

// ByCategory returns the values of the settings in category; an empty
// category selects all settings.
func (p *Preferences) ByCategory(category string) map[string]interface{} {
	values := make(map[string]interface{})
	for _, d := range registry {
		if category != "" && d.definition(p).Category != category {
			continue
		}
		values[d.Key()] = d.current(p)
	}
	return values
}
