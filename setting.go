package vaultprefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
)

// codec converts between a typed setting value and the raw value held in an Entry.
type codec[T any] struct {
	typ    string
	decode func(raw interface{}) (T, error)
	encode func(v T) interface{}
	// clamp, if set, pulls v into the backing type's range and reports whether it had to.
	clamp func(v T) (T, bool)
}

var boolCodec = codec[bool]{
	typ:    BoolType,
	decode: asBool,
	encode: func(v bool) interface{} { return v },
}

var intCodec = codec[int]{
	typ: IntType,
	decode: func(raw interface{}) (int, error) {
		v, err := asInt32(raw)
		return int(v), err
	},
	encode: func(v int) interface{} { return int32(v) },
	clamp: func(v int) (int, bool) {
		switch {
		case v > math.MaxInt32:
			return math.MaxInt32, true
		case v < math.MinInt32:
			return math.MinInt32, true
		}
		return v, false
	},
}

var longCodec = codec[int64]{
	typ:    LongType,
	decode: asInt64,
	encode: func(v int64) interface{} { return v },
}

var stringCodec = codec[string]{
	typ:    StringType,
	decode: asString,
	encode: func(v string) interface{} { return v },
}

var stringSetCodec = codec[[]string]{
	typ:    StringSetType,
	decode: asStringSet,
	encode: func(v []string) interface{} { return v },
}

// codeCodec stores an integer-backed Go type as its int code. When known is
// non-empty, codes outside it fail to decode so the setting falls back to its default.
func codeCodec[E ~int32](known []E) codec[E] {
	return codec[E]{
		typ: IntType,
		decode: func(raw interface{}) (E, error) {
			v, err := asInt32(raw)
			if err != nil {
				return 0, err
			}
			if len(known) == 0 {
				return E(v), nil
			}
			for _, k := range known {
				if int32(k) == v {
					return k, nil
				}
			}
			return 0, fmt.Errorf("%w: unknown code %d", ErrInvalidValue, v)
		},
		encode: func(v E) interface{} { return int32(v) },
	}
}

// Setting describes one persisted preference: where it lives, how it is
// encoded and what a reader gets when nothing usable is stored.
type Setting[T any] struct {
	key      string
	category string
	codec    codec[T]
	// def yields the default for a missing or unreadable value.
	def func(p *Preferences) T
	// legacy, if set, replaces def when the key is absent (not when it is unreadable).
	legacy func(p *Preferences) T
	// skipUnchanged makes set read the current value first and skip equal writes.
	skipUnchanged bool
	// observed, if set, replaces get as the value skipUnchanged compares against.
	observed  func(p *Preferences) T
	sensitive bool
	allowed   []interface{}
	bitmask   bool
	minimum   *int64
}

func constant[T any](v T) func(*Preferences) T {
	return func(*Preferences) T { return v }
}

// Key returns the persisted key.
func (s *Setting[T]) Key() string { return s.key }

func (s *Setting[T]) get(p *Preferences) T {
	e, err := p.load(s.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if s.legacy != nil {
				return s.legacy(p)
			}
		} else {
			p.config.logger.Warn("Failed to read preference, using default", "key", s.key, "error", err)
		}
		return s.def(p)
	}

	v, err := s.decodeEntry(p, e)
	if err != nil {
		p.config.logger.Debug("Unusable stored preference, using default", "key", s.key, "error", err)
		return s.def(p)
	}
	return v
}

func (s *Setting[T]) decodeEntry(p *Preferences, e *Entry) (T, error) {
	var zero T
	if e.Type != s.codec.typ {
		return zero, fmt.Errorf("%w: want %s, have %s", ErrTypeMismatch, s.codec.typ, e.Type)
	}
	raw := e.Value
	if s.sensitive && p.config.encryption != nil {
		ciphertext, err := asString(raw)
		if err != nil {
			return zero, err
		}
		plaintext, err := p.config.encryption.Decrypt(ciphertext)
		if err != nil {
			return zero, err
		}
		raw = plaintext
	}
	return s.codec.decode(raw)
}

func (s *Setting[T]) set(p *Preferences, v T) {
	if s.codec.clamp != nil {
		if clamped, changed := s.codec.clamp(v); changed {
			p.config.logger.Warn("Preference value out of range, clamping", "key", s.key, "value", v, "stored", clamped)
			v = clamped
		}
	}
	if s.skipUnchanged {
		cur := s.get
		if s.observed != nil {
			cur = s.observed
		}
		if reflect.DeepEqual(cur(p), v) {
			return
		}
	}

	raw := s.codec.encode(v)
	if str, ok := raw.(string); ok && s.sensitive && p.config.encryption != nil {
		ciphertext, err := p.config.encryption.Encrypt(str)
		if err != nil {
			p.config.logger.Error("Failed to encrypt preference", "key", s.key, "error", err)
			return
		}
		raw = ciphertext
	}

	p.save(&Entry{Key: s.key, Type: s.codec.typ, Value: raw})
}

func (s *Setting[T]) definition(p *Preferences) Definition {
	return Definition{
		Key:           s.key,
		Type:          s.codec.typ,
		DefaultValue:  s.codec.encode(s.def(p)),
		Category:      s.category,
		AllowedValues: s.allowed,
		Minimum:       s.minimum,
		Bitmask:       s.bitmask,
		Sensitive:     s.sensitive,
	}
}

func (s *Setting[T]) current(p *Preferences) interface{} {
	return s.codec.encode(s.get(p))
}

// assign converts a loosely typed value (typically decoded from JSON),
// validates it against the definition and writes it.
func (s *Setting[T]) assign(p *Preferences, value interface{}) error {
	v, err := s.codec.decode(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, s.key, err)
	}
	if err := validateValue(s.codec.encode(v), s.definition(p)); err != nil {
		return err
	}
	s.set(p, v)
	return nil
}

// descriptor is the type-erased view of a Setting used by the generic API.
type descriptor interface {
	Key() string
	definition(p *Preferences) Definition
	current(p *Preferences) interface{}
	assign(p *Preferences, value interface{}) error
}

func asBool(raw interface{}) (bool, error) {
	v, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrTypeMismatch, raw)
	}
	return v, nil
}

func asInt64(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrTypeMismatch, v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	default:
		return 0, fmt.Errorf("%w: expected integer, got %T", ErrTypeMismatch, raw)
	}
}

func asInt32(raw interface{}) (int32, error) {
	v, err := asInt64(raw)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d overflows int32", ErrTypeMismatch, v)
	}
	return int32(v), nil
}

func asString(raw interface{}) (string, error) {
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrTypeMismatch, raw)
	}
	return v, nil
}

func asStringSet(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: string set holds %T", ErrTypeMismatch, item)
			}
			out = append(out, s)
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("%w: nil string set", ErrTypeMismatch)
	default:
		return nil, fmt.Errorf("%w: expected string set, got %T", ErrTypeMismatch, raw)
	}
}
