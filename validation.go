// validation.go
package vaultprefs

import (
	"fmt"
)

var validTypes = map[string]bool{
	BoolType:      true,
	IntType:       true,
	LongType:      true,
	StringType:    true,
	StringSetType: true,
}

func isValidType(t string) bool {
	return validTypes[t]
}

// validateValue checks an encoded value against a definition. The facade's own
// setters trust their callers; only SetValue goes through here.
func validateValue(value interface{}, def Definition) error {
	if !isValidType(def.Type) {
		return fmt.Errorf("%w: %q", ErrInvalidType, def.Type)
	}

	switch def.Type {
	case BoolType:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: expected bool", ErrInvalidValue)
		}
	case IntType:
		if _, ok := value.(int32); !ok {
			return fmt.Errorf("%w: expected 32-bit integer", ErrInvalidValue)
		}
	case LongType:
		if _, ok := value.(int64); !ok {
			return fmt.Errorf("%w: expected 64-bit integer", ErrInvalidValue)
		}
	case StringType:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: expected string", ErrInvalidValue)
		}
	case StringSetType:
		if _, ok := value.([]string); !ok {
			return fmt.Errorf("%w: expected string set", ErrInvalidValue)
		}
	}

	if def.Minimum != nil {
		var n int64
		switch v := value.(type) {
		case int32:
			n = int64(v)
		case int64:
			n = v
		}
		if n < *def.Minimum {
			return fmt.Errorf("%w: %d is below the minimum %d", ErrInvalidValue, n, *def.Minimum)
		}
	}

	if def.Bitmask {
		return validateMask(value, def)
	}
	if len(def.AllowedValues) == 0 {
		return nil
	}
	for _, allowed := range def.AllowedValues {
		if value == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: value not in allowed values", ErrInvalidValue)
}

// validateMask accepts either the lone off bit or a non-empty union of the
// other allowed bits.
func validateMask(value interface{}, def Definition) error {
	mask, ok := value.(int32)
	if !ok {
		return fmt.Errorf("%w: mask must be an integer", ErrInvalidValue)
	}
	if mask == int32(AutoLockOff) {
		return nil
	}

	var union int32
	for _, allowed := range def.AllowedValues {
		if bit, ok := allowed.(int32); ok && bit != int32(AutoLockOff) {
			union |= bit
		}
	}
	if mask == 0 || mask&^union != 0 {
		return fmt.Errorf("%w: mask %d has unknown or conflicting bits", ErrInvalidValue, mask)
	}
	return nil
}
