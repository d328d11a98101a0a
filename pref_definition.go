package vaultprefs

// Backing types understood by every Storage implementation.
// They mirror the value kinds of a platform preference store and are
// persisted next to each value, so they must not be renamed.
const (
	// BoolType represents a boolean flag.
	BoolType string = "bool"
	// IntType represents a 32-bit integer, including enum codes and bitsets.
	IntType string = "int"
	// LongType represents a 64-bit integer such as a millisecond timestamp.
	LongType string = "long"
	// StringType represents a string. JSON-encoded collections are stored as strings too.
	StringType string = "string"
	// StringSetType represents an unordered set of strings.
	StringSetType string = "string_set"
)
