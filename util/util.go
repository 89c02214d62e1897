// Package util declares the ISO 19103 base types shared by every other
// package: names, name spaces, international strings and code lists.
package util

// InternationalString is a string with translations.
type InternationalString interface {
	// String returns the text in the default locale.
	String() string
	// Localized returns the text for the given BCP 47 language tag, falling
	// back to the default text when no translation exists.
	Localized(lang string) string
}

// NameSpace is the scope in which a name is unique.
type NameSpace interface {
	// IsGlobal reports whether this is the root name space.
	IsGlobal() bool
	// Name returns the name of this name space. The global name space may
	// return nil.
	Name() GenericName
}

// GenericName is a sequence of identifiers rooted in a name space.
type GenericName interface {
	Scope() NameSpace
	// Depth is the number of parsed names; 1 for a local name.
	Depth() int
	// ParsedNames returns the local names (each of depth 1) composing this name.
	ParsedNames() []GenericName
	Head() GenericName
	Tip() GenericName
	// String joins the parsed names with the name space separator.
	String() string
	ToInternationalString() InternationalString
}

// ScopedName is a composite name of depth two or more.
type ScopedName interface {
	GenericName
	// Path is every parsed name except the tip.
	Path() GenericName
	// Tail is every parsed name except the head.
	Tail() GenericName
}

// CodeList is the common behaviour of the ISO enumerations
// (AxisDirection, Role, DateType ...).
type CodeList interface {
	// Ordinal is the position of the value in its family.
	Ordinal() int
	// Name is the programmatic name, e.g. "GEOCENTRIC_X".
	Name() string
	// Identifier is the ISO identifier, e.g. "geocentricX".
	Identifier() string
}
