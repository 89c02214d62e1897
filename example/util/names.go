// Package util provides simple implementations of names, name spaces and
// international strings.
package util

import (
	"hash/fnv"
	"strings"

	"github.com/geoapi/geoconform/util"
)

// DefaultSeparator separates the parsed names of a scoped name.
const DefaultSeparator = ":"

// NameSpace is a name space identified by a name. The zero value and nil
// are the global name space.
type NameSpace struct {
	name      util.GenericName
	separator string
}

// Global is the root name space.
var Global = &NameSpace{}

// NewNameSpace creates a name space named by the given parts, using sep
// between parsed names of the names it contains.
func NewNameSpace(sep string, parts ...string) *NameSpace {
	if sep == "" {
		sep = DefaultSeparator
	}
	ns := &NameSpace{separator: sep}
	if len(parts) > 0 {
		ns.name = NewName(Global, parts...)
	}
	return ns
}

func (ns *NameSpace) IsGlobal() bool { return ns == nil || ns.name == nil }

func (ns *NameSpace) Name() util.GenericName {
	if ns == nil {
		return nil
	}
	return ns.name
}

// Separator returns the string between parsed names.
func (ns *NameSpace) Separator() string {
	if ns == nil || ns.separator == "" {
		return DefaultSeparator
	}
	return ns.separator
}

// NewName returns a LocalName for one part and a ScopedName otherwise.
// It returns nil when parts is empty.
func NewName(ns *NameSpace, parts ...string) util.GenericName {
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return &LocalName{scope: ns, name: parts[0]}
	}
	return &ScopedName{scope: ns, parts: append([]string(nil), parts...)}
}

// ParseName splits s with the separator of ns.
func ParseName(ns *NameSpace, s string) util.GenericName {
	if s == "" {
		return nil
	}
	return NewName(ns, strings.Split(s, ns.Separator())...)
}

// LocalName is a name of depth one.
type LocalName struct {
	scope *NameSpace
	name  string
}

func (n *LocalName) Scope() util.NameSpace {
	if n.scope == nil {
		return Global
	}
	return n.scope
}

func (n *LocalName) Depth() int                      { return 1 }
func (n *LocalName) ParsedNames() []util.GenericName { return []util.GenericName{n} }
func (n *LocalName) Head() util.GenericName          { return n }
func (n *LocalName) Tip() util.GenericName           { return n }
func (n *LocalName) String() string                  { return n.name }

func (n *LocalName) ToInternationalString() util.InternationalString { return Text(n.name) }

// Equal compares the scope and the text.
func (n *LocalName) Equal(other any) bool {
	o, ok := other.(*LocalName)
	return ok && o != nil && n.name == o.name && sameScope(n.scope, o.scope)
}

func (n *LocalName) Hash() uint64 { return hashString(n.name) }

// ScopedName is a name of depth two or more.
type ScopedName struct {
	scope *NameSpace
	parts []string
}

func (n *ScopedName) Scope() util.NameSpace {
	if n.scope == nil {
		return Global
	}
	return n.scope
}

func (n *ScopedName) Depth() int { return len(n.parts) }

func (n *ScopedName) ParsedNames() []util.GenericName {
	out := make([]util.GenericName, len(n.parts))
	for i, p := range n.parts {
		out[i] = &LocalName{scope: n.scope, name: p}
	}
	return out
}

func (n *ScopedName) Head() util.GenericName { return &LocalName{scope: n.scope, name: n.parts[0]} }
func (n *ScopedName) Tip() util.GenericName  { return &LocalName{scope: n.scope, name: n.parts[len(n.parts)-1]} }
func (n *ScopedName) Path() util.GenericName { return NewName(n.scope, n.parts[:len(n.parts)-1]...) }
func (n *ScopedName) Tail() util.GenericName { return NewName(n.scope, n.parts[1:]...) }

func (n *ScopedName) String() string {
	return strings.Join(n.parts, n.scope.Separator())
}

func (n *ScopedName) ToInternationalString() util.InternationalString { return Text(n.String()) }

// Equal compares the scope and every parsed name.
func (n *ScopedName) Equal(other any) bool {
	o, ok := other.(*ScopedName)
	if !ok || o == nil || len(o.parts) != len(n.parts) || !sameScope(n.scope, o.scope) {
		return false
	}
	for i := range n.parts {
		if n.parts[i] != o.parts[i] {
			return false
		}
	}
	return true
}

func (n *ScopedName) Hash() uint64 { return hashString(strings.Join(n.parts, "\x00")) }

func sameScope(a, b *NameSpace) bool {
	if a.IsGlobal() || b.IsGlobal() {
		return a.IsGlobal() == b.IsGlobal()
	}
	return a.name.String() == b.name.String()
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
