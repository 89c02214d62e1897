package geoconform

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef locates an attribute inside the object graph under test and
// creates Issues at that location. Pointers use JSON Pointer syntax over
// attribute names, e.g. /datum/ellipsoid/semiMajorAxis or
// /coordinateSystem/axis/0.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code, msg string, kv ...any) Issue
}

// segment is one step of a path. Children share their parent, so deriving
// a path never copies the prefix.
type segment struct {
	parent *segment
	token  string
}

var root = &segment{}

// Root returns the path of the object under test.
func Root() PathRef { return root }

// At parses a pointer such as "/coordinateSystem/axis/1". Tokens are taken
// as already escaped.
func At(pointer string) PathRef {
	s := root
	for _, tok := range strings.Split(pointer, "/") {
		if tok != "" {
			s = &segment{parent: s, token: tok}
		}
	}
	return s
}

var tokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func (s *segment) Field(name string) PathRef {
	if name == "" {
		return s
	}
	return &segment{parent: s, token: tokenEscaper.Replace(name)}
}

func (s *segment) Index(i int) PathRef {
	return &segment{parent: s, token: strconv.Itoa(i)}
}

func (s *segment) Pointer() string {
	if s.parent == nil {
		return "/"
	}
	var tokens []string
	for n := s; n.parent != nil; n = n.parent {
		tokens = append(tokens, n.token)
	}
	var b strings.Builder
	for i := len(tokens) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(tokens[i])
	}
	return b.String()
}

// Issue creates an error at s. kv holds alternating parameter names and
// values; a trailing name without value is dropped.
func (s *segment) Issue(code, msg string, kv ...any) Issue {
	var params map[string]any
	if len(kv) >= 2 {
		params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			params[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: s.Pointer(), Code: code, Message: msg, Severity: Error, Params: params}
}
