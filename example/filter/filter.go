package filter

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/geoapi/geoconform/filter"
	"github.com/geoapi/geoconform/geometry"
)

func eval(e filter.Expression, resource any) any {
	v, err := e.Apply(resource)
	if err != nil {
		return nil
	}
	return v
}

// Comparison is a binary comparison operator.
type Comparison struct {
	Op          filter.OperatorType
	Left, Right filter.Expression
	MatchCase   bool
}

var _ filter.ComparisonOperator = (*Comparison)(nil)

// Equal returns a case-sensitive PropertyIsEqualTo filter.
func Equal(left, right filter.Expression) *Comparison {
	return &Comparison{Op: filter.OperatorEqual, Left: left, Right: right, MatchCase: true}
}

// Compare returns a case-sensitive comparison; op must be one of the six
// binary comparison operators.
func Compare(op filter.OperatorType, left, right filter.Expression) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right, MatchCase: true}
}

func (c *Comparison) OperatorType() filter.OperatorType { return c.Op }
func (c *Comparison) Expressions() []filter.Expression  { return []filter.Expression{c.Left, c.Right} }
func (c *Comparison) IsMatchingCase() bool              { return c.MatchCase }

// Test compares the two values. Missing values and values of
// incomparable types never match.
func (c *Comparison) Test(resource any) bool {
	a, b := eval(c.Left, resource), eval(c.Right, resource)
	if a == nil || b == nil {
		return false
	}
	cmp, ok := compare(a, b, c.MatchCase)
	if !ok {
		return c.Op == filter.OperatorNotEqual && !equalValues(a, b)
	}
	switch c.Op {
	case filter.OperatorEqual:
		return cmp == 0
	case filter.OperatorNotEqual:
		return cmp != 0
	case filter.OperatorLess:
		return cmp < 0
	case filter.OperatorGreater:
		return cmp > 0
	case filter.OperatorLessOrEqual:
		return cmp <= 0
	case filter.OperatorGreaterOrEqual:
		return cmp >= 0
	}
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return math.NaN(), false
}

// compare orders numbers, strings and times. ok is false for other types
// or mixed types.
func compare(a, b any, matchCase bool) (int, bool) {
	if x, ok := number(a); ok {
		y, ok := number(b)
		if !ok || math.IsNaN(x) || math.IsNaN(y) {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		if !matchCase {
			x, y = strings.ToLower(x), strings.ToLower(y)
		}
		return strings.Compare(x, y), true
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case bool:
		y, ok := b.(bool)
		if !ok || x != y {
			return 1, ok
		}
		return 0, true
	}
	return 0, false
}

func equalValues(a, b any) bool {
	ta := reflect.TypeOf(a)
	if ta != nil && ta.Comparable() && ta == reflect.TypeOf(b) {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Between tests lower <= value <= upper.
type Between struct {
	Value, Lower, Upper filter.Expression
}

var _ filter.ComparisonOperator = (*Between)(nil)

func (b *Between) OperatorType() filter.OperatorType { return filter.OperatorBetween }
func (b *Between) Expressions() []filter.Expression  { return []filter.Expression{b.Value, b.Lower, b.Upper} }
func (b *Between) IsMatchingCase() bool              { return true }

func (b *Between) Test(resource any) bool {
	v, lo, up := eval(b.Value, resource), eval(b.Lower, resource), eval(b.Upper, resource)
	if v == nil || lo == nil || up == nil {
		return false
	}
	c1, ok1 := compare(lo, v, true)
	c2, ok2 := compare(v, up, true)
	return ok1 && ok2 && c1 <= 0 && c2 <= 0
}

// IsNull tests whether a value is missing.
type IsNull struct{ Value filter.Expression }

var _ filter.ComparisonOperator = (*IsNull)(nil)

func (n *IsNull) OperatorType() filter.OperatorType { return filter.OperatorNull }
func (n *IsNull) Expressions() []filter.Expression  { return []filter.Expression{n.Value} }
func (n *IsNull) IsMatchingCase() bool              { return true }
func (n *IsNull) Test(resource any) bool            { return eval(n.Value, resource) == nil }

// Like matches a string value against a pattern where Wildcard matches
// any sequence, Single one character and Escape quotes the next character.
type Like struct {
	Value                    filter.Expression
	Pattern                  string
	Wildcard, Single, Escape rune
	MatchCase                bool

	once sync.Once
	re   *regexp.Regexp
}

var _ filter.ComparisonOperator = (*Like)(nil)

// NewLike uses the usual '%', '_' and '\' characters.
func NewLike(value filter.Expression, pattern string, matchCase bool) *Like {
	return &Like{Value: value, Pattern: pattern, Wildcard: '%', Single: '_', Escape: '\\', MatchCase: matchCase}
}

func (l *Like) OperatorType() filter.OperatorType { return filter.OperatorLike }
func (l *Like) Expressions() []filter.Expression  { return []filter.Expression{l.Value} }
func (l *Like) IsMatchingCase() bool              { return l.MatchCase }

func (l *Like) regexp() *regexp.Regexp {
	l.once.Do(l.compile)
	return l.re
}

func (l *Like) compile() {
	var sb strings.Builder
	if !l.MatchCase {
		sb.WriteString("(?i)")
	}
	sb.WriteString("^")
	escaped := false
	for _, r := range l.Pattern {
		switch {
		case escaped:
			sb.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == l.Escape:
			escaped = true
		case r == l.Wildcard:
			sb.WriteString("(?s:.*)")
		case r == l.Single:
			sb.WriteString("(?s:.)")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	l.re = regexp.MustCompile(sb.String())
}

func (l *Like) Test(resource any) bool {
	s, ok := eval(l.Value, resource).(string)
	return ok && l.regexp().MatchString(s)
}

// Logical combines filters with And, Or or Not.
type Logical struct {
	Op       filter.OperatorType
	Children []filter.Filter
}

var _ filter.LogicalOperator = (*Logical)(nil)

func And(children ...filter.Filter) *Logical { return &Logical{Op: filter.OperatorAnd, Children: children} }
func Or(children ...filter.Filter) *Logical  { return &Logical{Op: filter.OperatorOr, Children: children} }
func Not(child filter.Filter) *Logical       { return &Logical{Op: filter.OperatorNot, Children: []filter.Filter{child}} }

func (l *Logical) OperatorType() filter.OperatorType { return l.Op }
func (l *Logical) Operands() []filter.Filter         { return l.Children }
func (l *Logical) Expressions() []filter.Expression  { return filter.Expressions(l.Children...) }

func (l *Logical) Test(resource any) bool {
	switch l.Op {
	case filter.OperatorAnd:
		for _, c := range l.Children {
			if !c.Test(resource) {
				return false
			}
		}
		return true
	case filter.OperatorOr:
		for _, c := range l.Children {
			if c.Test(resource) {
				return true
			}
		}
		return false
	case filter.OperatorNot:
		return len(l.Children) == 1 && !l.Children[0].Test(resource)
	}
	return false
}

// BBox tests whether the geometry of a property intersects an envelope.
// The property value may be a geometry.Envelope or a
// geometry.DirectPosition.
type BBox struct {
	Geometry filter.Expression
	Box      geometry.Envelope
}

var _ filter.BinarySpatialOperator = (*BBox)(nil)

func (b *BBox) OperatorType() filter.OperatorType { return filter.OperatorBBox }
func (b *BBox) Operand1() filter.Expression       { return b.Geometry }
func (b *BBox) Operand2() filter.Expression       { return Literal{V: b.Box} }
func (b *BBox) Expressions() []filter.Expression  { return []filter.Expression{b.Operand1(), b.Operand2()} }

func (b *BBox) Test(resource any) bool {
	switch g := eval(b.Geometry, resource).(type) {
	case geometry.Envelope:
		return intersects(b.Box, g)
	case geometry.DirectPosition:
		return contains(b.Box, g)
	}
	return false
}

func intersects(a, b geometry.Envelope) bool {
	if a.Dimension() != b.Dimension() {
		return false
	}
	for i := 0; i < a.Dimension(); i++ {
		if a.Minimum(i) > b.Maximum(i) || b.Minimum(i) > a.Maximum(i) {
			return false
		}
	}
	return true
}

func contains(e geometry.Envelope, p geometry.DirectPosition) bool {
	if e.Dimension() != p.Dimension() {
		return false
	}
	for i := 0; i < e.Dimension(); i++ {
		if v := p.Ordinate(i); v < e.Minimum(i) || v > e.Maximum(i) {
			return false
		}
	}
	return true
}
