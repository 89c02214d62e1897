// Package annotation declares the ISO obligations and defining standards
// attached to the attributes of the standard interfaces.
package annotation

// Obligation is the cardinality classification an ISO standard attaches to
// an attribute.
type Obligation int

const (
	// Unspecified is the zero value, used when no UML descriptor applies.
	Unspecified Obligation = iota
	Mandatory
	Optional
	Conditional
	Forbidden
)

// String returns the ISO name of the obligation.
func (o Obligation) String() string {
	switch o {
	case Mandatory:
		return "mandatory"
	case Optional:
		return "optional"
	case Conditional:
		return "conditional"
	case Forbidden:
		return "forbidden"
	default:
		return ""
	}
}

// MarshalText renders the obligation name in reports.
func (o Obligation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Specification identifies the standard defining an interface or attribute.
type Specification int

const (
	ISO19103 Specification = iota + 1
	ISO19107
	ISO19111
	ISO19115
	ISO19143
	OGC01009
)

func (s Specification) String() string {
	switch s {
	case ISO19103:
		return "ISO 19103"
	case ISO19107:
		return "ISO 19107"
	case ISO19111:
		return "ISO 19111"
	case ISO19115:
		return "ISO 19115"
	case ISO19143:
		return "ISO 19143"
	case OGC01009:
		return "OGC 01-009"
	default:
		return ""
	}
}

// UML describes how an attribute maps to the abstract model.
type UML struct {
	Identifier    string // e.g. "SC_CRS.coordinateSystem"
	Obligation    Obligation
	Specification Specification
}
