package geoconform

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "ignore"
	}
}

// MarshalText renders the severity name in reports.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ObligationPolicy decides how violated obligations are reported.
// The zero value tolerates everything; validators start from StrictPolicy.
type ObligationPolicy struct {
	MissingMandatory Severity // Mandatory attribute absent.
	PresentForbidden Severity // Forbidden attribute present.
}

// StrictPolicy turns every violated obligation into an error.
var StrictPolicy = ObligationPolicy{MissingMandatory: Error, PresentForbidden: Error}

// LenientPolicy logs violated obligations as warnings.
var LenientPolicy = ObligationPolicy{MissingMandatory: Warn, PresentForbidden: Warn}
