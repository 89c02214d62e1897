package geoconform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/geoapi/geoconform/annotation"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMandatoryMissing  = "mandatory_missing"
	CodeForbiddenPresent  = "forbidden_present"
	CodeInvalidDimension  = "invalid_dimension"
	CodeInvalidRange      = "invalid_range"
	CodeAxisDirection     = "axis_direction"
	CodeUnexpectedType    = "unexpected_type"
	CodeInconsistentValue = "inconsistent_value"
	CodeEqualityContract  = "equality_contract"
	CodeInvalidCodeList   = "invalid_code_list"
	CodeInvalidName       = "invalid_name"
	// Numerical verification of coordinate transforms
	CodeTransformMismatch   = "transform_mismatch"
	CodeInverseMismatch     = "inverse_mismatch"
	CodeDerivativeMismatch  = "derivative_mismatch"
	CodeConsistencyMismatch = "consistency_mismatch"
	// The implementation under test refused an operation the check needed.
	CodeUnsupportedOperation = "unsupported_operation"
)

// Issue represents a single conformance finding.
type Issue struct {
	Path     string // Object path (for example: /coordinateSystem/axis/1/direction).
	Code     string // One of the codes listed above.
	Message  string
	Severity Severity
	// Obligation is the ISO obligation of the checked attribute, when the
	// issue comes from an obligation check.
	Obligation annotation.Obligation
	// Validator records the name of the validator that produced this issue.
	Validator string
	// Params carries structured parameters (e.g., {"expected":3, "actual":2}).
	Params map[string]any
	Cause  error // Optional: underlying error.
}

// Issues is a collection of conformance findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. mandatory_missing at /datum: GeographicCRS: must have a Datum.
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Errors returns the issues whose severity is Error.
func (iss Issues) Errors() Issues { return iss.filter(Error) }

// Warnings returns the issues whose severity is Warn.
func (iss Issues) Warnings() Issues { return iss.filter(Warn) }

// HasCode reports whether any issue carries the given code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

func (iss Issues) filter(s Severity) Issues {
	var out Issues
	for _, it := range iss {
		if it.Severity == s {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
