package conformance

import (
	"fmt"

	"go.uber.org/zap"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/annotation"
)

// DefaultTolerance is the tolerance used by validators when comparing
// floating point numbers. It is relatively large because implementations may
// store values in single precision. Test suites controlling the objects they
// create use tighter thresholds.
const DefaultTolerance = 1e-6

// Validator holds the state shared by every package validator: the container
// used to validate nested objects of other packages, a logger for tolerated
// violations, and the obligation policy.
type Validator struct {
	container *Container
	logger    *zap.Logger
	name      string

	// RequireMandatoryAttributes makes a missing mandatory attribute an
	// error. When false the violation is logged and recorded as a warning.
	// Implementations under development often return nil on a temporary basis.
	RequireMandatoryAttributes bool
	// EnforceForbiddenAttributes makes a present forbidden attribute an
	// error. When false the violation is logged and recorded as a warning.
	EnforceForbiddenAttributes bool
}

func newValidator(c *Container, name string) Validator {
	return Validator{
		container:                  c,
		logger:                     zap.NewNop().Named(name),
		name:                       name,
		RequireMandatoryAttributes: true,
		EnforceForbiddenAttributes: true,
	}
}

// Name returns the name of the package validated, e.g. "geoapi.referencing.crs".
func (v *Validator) Name() string { return v.name }

// Logger returns the logger receiving tolerated violations.
func (v *Validator) Logger() *zap.Logger { return v.logger }

// Policy returns the severities applied to violated obligations.
func (v *Validator) Policy() geoconform.ObligationPolicy {
	p := geoconform.LenientPolicy
	if v.RequireMandatoryAttributes {
		p.MissingMandatory = geoconform.Error
	}
	if v.EnforceForbiddenAttributes {
		p.PresentForbidden = geoconform.Error
	}
	return p
}

// SetPolicy sets both obligation switches from a policy.
func (v *Validator) SetPolicy(p geoconform.ObligationPolicy) {
	v.RequireMandatoryAttributes = p.MissingMandatory == geoconform.Error
	v.EnforceForbiddenAttributes = p.PresentForbidden == geoconform.Error
}

func (v *Validator) setLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	v.logger = l.Named(v.name)
}

// mandatory checks that value is present. uml names the checked attribute in
// the annotation registry. It reports whether the value is present.
func (v *Validator) mandatory(r *geoconform.Report, p geoconform.PathRef, uml, msg string, value any) bool {
	if !geoconform.IsAbsent(value) {
		return true
	}
	v.obligation(r, p, geoconform.CodeMandatoryMissing, uml, annotation.Mandatory, msg, v.RequireMandatoryAttributes)
	return false
}

// forbidden checks that value is absent.
func (v *Validator) forbidden(r *geoconform.Report, p geoconform.PathRef, uml, msg string, value any) {
	if geoconform.IsAbsent(value) {
		return
	}
	v.obligation(r, p, geoconform.CodeForbiddenPresent, uml, annotation.Forbidden, msg, v.EnforceForbiddenAttributes)
}

// conditional delegates to mandatory when cond holds and to forbidden otherwise.
func (v *Validator) conditional(r *geoconform.Report, p geoconform.PathRef, uml, msg string, value any, cond bool) {
	if cond {
		v.mandatory(r, p, uml, msg, value)
	} else {
		v.forbidden(r, p, uml, msg, value)
	}
}

func (v *Validator) obligation(r *geoconform.Report, p geoconform.PathRef, code, uml string, kind annotation.Obligation, msg string, strict bool) {
	it := p.Issue(code, msg)
	it.Validator = v.name
	it.Obligation = kind
	if o := annotation.ObligationOf(uml); o != annotation.Unspecified {
		it.Obligation = o
	}
	if uml != "" {
		it.Params = map[string]any{"attribute": uml}
	}
	if !strict {
		it.Severity = geoconform.Warn
		v.logger.Warn(msg,
			zap.String("path", it.Path),
			zap.String("attribute", uml),
			zap.Stringer("obligation", it.Obligation),
		)
	}
	r.Add(it)
}

// fail records an error independent of the obligation policy.
func (v *Validator) fail(r *geoconform.Report, p geoconform.PathRef, code, msg string, kv ...any) {
	it := p.Issue(code, msg, kv...)
	it.Validator = v.name
	r.Add(it)
}

// check records an error when cond is false and returns cond.
func (v *Validator) check(r *geoconform.Report, cond bool, p geoconform.PathRef, code, msg string, kv ...any) bool {
	if !cond {
		v.fail(r, p, code, msg, kv...)
	}
	return cond
}

// checkEqualInt records an inconsistency between two integers.
func (v *Validator) checkEqualInt(r *geoconform.Report, p geoconform.PathRef, code, msg string, expected, actual int) bool {
	return v.check(r, expected == actual, p, code, fmt.Sprintf("%s Expected %d but got %d.", msg, expected, actual),
		"expected", expected, "actual", actual)
}

// checkBetween records an error when value is outside [min, max]. NaN
// bounds or values are tolerated.
func (v *Validator) checkBetween(r *geoconform.Report, p geoconform.PathRef, code, msg string, min, max, value float64) bool {
	if value < min || value > max {
		v.fail(r, p, code, fmt.Sprintf("%s Value %g is not in the [%g … %g] range.", msg, value, min, max),
			"minimum", min, "maximum", max, "actual", value)
		return false
	}
	return true
}

// checkRange records an error when max < min. NaN values are tolerated.
func (v *Validator) checkRange(r *geoconform.Report, p geoconform.PathRef, msg string, min, max float64) bool {
	if max < min {
		v.fail(r, p, geoconform.CodeInvalidRange, fmt.Sprintf("%s Range [%g … %g] is invalid.", msg, min, max),
			"minimum", min, "maximum", max)
		return false
	}
	return true
}
