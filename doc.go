// Package geoconform provides:
//
// - Go interfaces mirroring the OGC/ISO geospatial abstract models (ISO 19107,
//   19111, 19115, 19143) under geometry/, referencing/, metadata/, filter/
// - A conformance validator framework (conformance/) that walks arbitrary
//   implementations of those interfaces and checks ISO obligations and
//   structural invariants
// - Numerical verification of coordinate transforms (conformance/referencingtest)
// - A stable error model via Issues (object path, code, message, severity)
//
// Design policy:
// - Keep only the error model and shared helpers in the root package.
// - Place standard interfaces in their ISO package, validators under
//   conformance/, reference implementations under example/ and the CLI under
//   cmd/geoconform.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	err := conformance.Validate(ctx, myCRS)
//	iss, ok := geoconform.AsIssues(err)
//
//	c := conformance.NewContainer()
//	c.CRS.EnforceStandardNames = true
//	err = c.Validate(geoconform.WithFailFast(ctx, true), myCRS)
package geoconform
