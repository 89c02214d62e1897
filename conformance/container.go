// Package conformance validates implementations of the geospatial interfaces
// against the ISO obligations and structural invariants of their types.
//
// A Container holds one validator per ISO package. Validators delegate the
// objects of other packages to the container they were created with, so
// replacing or configuring a validator in the container affects every
// nested validation:
//
//	c := conformance.NewContainer()
//	c.SetRequireMandatoryAttributes(false)
//	if err := c.Validate(ctx, crs); err != nil {
//		iss, _ := geoconform.AsIssues(err)
//		...
//	}
package conformance

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/filter"
	"github.com/geoapi/geoconform/geometry"
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/parameter"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/referencing/datum"
	"github.com/geoapi/geoconform/referencing/operation"
	"github.com/geoapi/geoconform/util"
)

// Container holds the validators used for every package. Fields may be
// replaced by custom validators created with the same container.
type Container struct {
	Naming         *NameValidator
	Metadata       *MetadataValidator
	Citation       *CitationValidator
	Extent         *ExtentValidator
	Identification *IdentificationValidator
	Datum          *DatumValidator
	CS             *CSValidator
	CRS            *CRSValidator
	Parameter      *ParameterValidator
	Operation      *OperationValidator
	Geometry       *GeometryValidator
	Filter         *FilterValidator
}

// NewContainer creates a container with the default validators.
func NewContainer() *Container {
	c := &Container{}
	c.Naming = NewNameValidator(c)
	c.Metadata = NewMetadataValidator(c)
	c.Citation = NewCitationValidator(c)
	c.Extent = NewExtentValidator(c)
	c.Identification = NewIdentificationValidator(c)
	c.Datum = NewDatumValidator(c)
	c.CS = NewCSValidator(c)
	c.CRS = NewCRSValidator(c)
	c.Parameter = NewParameterValidator(c)
	c.Operation = NewOperationValidator(c)
	c.Geometry = NewGeometryValidator(c)
	c.Filter = NewFilterValidator(c)
	return c
}

// Default is the container used by the package-level Validate.
var Default = NewContainer()

// Validate validates obj with the Default container.
func Validate(ctx context.Context, obj any) error { return Default.Validate(ctx, obj) }

// All returns the base of every validator, for setting common options.
func (c *Container) All() []*Validator {
	return []*Validator{
		&c.Naming.Validator,
		&c.Metadata.Validator,
		&c.Citation.Validator,
		&c.Extent.Validator,
		&c.Identification.Validator,
		&c.Datum.Validator,
		&c.CS.Validator,
		&c.CRS.Validator,
		&c.Parameter.Validator,
		&c.Operation.Validator,
		&c.Geometry.Validator,
		&c.Filter.Validator,
	}
}

// SetRequireMandatoryAttributes sets the switch on every validator.
func (c *Container) SetRequireMandatoryAttributes(b bool) {
	for _, v := range c.All() {
		v.RequireMandatoryAttributes = b
	}
}

// SetEnforceForbiddenAttributes sets the switch on every validator.
func (c *Container) SetEnforceForbiddenAttributes(b bool) {
	for _, v := range c.All() {
		v.EnforceForbiddenAttributes = b
	}
}

// SetTolerance sets the relative tolerance of the numeric validators.
func (c *Container) SetTolerance(tol float64) {
	c.Datum.Tolerance = tol
	c.Geometry.Tolerance = tol
}

// SetLogger makes every validator log through a child of l named after the
// validated package.
func (c *Container) SetLogger(l *zap.Logger) {
	for _, v := range c.All() {
		v.setLogger(l)
	}
}

// Clone returns a container with new validators holding the same settings.
// The clone can be configured without affecting c.
func (c *Container) Clone() *Container {
	n := NewContainer()
	dst := n.All()
	for i, v := range c.All() {
		dst[i].RequireMandatoryAttributes = v.RequireMandatoryAttributes
		dst[i].EnforceForbiddenAttributes = v.EnforceForbiddenAttributes
		dst[i].logger = v.logger
	}
	n.Datum.Tolerance = c.Datum.Tolerance
	n.Geometry.Tolerance = c.Geometry.Tolerance
	n.CRS.EnforceStandardNames = c.CRS.EnforceStandardNames
	return n
}

// Validate dispatches obj to the validator of its type and returns the
// error-severity issues, or nil. Warnings are available through Inspect.
// Objects of unknown types are ignored.
func (c *Container) Validate(ctx context.Context, obj any) error {
	return c.Inspect(ctx, obj).Err()
}

// Inspect validates obj and returns the full report, warnings included.
func (c *Container) Inspect(ctx context.Context, obj any) *geoconform.Report {
	r := geoconform.NewReport(ctx)
	c.dispatch(r, geoconform.Root(), obj)
	return r
}

// ValidateAll validates objs concurrently into one report. Issue paths are
// prefixed by the index of the object.
func (c *Container) ValidateAll(ctx context.Context, objs ...any) (*geoconform.Report, error) {
	r := geoconform.NewReport(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, obj := range objs {
		i, obj := i, obj
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			c.dispatch(r, geoconform.Root().Index(i), obj)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return r, err
	}
	return r, r.Err()
}

func (c *Container) dispatch(r *geoconform.Report, p geoconform.PathRef, obj any) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	switch o := obj.(type) {
	case crs.CRS:
		c.CRS.dispatch(r, p, o)
	case cs.CoordinateSystem:
		c.CS.dispatch(r, p, o)
	case cs.Axis:
		c.CS.validateAxis(r, p, o)
	case datum.Datum:
		c.Datum.dispatch(r, p, o)
	case datum.Ellipsoid:
		c.Datum.validateEllipsoid(r, p, o)
	case datum.PrimeMeridian:
		c.Datum.validatePrimeMeridian(r, p, o)
	case operation.CoordinateOperation:
		c.Operation.validateWithCRS(r, p, o)
	case operation.OperationMethod:
		c.Operation.validateMethod(r, p, o)
	case operation.MathTransform:
		c.Operation.validateTransform(r, p, o)
	case parameter.GeneralValue:
		c.Parameter.dispatchValue(r, p, o)
	case parameter.GeneralDescriptor:
		c.Parameter.dispatchDescriptor(r, p, o)
	case geometry.Envelope:
		c.Geometry.validateEnvelope(r, p, o)
	case geometry.DirectPosition:
		c.Geometry.validatePosition(r, p, o)
	case metadata.Metadata:
		c.Metadata.validateMetadata(r, p, o)
	case metadata.Identification:
		c.Identification.dispatch(r, p, o)
	case metadata.Citation:
		c.Citation.validateCitation(r, p, o)
	case metadata.Responsibility:
		c.Citation.validateResponsibility(r, p, o)
	case metadata.Extent:
		c.Extent.validateExtent(r, p, o)
	case metadata.GeographicBoundingBox:
		c.Extent.validateGeographic(r, p, o)
	case metadata.GeographicDescription:
		c.Extent.validateGeographic(r, p, o)
	case metadata.Identifier:
		c.Citation.validateIdentifier(r, p, o)
	case filter.Capabilities:
		c.Filter.validateCapabilities(r, p, o)
	case filter.Filter:
		c.Filter.validateFilter(r, p, o)
	case filter.Expression:
		c.Filter.validateExpression(r, p, o)
	case util.GenericName:
		c.Naming.validateName(r, p, o)
	case util.NameSpace:
		c.Naming.validateNameSpace(r, p, o)
	case util.InternationalString:
		c.Naming.validateInternationalString(r, p, o)
	case util.CodeList:
		c.Naming.validateCodeList(r, p, o)
	case referencing.IdentifiedObject:
		c.CS.validateIdentifiedObject(r, p, o)
	case []any:
		for i, e := range o {
			c.dispatch(r, p.Index(i), e)
		}
	}
}

// String lists the validator names, for logs.
func (c *Container) String() string {
	names := make([]string, 0, 12)
	for _, v := range c.All() {
		names = append(names, v.name)
	}
	return fmt.Sprint(names)
}
