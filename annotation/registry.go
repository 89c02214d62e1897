package annotation

import "sync"

var (
	registryMu sync.RWMutex
	registry   = map[string]UML{}
)

// Register records a UML descriptor. Registering the same identifier again
// replaces the previous descriptor.
func Register(u UML) {
	registryMu.Lock()
	registry[u.Identifier] = u
	registryMu.Unlock()
}

// Lookup returns the descriptor registered for identifier.
func Lookup(identifier string) (UML, bool) {
	registryMu.RLock()
	u, ok := registry[identifier]
	registryMu.RUnlock()
	return u, ok
}

// ObligationOf returns the obligation of identifier, or Unspecified.
func ObligationOf(identifier string) Obligation {
	u, _ := Lookup(identifier)
	return u.Obligation
}

func init() {
	for _, u := range builtin {
		registry[u.Identifier] = u
	}
}

// builtin lists the attributes the conformance validators check.
var builtin = []UML{
	// ISO 19111 referencing
	{"IO_IdentifiedObject.name", Mandatory, ISO19111},
	{"IO_IdentifiedObject.alias", Optional, ISO19111},
	{"IO_IdentifiedObject.identifier", Optional, ISO19111},
	{"IO_IdentifiedObject.remarks", Optional, ISO19111},
	{"RS_Identifier.code", Mandatory, ISO19111},
	{"RS_Identifier.codeSpace", Optional, ISO19111},
	{"SC_CRS.coordinateSystem", Mandatory, ISO19111},
	{"SC_SingleCRS.datum", Mandatory, ISO19111},
	{"SC_CompoundCRS.componentReferenceSystem", Mandatory, ISO19111},
	{"SC_DerivedCRS.baseCRS", Mandatory, ISO19111},
	{"SC_DerivedCRS.conversion", Mandatory, ISO19111},
	{"CS_CoordinateSystem.axis", Mandatory, ISO19111},
	{"CS_CoordinateSystemAxis.axisAbbrev", Mandatory, ISO19111},
	{"CS_CoordinateSystemAxis.axisDirection", Mandatory, ISO19111},
	{"CS_CoordinateSystemAxis.axisUnitID", Mandatory, ISO19111},
	{"CS_CoordinateSystemAxis.rangeMeaning", Conditional, ISO19111},
	{"CD_Ellipsoid.axisUnit", Mandatory, ISO19111},
	{"CD_GeodeticDatum.ellipsoid", Mandatory, ISO19111},
	{"CD_GeodeticDatum.primeMeridian", Mandatory, ISO19111},
	{"CD_PrimeMeridian.angularUnit", Mandatory, ISO19111},
	{"CD_TemporalDatum.origin", Mandatory, ISO19111},
	{"CD_ImageDatum.pixelInCell", Mandatory, ISO19111},
	{"CD_VerticalDatum.vertDatumType", Mandatory, ISO19111},
	{"CD_Datum.anchorPoint", Optional, ISO19111},
	{"CC_CoordinateOperation.sourceCRS", Conditional, ISO19111},
	{"CC_CoordinateOperation.targetCRS", Conditional, ISO19111},
	{"CC_CoordinateOperation.operationVersion", Conditional, ISO19111},
	{"CC_SingleOperation.method", Mandatory, ISO19111},
	{"CC_SingleOperation.parameterValue", Mandatory, ISO19111},
	{"CC_OperationMethod.formula", Mandatory, ISO19111},
	{"CC_GeneralParameterValue.parameter", Mandatory, ISO19111},
	{"CC_ParameterValue.value", Conditional, ISO19111},
	// ISO 19107 geometry
	{"DirectPosition.coordinate", Mandatory, ISO19107},
	{"GM_Envelope.lowerCorner", Mandatory, ISO19107},
	{"GM_Envelope.upperCorner", Mandatory, ISO19107},
	// ISO 19115 metadata
	{"MD_Metadata.contact", Mandatory, ISO19115},
	{"MD_Metadata.dateStamp", Mandatory, ISO19115},
	{"MD_Metadata.identificationInfo", Mandatory, ISO19115},
	{"MD_Metadata.language", Conditional, ISO19115},
	{"CI_Citation.title", Mandatory, ISO19115},
	{"CI_Date.date", Mandatory, ISO19115},
	{"CI_Date.dateType", Mandatory, ISO19115},
	{"CI_Responsibility.role", Mandatory, ISO19115},
	{"CI_Responsibility.party", Mandatory, ISO19115},
	{"MD_Identifier.code", Mandatory, ISO19115},
	{"MD_Identification.citation", Mandatory, ISO19115},
	{"MD_Identification.abstract", Mandatory, ISO19115},
	{"MD_DataIdentification.language", Mandatory, ISO19115},
	{"MD_Keywords.keyword", Mandatory, ISO19115},
	{"EX_Extent.geographicElement", Conditional, ISO19115},
	{"EX_GeographicBoundingBox.westBoundLongitude", Mandatory, ISO19115},
	{"EX_GeographicBoundingBox.eastBoundLongitude", Mandatory, ISO19115},
	{"EX_GeographicBoundingBox.southBoundLatitude", Mandatory, ISO19115},
	{"EX_GeographicBoundingBox.northBoundLatitude", Mandatory, ISO19115},
	{"EX_GeographicDescription.geographicIdentifier", Mandatory, ISO19115},
	{"EX_TemporalExtent.extent", Mandatory, ISO19115},
	{"CI_OnlineResource.linkage", Mandatory, ISO19115},
	// ISO 19143 filter
	{"Filter.operatorType", Mandatory, ISO19143},
	{"Expression.functionName", Mandatory, ISO19143},
	{"ValueReference.xpath", Mandatory, ISO19143},
	{"FilterCapabilities.conformance", Mandatory, ISO19143},
	// ISO 19103 naming
	{"GenericName.scope", Mandatory, ISO19103},
	{"GenericName.parsedName", Mandatory, ISO19103},
}
