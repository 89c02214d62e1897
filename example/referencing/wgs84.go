package referencing

import (
	"sync"

	exmeta "github.com/geoapi/geoconform/example/metadata"
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/referencing/datum"
	"github.com/geoapi/geoconform/units"
)

// EPSG returns properties named name with an EPSG identifier.
func EPSG(name, code string) referencing.Properties {
	return referencing.Properties{
		referencing.NameKey:        name,
		referencing.IdentifiersKey: []metadata.Identifier{exmeta.NewIdentifier("EPSG", code)},
	}
}

var (
	wgs84Once sync.Once
	wgs84     *SingleCRS
	greenwich *PrimeMeridian
)

// Greenwich returns the Greenwich prime meridian (EPSG:8901).
func Greenwich() *PrimeMeridian {
	wgs84Once.Do(initWGS84)
	return greenwich
}

// WGS84 returns the two-dimensional geographic CRS (EPSG:4326) with
// latitude before longitude, in degrees.
func WGS84() *SingleCRS {
	wgs84Once.Do(initWGS84)
	return wgs84
}

func initWGS84() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	var err error
	greenwich, err = NewPrimeMeridian(EPSG("Greenwich", "8901"), 0, units.Degree)
	must(err)
	ellipsoid, err := NewFlattenedSphere(EPSG("WGS 84", "7030"), 6378137, 298.257223563, units.Metre)
	must(err)
	d, err := NewGeodeticDatum(EPSG("World Geodetic System 1984", "6326"), ellipsoid, greenwich)
	must(err)
	lat, err := NewAxis(referencing.Named("Geodetic latitude"), "φ", cs.North, units.Degree)
	must(err)
	lon, err := NewAxis(referencing.Named("Geodetic longitude"), "λ", cs.East, units.Degree)
	must(err)
	ellipsoidal, err := NewCoordinateSystem(EPSG("Ellipsoidal 2D CS", "6422"), cs.Ellipsoidal, lat, lon)
	must(err)
	props := EPSG("WGS 84", "4326")
	props[referencing.DomainOfValidityKey] = exmeta.NewBoundingBoxExtent(-180, 180, -90, 90)
	wgs84, err = NewSingleCRS(props, crs.Geographic, d, ellipsoidal)
	must(err)
}

// GeodeticDatumOf returns the geodetic datum of c, or nil.
func GeodeticDatumOf(c crs.CRS) datum.GeodeticDatum {
	if s, ok := c.(crs.Single); ok {
		if g, ok := s.Datum().(datum.GeodeticDatum); ok {
			return g
		}
	}
	return nil
}
