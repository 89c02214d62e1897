// Package dataset bundles reference documents used to exercise the
// validators: CRS documents in YAML or JSON, PROJ definitions and ACDD
// attribute dumps.
package dataset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/geoapi/geoconform/example/attrmeta"
)

//go:embed data
var files embed.FS

// ErrNotFound reports an unknown dataset name.
var ErrNotFound = errors.New("dataset: not found")

// Kind classifies documents by file name suffix.
type Kind int

const (
	Unknown Kind = iota
	CRSDocument
	ProjDefinition
	Attributes
)

func (k Kind) String() string {
	switch k {
	case CRSDocument:
		return "crs"
	case ProjDefinition:
		return "proj"
	case Attributes:
		return "attributes"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of a file name: ".attrs.json" is an attribute
// dump, ".proj" a PROJ definition, ".yaml", ".yml" and ".json" CRS documents.
func KindOf(name string) Kind {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".attrs.json"):
		return Attributes
	case strings.HasSuffix(lower, ".proj"):
		return ProjDefinition
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"), strings.HasSuffix(lower, ".json"):
		return CRSDocument
	}
	return Unknown
}

// Names lists the bundled datasets in lexical order.
func Names() []string {
	entries, err := fs.ReadDir(files, "data")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && KindOf(e.Name()) != Unknown {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

// Content returns the raw bytes of a bundled dataset.
func Content(name string) ([]byte, error) {
	b, err := files.ReadFile(path.Join("data", name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return b, nil
}

// Load decodes a bundled dataset. CRS documents and PROJ definitions yield a
// crs.CRS, attribute dumps a metadata.Metadata.
func Load(name string) (any, error) {
	b, err := Content(name)
	if err != nil {
		return nil, err
	}
	return Decode(name, b)
}

// Decode builds the object held by data, using name to pick the format.
func Decode(name string, data []byte) (any, error) {
	switch KindOf(name) {
	case Attributes:
		return attrmeta.Read(bytes.NewReader(data))
	case ProjDefinition:
		return NewBuilder().Build(&Document{Name: strings.TrimSuffix(path.Base(name), path.Ext(name)), Proj: projLine(data)})
	case CRSDocument:
		d, err := DecodeDocument(name, data)
		if err != nil {
			return nil, err
		}
		return NewBuilder().Build(d)
	}
	return nil, fmt.Errorf("%w: %s: unsupported file type", ErrDocument, name)
}

// DecodeDocument parses a YAML or JSON CRS document. Unknown fields are
// rejected.
func DecodeDocument(name string, data []byte) (*Document, error) {
	var d Document
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDocument, name, err)
		}
		return &d, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocument, name, err)
	}
	return &d, nil
}

// projLine joins the non-comment lines of a PROJ definition file.
func projLine(data []byte) string {
	var parts []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
