package config

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaSource is where a subgraph schema comes from. The set of sources is
// closed: FileSource, IntrospectionSource, RegistrySource and SdlSource.
type SchemaSource interface {
	schemaSource()
}

// FileSource points at a schema file, relative to the supergraph config
type FileSource struct {
	File string
}

// IntrospectionSource points at a running subgraph which is introspected
type IntrospectionSource struct {
	SubgraphURL          string
	IntrospectionHeaders map[string]string
}

// RegistrySource points at a subgraph published to a registry graph variant
type RegistrySource struct {
	GraphRef string
	Subgraph string
}

// SdlSource carries the schema inline
type SdlSource struct {
	Sdl string
}

func (FileSource) schemaSource()          {}
func (IntrospectionSource) schemaSource() {}
func (RegistrySource) schemaSource()      {}
func (SdlSource) schemaSource()           {}

var (
	ErrNoSchemaSource        = errors.New("no schema source set, expected one of file, subgraph_url, graphref or sdl")
	ErrMultipleSchemaSources = errors.New("more than one schema source set")
)

// schemaSourceWire is the on-disk representation of a SchemaSource
type schemaSourceWire struct {
	File                 string            `yaml:"file,omitempty" json:"file,omitempty"`
	SubgraphURL          string            `yaml:"subgraph_url,omitempty" json:"subgraph_url,omitempty"`
	IntrospectionHeaders map[string]string `yaml:"introspection_headers,omitempty" json:"introspection_headers,omitempty"`
	GraphRef             string            `yaml:"graphref,omitempty" json:"graphref,omitempty"`
	Subgraph             string            `yaml:"subgraph,omitempty" json:"subgraph,omitempty"`
	Sdl                  string            `yaml:"sdl,omitempty" json:"sdl,omitempty"`
}

func (w schemaSourceWire) toSchemaSource() (SchemaSource, error) {
	var set []string
	if w.File != "" {
		set = append(set, "file")
	}
	if w.SubgraphURL != "" {
		set = append(set, "subgraph_url")
	}
	if w.GraphRef != "" {
		set = append(set, "graphref")
	}
	if w.Sdl != "" {
		set = append(set, "sdl")
	}

	switch len(set) {
	case 0:
		return nil, ErrNoSchemaSource
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrMultipleSchemaSources, strings.Join(set, ", "))
	}

	if len(w.IntrospectionHeaders) > 0 && w.SubgraphURL == "" {
		return nil, errors.New("introspection_headers can only be used with subgraph_url")
	}
	if w.Subgraph != "" && w.GraphRef == "" {
		return nil, errors.New("subgraph can only be used with graphref")
	}

	switch {
	case w.File != "":
		return FileSource{File: w.File}, nil
	case w.SubgraphURL != "":
		return IntrospectionSource{
			SubgraphURL:          w.SubgraphURL,
			IntrospectionHeaders: w.IntrospectionHeaders,
		}, nil
	case w.GraphRef != "":
		if w.Subgraph == "" {
			return nil, errors.New("graphref requires a subgraph name")
		}
		return RegistrySource{GraphRef: w.GraphRef, Subgraph: w.Subgraph}, nil
	default:
		return SdlSource{Sdl: w.Sdl}, nil
	}
}

func fromSchemaSource(source SchemaSource) (schemaSourceWire, error) {
	switch s := source.(type) {
	case FileSource:
		return schemaSourceWire{File: s.File}, nil
	case IntrospectionSource:
		return schemaSourceWire{SubgraphURL: s.SubgraphURL, IntrospectionHeaders: s.IntrospectionHeaders}, nil
	case RegistrySource:
		return schemaSourceWire{GraphRef: s.GraphRef, Subgraph: s.Subgraph}, nil
	case SdlSource:
		return schemaSourceWire{Sdl: s.Sdl}, nil
	case nil:
		return schemaSourceWire{}, ErrNoSchemaSource
	default:
		return schemaSourceWire{}, fmt.Errorf("unknown schema source %T", source)
	}
}
