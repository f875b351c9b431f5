package tenant

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser kinds accepted by ParserSpec.
const (
	KindDomain     = "domain"
	KindHeader     = "header"
	KindQuery      = "query"
	KindHost       = "host"
	KindSubdomain  = "subdomain"
	KindPath       = "path"
	KindPathPrefix = "path_prefix"
)

// ParserSpec describes one parser declaratively, e.g. in YAML:
//
//	parsers:
//	  - kind: header
//	    value: X-Tenant-ID
//	  - kind: subdomain
//	    value: tenants.example.com
//
// or in the compact "kind:value" form used for environment variables.
type ParserSpec struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

// ParseParserSpec parses the compact "kind:value" form.
// The value may itself contain colons; only the first one separates the kind.
func ParseParserSpec(s string) (ParserSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ParserSpec{}, fmt.Errorf("%w: empty", ErrInvalidParserSpec)
	}
	kind, value, _ := strings.Cut(s, ":")
	spec := ParserSpec{Kind: strings.ToLower(strings.TrimSpace(kind)), Value: strings.TrimSpace(value)}
	if _, err := spec.Parser(); err != nil {
		return ParserSpec{}, err
	}
	return spec, nil
}

// UnmarshalText lets ParserSpec be decoded from environment variables.
func (s *ParserSpec) UnmarshalText(text []byte) error {
	spec, err := ParseParserSpec(string(text))
	if err != nil {
		return err
	}
	*s = spec
	return nil
}

// String renders the compact form.
func (s ParserSpec) String() string {
	if s.Value == "" {
		return s.Kind
	}
	return s.Kind + ":" + s.Value
}

// Parser builds the parser s describes.
func (s ParserSpec) Parser() (Parser, error) {
	switch s.Kind {
	case KindDomain:
		return NewDomainParser(), nil
	case KindHeader:
		return NewHeaderParser(s.Value), nil
	case KindQuery:
		return NewQueryParser(s.Value), nil
	case KindHost:
		p, err := NewHostParser(s.Value)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindSubdomain:
		p, err := NewHostParserFromParent(s.Value)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindPath:
		p, err := NewPathParser(s.Value)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindPathPrefix:
		p, err := NewPathParserFromPrefix(s.Value)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidParserSpec, s.Kind)
	}
}

// ParsersFromSpecs builds parsers in order, reporting every invalid spec.
func ParsersFromSpecs(specs []ParserSpec) ([]Parser, error) {
	parsers := make([]Parser, 0, len(specs))
	var errs []error
	for i, spec := range specs {
		p, err := spec.Parser()
		if err != nil {
			errs = append(errs, fmt.Errorf("parser %d (%s): %w", i, spec, err))
			continue
		}
		parsers = append(parsers, p)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return parsers, nil
}

type pipelineDocument struct {
	Parsers []ParserSpec `yaml:"parsers"`
}

// DecodePipeline reads a YAML pipeline document.
func DecodePipeline(r io.Reader) ([]ParserSpec, error) {
	var doc pipelineDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidParserSpec, err)
	}
	for i := range doc.Parsers {
		doc.Parsers[i].Kind = strings.ToLower(strings.TrimSpace(doc.Parsers[i].Kind))
	}
	if _, err := ParsersFromSpecs(doc.Parsers); err != nil {
		return nil, err
	}
	return doc.Parsers, nil
}

// LoadPipelineFile reads a YAML pipeline document from path.
func LoadPipelineFile(path string) ([]ParserSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodePipeline(f)
}
