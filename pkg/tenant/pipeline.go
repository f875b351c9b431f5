package tenant

import "errors"

// Pipeline assembles a parser chain in registration order.
// Construction errors are collected and reported by Build.
//
//	res, err := tenant.NewPipeline().
//		Header("X-Tenant-ID").
//		HostParent("tenants.example.com").
//		PathPrefix("/tenants/").
//		Build(dir, tenant.DefaultNormalizer())
type Pipeline struct {
	parsers []Parser
	errs    []error
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Add appends custom parsers.
func (p *Pipeline) Add(parsers ...Parser) *Pipeline {
	p.parsers = append(p.parsers, parsers...)
	return p
}

// Domain appends a parser using the full host name.
func (p *Pipeline) Domain() *Pipeline {
	return p.Add(NewDomainParser())
}

// Header appends a header parser.
func (p *Pipeline) Header(name string) *Pipeline {
	return p.Add(NewHeaderParser(name))
}

// Query appends a query parameter parser.
func (p *Pipeline) Query(name string) *Pipeline {
	return p.Add(NewQueryParser(name))
}

// Host appends a host parser for a regular expression.
func (p *Pipeline) Host(expr string) *Pipeline {
	parser, err := NewHostParser(expr)
	return p.addOrFail(parser, err)
}

// HostParent appends a host parser capturing the label below parent.
func (p *Pipeline) HostParent(parent string) *Pipeline {
	parser, err := NewHostParserFromParent(parent)
	return p.addOrFail(parser, err)
}

// Path appends a path parser for a regular expression.
func (p *Pipeline) Path(expr string) *Pipeline {
	parser, err := NewPathParser(expr)
	return p.addOrFail(parser, err)
}

// PathPrefix appends a path parser capturing the segment after prefix.
func (p *Pipeline) PathPrefix(prefix string) *Pipeline {
	parser, err := NewPathParserFromPrefix(prefix)
	return p.addOrFail(parser, err)
}

// Specs appends parsers described declaratively.
func (p *Pipeline) Specs(specs ...ParserSpec) *Pipeline {
	for _, spec := range specs {
		parser, err := spec.Parser()
		p.addOrFail(parser, err)
	}
	return p
}

// Build creates the resolver. Extra options are applied after the chain is set.
func (p *Pipeline) Build(dir Directory, norm Normalizer, opts ...Option) (*Resolver, error) {
	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithParsers(p.parsers...))
	all = append(all, opts...)
	return NewResolver(dir, norm, all...)
}

func (p *Pipeline) addOrFail(parser Parser, err error) *Pipeline {
	if err != nil {
		p.errs = append(p.errs, err)
		return p
	}
	return p.Add(parser)
}
