package tenant

import (
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
)

const (
	// DefaultHeader is used by NewHeaderParser when no header name is given.
	DefaultHeader = "X-Tenant-ID"

	// DefaultQueryParam is used by NewQueryParser when no parameter name is given.
	DefaultQueryParam = "tenant"

	// Wildcard matches any single identifier segment in HostPattern and PathPattern input.
	Wildcard = "*"

	identifierClass = `[\w-]+`
)

// Parser extracts a raw tenant candidate from a request.
// Parse must be a pure function of the request. A request the parser
// does not apply to yields ok == false, never an error.
type Parser interface {
	Parse(r *http.Request) (candidate string, ok bool)

	// Name identifies the parser in diagnostics.
	Name() string
}

// DomainParser uses the full request host name as the candidate.
type DomainParser struct{}

// NewDomainParser creates a parser returning the request host name verbatim.
func NewDomainParser() DomainParser {
	return DomainParser{}
}

func (DomainParser) Parse(r *http.Request) (string, bool) {
	host := hostname(r)
	return host, host != ""
}

func (DomainParser) Name() string { return "domain" }

// HeaderParser reads the candidate from a request header.
type HeaderParser struct {
	Header string
}

// NewHeaderParser creates a header parser.
// Defaults to "X-Tenant-ID" if header is empty.
func NewHeaderParser(header string) *HeaderParser {
	if header == "" {
		header = DefaultHeader
	}
	return &HeaderParser{Header: header}
}

func (p *HeaderParser) Parse(r *http.Request) (string, bool) {
	return nonBlank(r.Header.Get(p.Header))
}

func (p *HeaderParser) Name() string { return "header:" + p.Header }

// QueryParser reads the candidate from a URL query parameter.
type QueryParser struct {
	Param string
}

// NewQueryParser creates a query parser.
// Defaults to "tenant" if param is empty.
func NewQueryParser(param string) *QueryParser {
	if param == "" {
		param = DefaultQueryParam
	}
	return &QueryParser{Param: param}
}

func (p *QueryParser) Parse(r *http.Request) (string, bool) {
	if r.URL == nil {
		return "", false
	}
	return nonBlank(r.URL.Query().Get(p.Param))
}

func (p *QueryParser) Name() string { return "query:" + p.Param }

// HostParser matches a regular expression against the host name
// and returns its first capture group.
type HostParser struct {
	pattern *regexp.Regexp
}

// NewHostParser compiles expr. The expression must contain at least one capture group.
func NewHostParser(expr string) (*HostParser, error) {
	re, err := compilePattern(expr)
	if err != nil {
		return nil, err
	}
	return &HostParser{pattern: re}, nil
}

// NewHostParserFromParent creates a host parser for tenants living one label
// below parent, e.g. "tenants.example.com" matches "acme.tenants.example.com".
func NewHostParserFromParent(parent string) (*HostParser, error) {
	return NewHostParser(HostPattern(parent))
}

func (p *HostParser) Parse(r *http.Request) (string, bool) {
	return firstGroup(p.pattern, hostname(r))
}

func (p *HostParser) Name() string { return "host:" + p.pattern.String() }

// PathParser matches a regular expression against the request path
// and returns its first capture group.
type PathParser struct {
	pattern *regexp.Regexp
}

// NewPathParser compiles expr. The expression must contain at least one capture group.
func NewPathParser(expr string) (*PathParser, error) {
	re, err := compilePattern(expr)
	if err != nil {
		return nil, err
	}
	return &PathParser{pattern: re}, nil
}

// NewPathParserFromPrefix creates a path parser for the segment right after prefix,
// e.g. "/tenants/" matches "/tenants/acme/dashboard".
func NewPathParserFromPrefix(prefix string) (*PathParser, error) {
	return NewPathParser(PathPattern(prefix))
}

func (p *PathParser) Parse(r *http.Request) (string, bool) {
	if r.URL == nil {
		return "", false
	}
	return firstGroup(p.pattern, r.URL.Path)
}

func (p *PathParser) Name() string { return "path:" + p.pattern.String() }

// HostPattern builds an anchored, case-insensitive expression capturing the
// label directly below parent. Each "*" in parent matches one identifier segment.
//
//	HostPattern("tenants.example.com") == `(?i)^([\w-]+)\.tenants\.example\.com$`
func HostPattern(parent string) string {
	parent = strings.Trim(parent, ".")
	if parent == "" {
		return `(?i)^(` + identifierClass + `)$`
	}
	return `(?i)^(` + identifierClass + `)\.` + expandWildcards(parent) + `$`
}

// PathPattern builds an anchored expression capturing the path segment that
// follows prefix. Each "*" in prefix matches one identifier segment.
//
//	PathPattern("/tenants/") == `^/tenants/([\w-]+)(?:/.*)?$`
func PathPattern(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	return `^` + expandWildcards(prefix) + `/(` + identifierClass + `)(?:/.*)?$`
}

// expandWildcards escapes literal metacharacters first so that only the
// wildcard token turns into a character class.
func expandWildcards(s string) string {
	return strings.ReplaceAll(regexp.QuoteMeta(s), regexp.QuoteMeta(Wildcard), identifierClass)
}

func compilePattern(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, expr, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("%w: %q has no capture group", ErrInvalidPattern, expr)
	}
	return re, nil
}

func firstGroup(re *regexp.Regexp, s string) (string, bool) {
	if s == "" {
		return "", false
	}
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return "", false
	}
	return nonBlank(m[1])
}

// hostname returns the request host without port.
func hostname(r *http.Request) string {
	host := r.Host
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func nonBlank(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

type namedParser struct {
	name string
	fn   func(r *http.Request) (string, bool)
}

// ParserFunc adapts an ordinary function to the Parser interface.
func ParserFunc(name string, fn func(r *http.Request) (string, bool)) Parser {
	return namedParser{name: name, fn: fn}
}

func (p namedParser) Parse(r *http.Request) (string, bool) { return p.fn(r) }

func (p namedParser) Name() string { return p.name }
