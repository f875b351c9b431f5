package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TenantID records the tenant identifier under the key "tenant_id".
// If id is empty, it returns an empty Attr.
func TenantID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("tenant_id", id)
}

// Parser records the parser name under the key "parser".
// If name is empty, it returns an empty Attr.
func Parser(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("parser", name)
}

// Candidate records the raw tenant candidate under the key "candidate".
// If value is empty, it returns an empty Attr.
func Candidate(value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String("candidate", value)
}

// Canonical records the normalized tenant identifier under the key "canonical".
// If value is empty, it returns an empty Attr.
func Canonical(value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String("canonical", value)
}

// URL records the request URL under the key "url".
func URL(u string) slog.Attr {
	return slog.String("url", u)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Backend records the directory backend name under the key "backend".
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
