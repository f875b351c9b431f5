package tenant

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
)

// EventKind classifies a resolution decision point.
type EventKind uint8

const (
	// EventParserSkipped means the parser produced no candidate.
	EventParserSkipped EventKind = iota + 1
	// EventTenantFound means the directory returned a tenant; resolution stops.
	EventTenantFound
	// EventTenantNotFound means the candidate is unknown; the next parser is tried.
	EventTenantNotFound
	// EventLookupFailed means the directory failed or the request was canceled.
	EventLookupFailed
	// EventNoTenant means the chain was exhausted without a match.
	EventNoTenant
)

func (k EventKind) String() string {
	switch k {
	case EventParserSkipped:
		return "parser_skipped"
	case EventTenantFound:
		return "tenant_found"
	case EventTenantNotFound:
		return "tenant_not_found"
	case EventLookupFailed:
		return "lookup_failed"
	case EventNoTenant:
		return "no_tenant"
	default:
		return "unknown"
	}
}

// Event describes one resolution decision.
type Event struct {
	Kind      EventKind
	Parser    string
	Candidate string
	Canonical string
	TenantID  string
	URL       string
	Err       error
}

// Observer receives resolution events. Implementations must be safe for
// concurrent use since one resolver serves all requests.
type Observer interface {
	Observe(ctx context.Context, e Event)
}

// ObserverFunc is an adapter to allow the use of ordinary functions as Observers.
type ObserverFunc func(ctx context.Context, e Event)

// Observe calls the function.
func (f ObserverFunc) Observe(ctx context.Context, e Event) {
	f(ctx, e)
}

type nopObserver struct{}

func (nopObserver) Observe(context.Context, Event) {}

type multiObserver []Observer

func (m multiObserver) Observe(ctx context.Context, e Event) {
	for _, o := range m {
		o.Observe(ctx, e)
	}
}

// MultiObserver fans events out to every non-nil observer in order.
func MultiObserver(observers ...Observer) Observer {
	clean := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			clean = append(clean, o)
		}
	}
	return clean
}

// LogObserver writes events to log. Decisions are logged at debug level,
// lookup failures at warn level.
func LogObserver(log *slog.Logger) Observer {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("tenant"))

	return ObserverFunc(func(ctx context.Context, e Event) {
		attrs := []slog.Attr{
			logger.Event(e.Kind.String()),
			logger.Parser(e.Parser),
			logger.URL(e.URL),
		}
		switch e.Kind {
		case EventParserSkipped:
			log.LogAttrs(ctx, slog.LevelDebug, "parser did not match", attrs...)
		case EventTenantFound:
			attrs = append(attrs, logger.TenantID(e.TenantID), logger.Canonical(e.Canonical))
			log.LogAttrs(ctx, slog.LevelDebug, "tenant found", attrs...)
		case EventTenantNotFound:
			attrs = append(attrs, logger.Candidate(e.Candidate), logger.Canonical(e.Canonical))
			log.LogAttrs(ctx, slog.LevelDebug, "tenant not found for parser", attrs...)
		case EventLookupFailed:
			attrs = append(attrs, logger.Canonical(e.Canonical), logger.Error(e.Err))
			log.LogAttrs(ctx, slog.LevelWarn, "tenant lookup failed", attrs...)
		case EventNoTenant:
			log.LogAttrs(ctx, slog.LevelDebug, "no tenant resolved", logger.URL(e.URL))
		}
	})
}
