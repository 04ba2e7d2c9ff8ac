package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vellum-dev/vellum/pkg/component"
)

// defaultTracerName is the tracer name used when none is configured.
const defaultTracerName = "vellum"

// TraceConfig configures the tracing observer.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "vellum").
	TracerName string

	// Filter decides which components to trace. Nil traces all.
	Filter func(c *component.Component) bool

	// AttributeExtractor adds custom attributes to each connect span.
	AttributeExtractor func(c *component.Component) []attribute.KeyValue
}

// TraceOption configures the tracing observer.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) { c.TracerName = name }
}

// WithFilter sets a component filter.
func WithFilter(filter func(c *component.Component) bool) TraceOption {
	return func(c *TraceConfig) { c.Filter = filter }
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(fn func(c *component.Component) []attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) { c.AttributeExtractor = fn }
}

// Tracing is an OpenTelemetry observer: one span per connection, from
// the pre hook starting to the component reaching ready or error.
type Tracing struct {
	cfg    TraceConfig
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[*component.Component]trace.Span
}

var _ component.Observer = (*Tracing)(nil)

// NewTracing creates a tracing observer using the global tracer
// provider.
func NewTracing(opts ...TraceOption) *Tracing {
	cfg := TraceConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tracing{
		cfg:    cfg,
		tracer: otel.Tracer(cfg.TracerName),
		spans:  make(map[*component.Component]trace.Span),
	}
}

// StateChanged implements component.Observer.
func (t *Tracing) StateChanged(c *component.Component, _, to component.State) {
	if t.cfg.Filter != nil && !t.cfg.Filter(c) {
		return
	}

	switch to {
	case component.StatePreRunning:
		attrs := []attribute.KeyValue{
			attribute.String("vellum.tag", c.Element().Tag()),
		}
		if t.cfg.AttributeExtractor != nil {
			attrs = append(attrs, t.cfg.AttributeExtractor(c)...)
		}
		_, span := t.tracer.Start(context.Background(), "component.connect",
			trace.WithAttributes(attrs...))
		t.mu.Lock()
		t.spans[c] = span
		t.mu.Unlock()

	case component.StateRenderEnabled, component.StateInitRunning:
		if span := t.lookup(c); span != nil {
			span.AddEvent(to.String())
		}

	case component.StateReady:
		if span := t.take(c); span != nil {
			span.SetStatus(codes.Ok, "")
			span.End()
		}

	case component.StateError:
		if span := t.take(c); span != nil {
			span.SetStatus(codes.Error, "component setup failed")
			span.End()
		}
	}
}

// Rendered implements component.Observer.
func (t *Tracing) Rendered(c *component.Component) {
	if span := t.lookup(c); span != nil {
		span.AddEvent("render")
	}
}

func (t *Tracing) lookup(c *component.Component) trace.Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.spans[c]
}

func (t *Tracing) take(c *component.Component) trace.Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	span := t.spans[c]
	delete(t.spans, c)
	return span
}
