// Package registry binds tag names to component definitions. The
// registry is an explicit object rather than package-level state, so
// hosts and tests can hold isolated registries.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vellum-dev/vellum/pkg/component"
	"github.com/vellum-dev/vellum/pkg/dom"
)

// Sentinel errors surfaced by the registry.
var (
	// ErrInvalidTag is returned for tag names the registry rejects.
	ErrInvalidTag = errors.New("registry: invalid tag name")

	// ErrDuplicateTag is returned when a tag is already defined.
	ErrDuplicateTag = errors.New("registry: tag already defined")

	// ErrNotDefined is returned when a tag has no definition.
	ErrNotDefined = errors.New("registry: tag not defined")
)

// Definition binds a constructor to a tag. New receives the freshly
// created element and returns its component.
type Definition struct {
	New func(el *dom.Element) *component.Component
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry's logger. Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// Registry maps tag names to component definitions.
type Registry struct {
	defs map[string]*Definition
	log  *slog.Logger
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{defs: make(map[string]*Definition)}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

// Define registers def under tag and returns def unchanged, so
// definitions can be built and registered in one expression.
// Validation is only what an element registry itself enforces: a
// lowercase, hyphenated tag, defined at most once.
func (r *Registry) Define(tag string, def *Definition) (*Definition, error) {
	if err := validateTag(tag); err != nil {
		return nil, err
	}
	if def == nil || def.New == nil {
		return nil, fmt.Errorf("%w: nil definition for %q", ErrInvalidTag, tag)
	}
	if _, exists := r.defs[tag]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	r.defs[tag] = def
	r.log.Debug("defined element", "tag", tag)
	return def, nil
}

// Lookup returns the definition for tag, if any.
func (r *Registry) Lookup(tag string) (*Definition, bool) {
	def, ok := r.defs[tag]
	return def, ok
}

// Tags returns the defined tag names, in no particular order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.defs))
	for tag := range r.defs {
		tags = append(tags, tag)
	}
	return tags
}

// CreateElement instantiates an element for a defined tag with its
// component attached but not yet connected.
func (r *Registry) CreateElement(tag string) (*dom.Element, *component.Component, error) {
	def, ok := r.defs[tag]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotDefined, tag)
	}
	el := dom.NewElement(tag)
	c := def.New(el)
	if c == nil {
		return nil, nil, fmt.Errorf("%w: constructor for %q returned nil", ErrInvalidTag, tag)
	}
	return el, c, nil
}

// Upgrade creates and connects an element in one step, the way a host
// document upgrades a known tag on insertion.
func (r *Registry) Upgrade(ctx context.Context, tag string) (*dom.Element, *component.Component, error) {
	el, c, err := r.CreateElement(tag)
	if err != nil {
		return nil, nil, err
	}
	c.Connect(ctx)
	return el, c, nil
}

// validateTag enforces the host-registry naming rules: non-empty,
// lowercase ASCII letters, digits and hyphens, starting with a letter,
// and containing at least one hyphen.
func validateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if !strings.Contains(tag, "-") {
		return fmt.Errorf("%w: %q must contain a hyphen", ErrInvalidTag, tag)
	}
	if tag[0] < 'a' || tag[0] > 'z' {
		return fmt.Errorf("%w: %q must start with a lowercase letter", ErrInvalidTag, tag)
	}
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidTag, tag, r)
		}
	}
	return nil
}
