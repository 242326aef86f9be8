package xmldoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/antchfx/xmlquery"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Gobd/openapix"
)

// Resolver looks up summaries by member identifier. It is safe for
// concurrent use.
type Resolver struct {
	fsys   fs.FS
	name   string
	hook   DescriptionHook
	logger *slog.Logger

	once  sync.Once
	doc   *xmlquery.Node // nil once loaded means unavailable
	loads atomic.Int32

	cache sync.Map // member id -> *string
}

// New returns a resolver. The documentation file is not touched until the
// first lookup.
func New(opts ...Option) (*Resolver, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.fsys == nil {
		binary := cfg.binary
		if binary == "" {
			exe, err := os.Executable()
			if err != nil {
				return nil, fmt.Errorf("xmldoc: locate executable: %w", err)
			}
			binary = exe
		}
		WithPath(SidecarPath(binary))(&cfg)
	}
	if err := validation.Validate(cfg.name, validation.Required); err != nil {
		return nil, fmt.Errorf("xmldoc: file name: %w", err)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Resolver{
		fsys:   cfg.fsys,
		name:   cfg.name,
		hook:   cfg.hook,
		logger: cfg.logger,
	}, nil
}

// AddXMLComments creates a resolver and registers it as a schema
// transformer on o. The resolver logs through o's logger unless
// [WithLogger] is given.
func AddXMLComments(o *openapix.Options, opts ...Option) (*Resolver, error) {
	opts = append([]Option{WithLogger(o.Logger())}, opts...)
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	o.AddSchemaTransformer(r)
	return r, nil
}

// Loads reports how many times the documentation file was loaded: 0 before
// the first lookup, 1 afterwards.
func (r *Resolver) Loads() int {
	return int(r.loads.Load())
}

// Available loads the documentation file if needed and reports whether it
// could be read.
func (r *Resolver) Available() bool {
	return r.document() != nil
}

// TransformSchema sets the schema description from the documentation file.
// A description set by an earlier transformer is never replaced.
func (r *Resolver) TransformSchema(ctx context.Context, schema *openapi3.Schema, sc *openapix.SchemaContext) error {
	if schema.Description != "" {
		return nil
	}
	text, err := r.Describe(ctx, sc.Type, sc.Member)
	if err != nil {
		return err
	}
	if text != nil {
		schema.Description = *text
	}
	return nil
}

// Describe resolves the summary for the type t, or for the member m of its
// declaring type when m is not nil. It returns nil when nothing is
// documented.
func (r *Resolver) Describe(ctx context.Context, t reflect.Type, m *openapix.Member) (*string, error) {
	id, ok := MemberID(t, m)
	if !ok {
		return nil, nil
	}
	if v, ok := r.cache.Load(id); ok {
		return v.(*string), nil
	}

	text, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	if r.hook != nil {
		if text, err = r.hook(ctx, t, m, text); err != nil {
			return nil, fmt.Errorf("xmldoc: description hook for %s: %w", id, err)
		}
	}

	v, _ := r.cache.LoadOrStore(id, text)
	return v.(*string), nil
}

// Lookup returns the summary stored under a raw member id such as
// "T:main.Order", bypassing the cache and the hook.
func (r *Resolver) Lookup(id string) (*string, error) {
	return r.lookup(id)
}

func (r *Resolver) lookup(id string) (*string, error) {
	doc := r.document()
	if doc == nil {
		return nil, nil
	}
	node, err := xmlquery.Query(doc, "/doc/members/member[@name='"+id+"']/summary")
	if err != nil {
		return nil, fmt.Errorf("xmldoc: query %s: %w", id, err)
	}
	if node == nil {
		return nil, nil
	}
	text := strings.TrimSpace(node.InnerText())
	return &text, nil
}

func (r *Resolver) document() *xmlquery.Node {
	r.once.Do(func() {
		r.loads.Add(1)
		doc, err := r.load()
		switch {
		case errors.Is(err, fs.ErrNotExist):
			r.logger.Debug("xml documentation not found", "file", r.name)
		case err != nil:
			r.logger.Warn("xml documentation unreadable", "file", r.name, "error", err)
		default:
			r.doc = doc
			r.logger.Debug("xml documentation loaded", "file", r.name)
		}
	})
	return r.doc
}

func (r *Resolver) load() (*xmlquery.Node, error) {
	f, err := r.fsys.Open(r.name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return xmlquery.Parse(f)
}
