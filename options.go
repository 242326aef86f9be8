package openapix

import (
	"io"
	"log/slog"
)

// Option configures [Options].
type Option func(*config)

type config struct {
	logger               *slog.Logger
	marshaler            Marshaler
	useAllExportedFields bool
}

// WithLogger sets the logger used for debug output while registering and
// running transformers. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMarshaler sets the serializer used to render example values.
// The default is [JSONMarshaler].
func WithMarshaler(m Marshaler) Option {
	return func(c *config) {
		if m != nil {
			c.marshaler = m
		}
	}
}

// WithAllExportedFields includes exported struct fields without a json tag
// in generated schemas. Such fields are documented as [MemberField].
func WithAllExportedFields() Option {
	return func(c *config) { c.useAllExportedFields = true }
}

// Options is the transformer registry the host runs on every generation
// pass. Transformers run in registration order within their phase.
//
// Options is not safe for concurrent registration; register everything
// during start-up, then share it across requests.
type Options struct {
	cfg config

	documents  []DocumentTransformer
	operations []OperationTransformer
	schemas    []SchemaTransformer

	types *typeRegistry
}

// New returns an empty registry.
func New(opts ...Option) *Options {
	cfg := config{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		marshaler: JSONMarshaler{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Options{cfg: cfg}
}

// Logger returns the configured logger.
func (o *Options) Logger() *slog.Logger {
	return o.cfg.logger
}

// Marshaler returns the configured example serializer.
func (o *Options) Marshaler() Marshaler {
	return o.cfg.marshaler
}

// AddDocumentTransformer appends t to the document phase.
func (o *Options) AddDocumentTransformer(t DocumentTransformer) *Options {
	o.documents = append(o.documents, t)
	return o
}

// AddOperationTransformer appends t to the operation phase.
func (o *Options) AddOperationTransformer(t OperationTransformer) *Options {
	o.operations = append(o.operations, t)
	return o
}

// AddSchemaTransformer appends t to the schema phase.
func (o *Options) AddSchemaTransformer(t SchemaTransformer) *Options {
	o.schemas = append(o.schemas, t)
	return o
}
