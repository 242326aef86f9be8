package openapix

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
)

// TypeSpec describes how schemas for one concrete Go type are overridden.
// It is the single shape every AddType variant funnels into.
type TypeSpec struct {
	Target   reflect.Type
	TypeName string // declared schema type; defaults to Target's simple name
	Format   string

	Example    any
	HasExample bool // false: the zero value of Target is used

	Description string

	Properties    openapi3.Schemas
	SetProperties bool // replace properties; nil Properties means empty

	KeepAnnotations bool
}

// TypeOption configures a [TypeSpec].
type TypeOption func(*TypeSpec)

// WithFormat sets the schema format, e.g. "date-time".
func WithFormat(format string) TypeOption {
	return func(s *TypeSpec) { s.Format = format }
}

// WithExample sets the example value. It is rendered with the configured
// [Marshaler] through [FormatExample].
func WithExample(example any) TypeOption {
	return func(s *TypeSpec) {
		s.Example = example
		s.HasExample = true
	}
}

// WithDescription sets the schema description.
func WithDescription(desc string) TypeOption {
	return func(s *TypeSpec) { s.Description = desc }
}

// WithProperties replaces the schema properties. A nil map clears them.
func WithProperties(props openapi3.Schemas) TypeOption {
	return func(s *TypeSpec) {
		s.Properties = props
		s.SetProperties = true
	}
}

// WithTypeName overrides the declared schema type.
func WithTypeName(name string) TypeOption {
	return func(s *TypeSpec) { s.TypeName = name }
}

// KeepAnnotations leaves generator annotations on matched schemas.
func KeepAnnotations() TypeOption {
	return func(s *TypeSpec) { s.KeepAnnotations = true }
}

// ErrNilTarget is returned when a TypeSpec has no target type.
var ErrNilTarget = errors.New("type spec has no target type")

// AddType overrides the schema of every node generated for T.
//
//	openapix.AddType[Money](o, openapix.WithFormat("decimal"), openapix.WithExample(Money{Units: 12}))
func AddType[T any](o *Options, opts ...TypeOption) error {
	spec := TypeSpec{Target: reflect.TypeFor[T]()}
	for _, opt := range opts {
		opt(&spec)
	}
	return o.AddTypeSpec(spec)
}

// AddTypeAs is AddType with the declared schema type taken from U's simple
// name, e.g. AddTypeAs[civil.Date, string].
func AddTypeAs[T, U any](o *Options, opts ...TypeOption) error {
	opts = append([]TypeOption{WithTypeName(typeName(reflect.TypeFor[U]()))}, opts...)
	return AddType[T](o, opts...)
}

// AddTypeExample sets only the format and example of T, declared as U.
// Unlike the other variants it keeps generator annotations.
func AddTypeExample[T, U any](o *Options, format string, example T) error {
	return AddTypeAs[T, U](o, WithFormat(format), WithExample(example), KeepAnnotations())
}

// AddTypeSpec registers spec. Specs are matched on exact type identity;
// several specs for the same type apply in registration order.
func (o *Options) AddTypeSpec(spec TypeSpec) error {
	if spec.Target == nil {
		return ErrNilTarget
	}
	if o.types == nil {
		o.types = &typeRegistry{specs: map[reflect.Type][]TypeSpec{}, marshaler: o.cfg.marshaler}
		o.AddSchemaTransformer(o.types)
	}
	o.types.specs[spec.Target] = append(o.types.specs[spec.Target], spec)
	o.cfg.logger.Debug("registered type schema", "type", spec.Target.String(), "format", spec.Format)
	return nil
}

// typeRegistry dispatches every registered TypeSpec through one schema
// transformer.
type typeRegistry struct {
	specs     map[reflect.Type][]TypeSpec
	marshaler Marshaler
}

func (r *typeRegistry) TransformSchema(_ context.Context, schema *openapi3.Schema, sc *SchemaContext) error {
	specs, ok := r.specs[sc.Type]
	if !ok {
		return nil
	}
	for _, spec := range specs {
		if err := spec.apply(schema, r.marshaler); err != nil {
			return err
		}
	}
	return nil
}

func (s TypeSpec) apply(schema *openapi3.Schema, m Marshaler) error {
	name := s.TypeName
	if name == "" {
		name = typeName(s.Target)
	}
	schema.Type = &openapi3.Types{name}

	if s.Format != "" {
		schema.Format = s.Format
	}

	example := s.Example
	if !s.HasExample {
		example = reflect.Zero(s.Target).Interface()
	}
	formatted, err := FormatExample(example, m)
	if err != nil {
		return fmt.Errorf("format example for %s: %w", s.Target, err)
	}
	schema.Example = formatted

	if s.Description != "" {
		schema.Description = s.Description
	}
	if s.SetProperties {
		props := openapi3.Schemas{}
		maps.Copy(props, s.Properties)
		schema.Properties = props
	}
	if !s.KeepAnnotations {
		ClearAnnotations(schema)
	}
	return nil
}
