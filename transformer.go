package openapix

import (
	"context"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
)

type (
	// DocumentTransformer mutates the whole document once per generation pass.
	DocumentTransformer interface {
		TransformDocument(ctx context.Context, doc *openapi3.T, dc *DocumentContext) error
	}

	// OperationTransformer mutates a single operation. It is invoked once for
	// every operation in the document.
	OperationTransformer interface {
		TransformOperation(ctx context.Context, op *openapi3.Operation, oc *OperationContext) error
	}

	// SchemaTransformer mutates a single schema node. It is invoked for every
	// node regardless of the Go type the node describes, so implementations
	// must check [SchemaContext.Type] before touching the schema.
	SchemaTransformer interface {
		TransformSchema(ctx context.Context, schema *openapi3.Schema, sc *SchemaContext) error
	}

	// DocumentTransformerFunc adapts a function to [DocumentTransformer].
	DocumentTransformerFunc func(ctx context.Context, doc *openapi3.T, dc *DocumentContext) error

	// OperationTransformerFunc adapts a function to [OperationTransformer].
	OperationTransformerFunc func(ctx context.Context, op *openapi3.Operation, oc *OperationContext) error

	// SchemaTransformerFunc adapts a function to [SchemaTransformer].
	SchemaTransformerFunc func(ctx context.Context, schema *openapi3.Schema, sc *SchemaContext) error
)

func (f DocumentTransformerFunc) TransformDocument(ctx context.Context, doc *openapi3.T, dc *DocumentContext) error {
	return f(ctx, doc, dc)
}

func (f OperationTransformerFunc) TransformOperation(ctx context.Context, op *openapi3.Operation, oc *OperationContext) error {
	return f(ctx, op, oc)
}

func (f SchemaTransformerFunc) TransformSchema(ctx context.Context, schema *openapi3.Schema, sc *SchemaContext) error {
	return f(ctx, schema, sc)
}

// DocumentContext carries request-scoped state into document transformers.
type DocumentContext struct {
	Services *Services
}

// OperationContext identifies the operation being transformed.
type OperationContext struct {
	Document *openapi3.T
	Method   string
	Path     string
	Services *Services
}

// SchemaContext describes the Go type behind a schema node. Member is nil
// when the node describes a type rather than one of its struct fields.
type SchemaContext struct {
	Type     reflect.Type
	Member   *Member
	Services *Services
}

// MemberKind classifies a struct member for documentation lookups.
type MemberKind int

const (
	// MemberUnknown marks members that have no documentation identity,
	// such as properties synthesized by a transformer.
	MemberUnknown MemberKind = iota
	// MemberProperty is a struct field serialized under an explicit json tag.
	MemberProperty
	// MemberField is an exported struct field serialized under its Go name.
	MemberField
)

// Member describes the struct field a schema node was generated from.
type Member struct {
	DeclaringType reflect.Type
	Name          string // Go field name
	JSONName      string // property name in the schema
	Kind          MemberKind
}

// MemberKindOf classifies a struct field by its tag.
func MemberKindOf(tag reflect.StructTag) MemberKind {
	if _, ok := tag.Lookup("json"); ok {
		return MemberProperty
	}
	return MemberField
}
