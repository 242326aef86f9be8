package openapix

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Annotation keys the generator writes into Schema.Extensions. Transformers
// that fully replace a schema clear them so they do not leak into output.
const (
	AnnotationGoType = "x-go-type"
	AnnotationGoKind = "x-go-kind"
)

var timeType = reflect.TypeFor[time.Time]()

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// annotate is the openapi3gen customizer: it tags every generated node with
// the Go type it came from.
func annotate(_ string, t reflect.Type, _ reflect.StructTag, schema *openapi3.Schema) error {
	if schema.Extensions == nil {
		schema.Extensions = map[string]any{}
	}
	schema.Extensions[AnnotationGoType] = t.String()
	schema.Extensions[AnnotationGoKind] = t.Kind().String()
	return nil
}

// GenerateSchema builds the schema for t and runs the schema phase on every
// node, children before parents.
func (o *Options) GenerateSchema(ctx context.Context, t reflect.Type, services *Services) (*openapi3.SchemaRef, error) {
	if t == nil {
		return nil, fmt.Errorf("generate schema: nil type")
	}

	opts := []openapi3gen.Option{openapi3gen.SchemaCustomizer(annotate)}
	if o.cfg.useAllExportedFields {
		opts = append(opts, openapi3gen.UseAllExportedFields())
	}
	g := openapi3gen.NewGenerator(opts...)
	ref, err := g.GenerateSchemaRef(t)
	if err != nil {
		return nil, fmt.Errorf("generate schema for %s: %w", t, err)
	}
	// openapi3gen names inline refs after the Go type; only component
	// references are meaningful in the output.
	for r := range g.SchemaRefs {
		if !strings.HasPrefix(r.Ref, "#/") {
			r.Ref = ""
		}
	}
	if !strings.HasPrefix(ref.Ref, "#/") {
		ref.Ref = ""
	}

	if err := o.walk(ctx, t, nil, ref, services); err != nil {
		return nil, err
	}
	return ref, nil
}

// GenerateSchemaFor is GenerateSchema for the dynamic type of v.
func (o *Options) GenerateSchemaFor(ctx context.Context, v any, services *Services) (*openapi3.SchemaRef, error) {
	return o.GenerateSchema(ctx, reflect.TypeOf(v), services)
}

// TransformSchema runs the schema phase on a single node.
func (o *Options) TransformSchema(ctx context.Context, schema *openapi3.Schema, sc *SchemaContext) error {
	for i, st := range o.schemas {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := st.TransformSchema(ctx, schema, sc); err != nil {
			return fmt.Errorf("schema transformer %d on %s: %w", i, sc.Type, err)
		}
	}
	return nil
}

func (o *Options) walk(ctx context.Context, t reflect.Type, member *Member, ref *openapi3.SchemaRef, services *Services) error {
	if ref == nil || ref.Value == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t = indirectType(t)
	schema := ref.Value

	switch t.Kind() {
	case reflect.Struct:
		if t == timeType {
			break
		}
		for _, f := range structMembers(t, o.cfg.useAllExportedFields) {
			prop, ok := schema.Properties[f.member.JSONName]
			if !ok {
				continue
			}
			m := f.member
			if err := o.walk(ctx, f.typ, &m, prop, services); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		if err := o.walk(ctx, t.Elem(), nil, schema.Items, services); err != nil {
			return err
		}
	case reflect.Map:
		if err := o.walk(ctx, t.Elem(), nil, schema.AdditionalProperties.Schema, services); err != nil {
			return err
		}
	}

	return o.TransformSchema(ctx, schema, &SchemaContext{Type: t, Member: member, Services: services})
}

type structMember struct {
	typ    reflect.Type
	member Member
}

// structMembers lists the serialized fields of t the way openapi3gen does:
// embedded structs without a tag are flattened and keep their own type as
// the declaring type.
func structMembers(t reflect.Type, allExported bool) []structMember {
	var out []structMember
	for i := range t.NumField() {
		sf := t.Field(i)
		tag, tagged := sf.Tag.Lookup("json")
		name := strings.Split(tag, ",")[0]
		if name == "-" {
			continue
		}
		if sf.Anonymous && name == "" {
			ft := indirectType(sf.Type)
			if ft.Kind() == reflect.Struct {
				out = append(out, structMembers(ft, allExported)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if !tagged && !allExported {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		out = append(out, structMember{
			typ: sf.Type,
			member: Member{
				DeclaringType: t,
				Name:          sf.Name,
				JSONName:      name,
				Kind:          MemberKindOf(sf.Tag),
			},
		})
	}
	return out
}

// ClearAnnotations removes every generator annotation from schema.
func ClearAnnotations(schema *openapi3.Schema) {
	clear(schema.Extensions)
}

// typeName returns the simple name of t, falling back to its string form
// for unnamed types.
func typeName(t reflect.Type) string {
	t = indirectType(t)
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
