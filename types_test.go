package openapix_test

import (
	"context"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/openapix"
)

type Cash Money

type Invoice struct {
	Total   Money   `json:"total"`
	Refund  *Money  `json:"refund"`
	Lines   []Money `json:"lines"`
	Balance Cash    `json:"balance"`
}

func generate(t *testing.T, o *openapix.Options, v any) *openapi3.Schema {
	t.Helper()
	ref, err := o.GenerateSchemaFor(context.Background(), v, nil)
	require.NoError(t, err)
	require.NotNil(t, ref.Value)
	return ref.Value
}

func TestAddTypeExample_Duration(t *testing.T) {
	o := openapix.New()
	require.NoError(t, openapix.AddTypeExample[time.Duration, string](o, "duration", 90*time.Minute))

	schema := generate(t, o, time.Duration(0))
	assert.Equal(t, &openapi3.Types{"string"}, schema.Type)
	assert.Equal(t, "duration", schema.Format)
	assert.Equal(t, "5400000000000", schema.Example)

	other := generate(t, o, int64(0))
	assert.Equal(t, &openapi3.Types{"integer"}, other.Type)
	assert.Equal(t, "int64", other.Format)
	assert.Nil(t, other.Example)
}

func TestAddTypeExample_KeepsAnnotations(t *testing.T) {
	o := openapix.New()
	require.NoError(t, openapix.AddTypeExample[time.Duration, string](o, "duration", time.Second))

	schema := generate(t, o, time.Duration(0))
	assert.Equal(t, "time.Duration", schema.Extensions[openapix.AnnotationGoType])
	assert.Equal(t, "int64", schema.Extensions[openapix.AnnotationGoKind])
}

func TestAddType_ClearsAnnotations(t *testing.T) {
	o := openapix.New()
	require.NoError(t, openapix.AddTypeAs[Money, string](o, openapix.WithExample("1.00 EUR")))

	schema := generate(t, o, Money{})
	assert.Empty(t, schema.Extensions)

	unregistered := generate(t, o, ProblemDetails{})
	assert.Equal(t, "openapix_test.ProblemDetails", unregistered.Extensions[openapix.AnnotationGoType])
}

func TestAddType_ExactTypeIdentity(t *testing.T) {
	o := openapix.New()
	require.NoError(t, openapix.AddTypeAs[Money, string](o,
		openapix.WithFormat("money"),
		openapix.WithExample("3.00 USD"),
		openapix.WithProperties(nil),
	))

	invoice := generate(t, o, Invoice{})

	for _, name := range []string{"total", "refund"} {
		prop := invoice.Properties[name].Value
		assert.Equal(t, "money", prop.Format, name)
		assert.Equal(t, "3.00 USD", prop.Example, name)
		assert.Empty(t, prop.Properties, name)
	}
	assert.Equal(t, "money", invoice.Properties["lines"].Value.Items.Value.Format)

	balance := invoice.Properties["balance"].Value
	assert.Empty(t, balance.Format)
	assert.Contains(t, balance.Properties, "units")

	assert.Equal(t, &openapi3.Types{"object"}, invoice.Type)
}

func TestAddType_ZeroExampleByDefault(t *testing.T) {
	o := openapix.New()
	require.NoError(t, openapix.AddType[Money](o, openapix.WithFormat("money")))

	schema := generate(t, o, Money{})
	assert.Equal(t, &openapi3.Types{"Money"}, schema.Type)
	assert.Equal(t, `{"units":0,"currency":""}`, schema.Example)
	assert.Contains(t, schema.Properties, "units", "properties kept without WithProperties")
}

func TestAddType_DescriptionOnlyWhenSet(t *testing.T) {
	o := openapix.New()
	o.AddSchemaTransformer(openapix.SchemaTransformerFunc(func(_ context.Context, schema *openapi3.Schema, sc *openapix.SchemaContext) error {
		if sc.Member == nil {
			schema.Description = "from an earlier pass"
		}
		return nil
	}))
	require.NoError(t, openapix.AddTypeAs[Money, string](o, openapix.WithExample("0")))
	require.NoError(t, openapix.AddTypeAs[Cash, string](o, openapix.WithExample("0"), openapix.WithDescription("Cash on hand.")))

	assert.Equal(t, "from an earlier pass", generate(t, o, Money{}).Description)
	assert.Equal(t, "Cash on hand.", generate(t, o, Cash{}).Description)
}

func TestAddType_PropertiesNotShared(t *testing.T) {
	props := openapi3.Schemas{"amount": openapi3.NewStringSchema().NewRef()}

	o := openapix.New()
	require.NoError(t, openapix.AddType[Money](o, openapix.WithProperties(props)))

	invoice := generate(t, o, Invoice{})
	total := invoice.Properties["total"].Value
	refund := invoice.Properties["refund"].Value
	require.Contains(t, total.Properties, "amount")
	require.Contains(t, refund.Properties, "amount")

	total.Properties["extra"] = openapi3.NewBoolSchema().NewRef()
	assert.NotContains(t, refund.Properties, "extra")
	assert.NotContains(t, props, "extra")
}

func TestAddType_RegistrationOrder(t *testing.T) {
	o := openapix.New()
	require.NoError(t, openapix.AddTypeAs[Money, string](o, openapix.WithFormat("first"), openapix.WithExample("a")))
	require.NoError(t, openapix.AddTypeAs[Money, string](o, openapix.WithFormat("second"), openapix.WithExample("b")))

	schema := generate(t, o, Money{})
	assert.Equal(t, "second", schema.Format)
	assert.Equal(t, "b", schema.Example)
}

func TestAddTypeSpec_NilTarget(t *testing.T) {
	o := openapix.New()
	assert.ErrorIs(t, o.AddTypeSpec(openapix.TypeSpec{Format: "x"}), openapix.ErrNilTarget)
}

func TestAddType_ExampleMarshalerError(t *testing.T) {
	o := openapix.New(openapix.WithMarshaler(openapix.MarshalerFunc(func(any) ([]byte, error) {
		return nil, assert.AnError
	})))
	require.NoError(t, openapix.AddTypeAs[Money, string](o, openapix.WithExample("x")))

	_, err := o.GenerateSchemaFor(context.Background(), Money{}, nil)
	assert.ErrorIs(t, err, assert.AnError)
}
