package openapix_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/openapix"
)

func TestFormatExample(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "string", in: "hello", want: "hello"},
		{name: "empty string", in: "", want: ""},
		{name: "escapes kept", in: `say "hi"`, want: `say \"hi\"`},
		{name: "number", in: 42, want: "42"},
		{name: "bool", in: true, want: "true"},
		{name: "object", in: map[string]int{"a": 1}, want: `{"a":1}`},
		{name: "null", in: nil, want: "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := openapix.FormatExample(tt.in, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatExample_CustomMarshaler(t *testing.T) {
	single := openapix.MarshalerFunc(func(any) ([]byte, error) { return []byte(`"`), nil })
	got, err := openapix.FormatExample("x", single)
	require.NoError(t, err)
	assert.Equal(t, `"`, got, "a lone quote is not a string literal")

	upper := openapix.MarshalerFunc(func(v any) ([]byte, error) { return []byte(fmt.Sprintf("'%v'", v)), nil })
	got, err = openapix.FormatExample("x", upper)
	require.NoError(t, err)
	assert.Equal(t, "'x'", got)

	failing := openapix.MarshalerFunc(func(any) ([]byte, error) { return nil, errors.New("boom") })
	_, err = openapix.FormatExample("x", failing)
	assert.EqualError(t, err, "boom")
}

func TestNew_Defaults(t *testing.T) {
	o := openapix.New(openapix.WithLogger(nil), openapix.WithMarshaler(nil))
	assert.NotNil(t, o.Logger())
	assert.IsType(t, openapix.JSONMarshaler{}, o.Marshaler())
}

type Money struct {
	Units    int64  `json:"units"`
	Currency string `json:"currency"`
}

func ExampleAddTypeAs() {
	o := openapix.New()
	err := openapix.AddTypeAs[Money, string](o,
		openapix.WithFormat("money"),
		openapix.WithExample("12.50 EUR"),
		openapix.WithProperties(nil),
	)
	if err != nil {
		panic(err)
	}

	ref, err := o.GenerateSchemaFor(context.Background(), Money{}, nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(ref.Value.Type.Slice()[0], ref.Value.Format, ref.Value.Example, len(ref.Value.Properties))
	// Output: string money 12.50 EUR 0
}

func ExampleAddResponseTypeOf() {
	o := openapix.New()
	if err := openapix.AddResponseTypeOf[ProblemDetails](o, 400, "Bad request"); err != nil {
		panic(err)
	}

	doc := newDoc("GET /orders")
	if err := o.Transform(context.Background(), doc, nil); err != nil {
		panic(err)
	}
	resp := doc.Paths.Value("/orders").Get.Responses.Value("400").Value
	fmt.Println(*resp.Description, resp.Content.Get("application/json").Schema.Value.Type.Slice())
	// Output: Bad request [ProblemDetails]
}
