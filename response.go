package openapix

import (
	"context"
	"reflect"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

// AddResponseType adds a response with the given status code and
// description to every operation that does not already declare that code.
// An empty description is left unset.
func (o *Options) AddResponseType(code int, desc string) error {
	return o.addResponse(code, desc, nil)
}

// AddResponseTypeOf is AddResponseType with a single application/json body
// whose schema type is the simple name of T. The body is not expanded.
func AddResponseTypeOf[T any](o *Options, code int, desc string) error {
	return o.addResponse(code, desc, reflect.TypeFor[T]())
}

func (o *Options) addResponse(code int, desc string, body reflect.Type) error {
	if err := validateArg("status code", code, statusCodeRules...); err != nil {
		return err
	}
	key := strconv.Itoa(code)

	o.AddOperationTransformer(OperationTransformerFunc(func(_ context.Context, op *openapi3.Operation, _ *OperationContext) error {
		if op.Responses == nil {
			op.Responses = openapi3.NewResponsesWithCapacity(1)
		}
		if op.Responses.Value(key) != nil {
			return nil
		}

		resp := &openapi3.Response{}
		if desc != "" {
			resp.Description = &desc
		}
		if body != nil {
			resp.Content = openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: &openapi3.SchemaRef{
						Value: &openapi3.Schema{Type: &openapi3.Types{typeName(body)}},
					},
				},
			}
		}
		op.Responses.Set(key, &openapi3.ResponseRef{Value: resp})
		return nil
	}))
	o.cfg.logger.Debug("registered response type", "code", code)
	return nil
}
