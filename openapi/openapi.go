package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/openapix"
)

// Response describes an HTTP response with a description and body types for schema generation.
type Response struct {
	Desc   string
	Bodies []any
}

// Endpoint describes a single API operation for the registration helpers
// [Generator.Get], [Generator.Post], [Generator.Put], [Generator.Patch], and
// [Generator.Delete].
type Endpoint struct {
	Summary     string
	Description string
	Request     any                 // single request body type (convenience)
	Requests    []any               // multiple request body types (oneOf)
	Response    any                 // single 200 response type (convenience)
	Responses   map[string]Response // full response map (overrides Response if both set)
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: &openapi3.Paths{},
	}
}

// AddPath adds an operation to the document at the given path and method.
func AddPath(path, method string, s *openapi3.T, op *openapi3.Operation) {
	p := s.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}
	p.SetOperation(method, op)
	s.Paths.Set(path, p)
}

type endpoint struct {
	path        string
	method      string
	operationID string
	ep          Endpoint
}

// Generator builds a fresh document on every call to [Generator.Document]
// and runs the registered transformers over it.
type Generator struct {
	title       string
	description string
	version     string
	opts        *openapix.Options

	endpoints []endpoint
}

// NewGenerator returns a generator for a service. A nil o is replaced by an
// empty registry.
func NewGenerator(title, description, version string, o *openapix.Options) *Generator {
	if o == nil {
		o = openapix.New()
	}
	return &Generator{title: title, description: description, version: version, opts: o}
}

// Options returns the transformer registry of g.
func (g *Generator) Options() *openapix.Options {
	return g.opts
}

// Get registers a GET endpoint.
func (g *Generator) Get(path, operationID string, ep Endpoint) *Generator {
	return g.add(path, http.MethodGet, operationID, ep)
}

// Post registers a POST endpoint.
func (g *Generator) Post(path, operationID string, ep Endpoint) *Generator {
	return g.add(path, http.MethodPost, operationID, ep)
}

// Put registers a PUT endpoint.
func (g *Generator) Put(path, operationID string, ep Endpoint) *Generator {
	return g.add(path, http.MethodPut, operationID, ep)
}

// Patch registers a PATCH endpoint.
func (g *Generator) Patch(path, operationID string, ep Endpoint) *Generator {
	return g.add(path, http.MethodPatch, operationID, ep)
}

// Delete registers a DELETE endpoint.
func (g *Generator) Delete(path, operationID string, ep Endpoint) *Generator {
	return g.add(path, http.MethodDelete, operationID, ep)
}

func (g *Generator) add(path, method, operationID string, ep Endpoint) *Generator {
	g.endpoints = append(g.endpoints, endpoint{path: path, method: method, operationID: operationID, ep: ep})
	return g
}

// pendingSchema is a body schema slot filled after the operation phase.
type pendingSchema struct {
	ref *openapi3.SchemaRef
	typ reflect.Type
}

// Document builds the document: endpoints are laid out, the document and
// operation phases run, then every request and response body schema is
// generated through the schema phase. services is handed to every
// transformer and may be nil.
func (g *Generator) Document(ctx context.Context, services *openapix.Services) (*openapi3.T, error) {
	doc := DocBase(g.title, g.description, g.version)

	var pending []pendingSchema
	for _, e := range g.endpoints {
		op, bodies, err := newOperation(e)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", e.method, e.path, err)
		}
		pending = append(pending, bodies...)
		AddPath(e.path, e.method, doc, op)
	}

	if err := g.opts.Transform(ctx, doc, services); err != nil {
		return nil, err
	}

	for _, p := range pending {
		ref, err := g.opts.GenerateSchema(ctx, p.typ, services)
		if err != nil {
			return nil, err
		}
		*p.ref = *ref
	}
	return doc, nil
}

func newOperation(e endpoint) (*openapi3.Operation, []pendingSchema, error) {
	op := &openapi3.Operation{
		OperationID: e.operationID,
		Summary:     e.ep.Summary,
		Description: e.ep.Description,
	}
	var pending []pendingSchema

	// Request body
	requests := e.ep.Requests
	if len(requests) == 0 && e.ep.Request != nil {
		requests = []any{e.ep.Request}
	}
	if len(requests) > 0 {
		schema, bodies, err := bodySchema(requests)
		if err != nil {
			return nil, nil, err
		}
		pending = append(pending, bodies...)
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithJSONSchemaRef(schema),
		}
	}

	// Responses
	responses := e.ep.Responses
	if responses == nil && e.ep.Response != nil {
		responses = map[string]Response{
			"200": {Desc: "OK", Bodies: []any{e.ep.Response}},
		}
	}
	op.Responses = openapi3.NewResponsesWithCapacity(len(responses))
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		r := responses[code]
		resp := openapi3.NewResponse().WithDescription(r.Desc)
		if len(r.Bodies) > 0 {
			schema, bodies, err := bodySchema(r.Bodies)
			if err != nil {
				return nil, nil, fmt.Errorf("response %s: %w", code, err)
			}
			pending = append(pending, bodies...)
			resp.Content = openapi3.NewContentWithJSONSchemaRef(schema)
		}
		op.Responses.Set(code, &openapi3.ResponseRef{Value: resp})
	}
	if len(responses) == 0 {
		op.Responses = openapi3.NewResponses()
	}

	return op, pending, nil
}

// bodySchema returns the slot for a body: the value's own schema, or a
// oneOf wrapper when there are several.
func bodySchema(vs []any) (*openapi3.SchemaRef, []pendingSchema, error) {
	refs := make([]pendingSchema, 0, len(vs))
	for _, v := range vs {
		t := reflect.TypeOf(v)
		if t == nil {
			return nil, nil, errors.New("nil body value")
		}
		refs = append(refs, pendingSchema{ref: &openapi3.SchemaRef{}, typ: t})
	}
	if len(refs) == 1 {
		return refs[0].ref, refs, nil
	}

	wrapper := &openapi3.Schema{OneOf: make(openapi3.SchemaRefs, 0, len(refs))}
	for _, r := range refs {
		wrapper.OneOf = append(wrapper.OneOf, r.ref)
	}
	return openapi3.NewSchemaRef("", wrapper), refs, nil
}
