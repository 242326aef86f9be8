package openapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Gobd/openapix"
	"github.com/Gobd/openapix/openapi"
)

type Order struct {
	Customer string `json:"customer"`
	Items    []Item `json:"items"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func TestAddPath_SameItem(t *testing.T) {
	doc := openapi.DocBase("svc", "", "1")
	openapi.AddPath("/a", http.MethodGet, doc, &openapi3.Operation{OperationID: "get"})
	openapi.AddPath("/a", http.MethodPost, doc, &openapi3.Operation{OperationID: "post"})

	item := doc.Paths.Value("/a")
	require.NotNil(t, item)
	assert.Equal(t, "get", item.Get.OperationID)
	assert.Equal(t, "post", item.Post.OperationID)
}

func TestDocument_BodySchemas(t *testing.T) {
	gen := openapi.NewGenerator("svc", "desc", "1.0", nil)
	gen.Post("/orders", "createOrder", openapi.Endpoint{
		Request: Order{},
		Responses: map[string]openapi.Response{
			"200": {Desc: "Created", Bodies: []any{Order{}}},
			"400": {Desc: "Bad input", Bodies: []any{ErrorResponse{}}},
		},
	})

	doc, err := gen.Document(context.Background(), nil)
	require.NoError(t, err)

	op := doc.Paths.Value("/orders").Post
	require.NotNil(t, op.RequestBody)
	req := op.RequestBody.Value.Content.Get("application/json").Schema.Value
	require.NotNil(t, req)
	assert.Contains(t, req.Properties, "customer")
	assert.Contains(t, req.Properties, "items")
	assert.True(t, req.Properties["items"].Value.Type.Is("array"))

	bad := op.Responses.Value("400")
	require.NotNil(t, bad)
	assert.Equal(t, "Bad input", *bad.Value.Description)
	assert.Contains(t, bad.Value.Content.Get("application/json").Schema.Value.Properties, "error")
}

func TestDocument_MultipleRequestsOneOf(t *testing.T) {
	gen := openapi.NewGenerator("svc", "", "1", nil)
	gen.Put("/things", "putThing", openapi.Endpoint{
		Requests: []any{Item{}, Order{}},
	})

	doc, err := gen.Document(context.Background(), nil)
	require.NoError(t, err)

	schema := doc.Paths.Value("/things").Put.RequestBody.Value.Content.Get("application/json").Schema.Value
	require.Len(t, schema.OneOf, 2)
	assert.Contains(t, schema.OneOf[0].Value.Properties, "price")
	assert.Contains(t, schema.OneOf[1].Value.Properties, "customer")
}

func TestDocument_NoResponses(t *testing.T) {
	gen := openapi.NewGenerator("svc", "", "1", nil)
	gen.Delete("/things", "deleteThing", openapi.Endpoint{})

	doc, err := gen.Document(context.Background(), nil)
	require.NoError(t, err)

	op := doc.Paths.Value("/things").Delete
	assert.Nil(t, op.RequestBody)
	assert.NotNil(t, op.Responses.Default())
}

func TestDocument_NilBody(t *testing.T) {
	gen := openapi.NewGenerator("svc", "", "1", nil)
	gen.Patch("/things", "patchThing", openapi.Endpoint{Requests: []any{nil}})

	_, err := gen.Document(context.Background(), nil)
	assert.Error(t, err)
}

func TestDocument_RunsSchemaPhaseOnBodies(t *testing.T) {
	itemType := reflect.TypeFor[Item]()
	var seen []reflect.Type

	o := openapix.New()
	o.AddSchemaTransformer(openapix.SchemaTransformerFunc(func(_ context.Context, schema *openapi3.Schema, sc *openapix.SchemaContext) error {
		seen = append(seen, sc.Type)
		if sc.Type == itemType {
			schema.Description = "An item."
		}
		return nil
	}))

	gen := openapi.NewGenerator("svc", "", "1", o)
	gen.Get("/items", "getItem", openapi.Endpoint{Response: Item{}})

	doc, err := gen.Document(context.Background(), nil)
	require.NoError(t, err)

	schema := doc.Paths.Value("/items").Get.Responses.Value("200").Value.Content.Get("application/json").Schema.Value
	assert.Equal(t, "An item.", schema.Description)
	require.NotEmpty(t, seen)
	assert.Equal(t, itemType, seen[len(seen)-1], "parent after its members")
}

func TestDocument_PassesServices(t *testing.T) {
	type tenant string

	o := openapix.New()
	o.AddDocumentTransformer(openapix.DocumentTransformerFunc(func(_ context.Context, doc *openapi3.T, dc *openapix.DocumentContext) error {
		name, ok := openapix.Resolve[tenant](dc.Services)
		if ok {
			doc.Info.Title = string(name)
		}
		return nil
	}))
	gen := openapi.NewGenerator("svc", "", "1", o)

	services := openapix.Provide(openapix.NewServices(), tenant("acme"))
	doc, err := gen.Document(context.Background(), services)
	require.NoError(t, err)
	assert.Equal(t, "acme", doc.Info.Title)

	doc, err = gen.Document(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "svc", doc.Info.Title)
}

func TestDocument_FreshPerCall(t *testing.T) {
	o := openapix.New()
	require.NoError(t, o.AddServer("https://api.example.com", "production"))
	gen := openapi.NewGenerator("svc", "", "1", o)

	first, err := gen.Document(context.Background(), nil)
	require.NoError(t, err)
	second, err := gen.Document(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, first.Servers, 1)
	assert.Len(t, second.Servers, 1)
	assert.NotSame(t, first, second)
}

func TestDocument_Cancelled(t *testing.T) {
	gen := openapi.NewGenerator("svc", "", "1", nil)
	gen.Get("/items", "getItem", openapi.Endpoint{Response: Item{}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Document(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func newTestGenerator() *openapi.Generator {
	gen := openapi.NewGenerator("svc", "desc", "1.0", nil)
	gen.Get("/items", "listItems", openapi.Endpoint{Response: []Item{}})
	return gen
}

func TestHandler_JSON(t *testing.T) {
	h := openapi.Handler("/openapi/", newTestGenerator(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi/docs.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "3.0.3", body["openapi"])
	assert.Contains(t, body["paths"], "/items")
}

func TestHandler_YAML(t *testing.T) {
	h := openapi.Handler("/openapi/", newTestGenerator(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi/docs.yaml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "3.0.3", body["openapi"])
	info, ok := body["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "svc", info["title"])
}

func TestHandler_Services(t *testing.T) {
	type caller string

	o := openapix.New()
	o.AddDocumentTransformer(openapix.DocumentTransformerFunc(func(_ context.Context, doc *openapi3.T, dc *openapix.DocumentContext) error {
		if c, ok := openapix.Resolve[caller](dc.Services); ok {
			doc.Info.Description = string(c)
		}
		return nil
	}))
	gen := openapi.NewGenerator("svc", "", "1", o)
	h := openapi.Handler("/", gen, func(r *http.Request) *openapix.Services {
		return openapix.Provide(openapix.NewServices(), caller(r.Header.Get("X-Caller")))
	})

	req := httptest.NewRequest(http.MethodGet, "/docs.json", nil)
	req.Header.Set("X-Caller", "billing")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"description":"billing"`)
}

func TestHandler_NotFoundAndMethod(t *testing.T) {
	h := openapi.Handler("/openapi/", newTestGenerator(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi/swagger.json", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openapi/docs.json", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestHandler_GenerationError(t *testing.T) {
	o := openapix.New()
	o.AddDocumentTransformer(openapix.DocumentTransformerFunc(func(context.Context, *openapi3.T, *openapix.DocumentContext) error {
		return assert.AnError
	}))
	h := openapi.Handler("/", openapi.NewGenerator("svc", "", "1", o), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs.json", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
