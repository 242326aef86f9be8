package openapix

import (
	"context"
	"errors"
	"net/url"

	"github.com/getkin/kin-openapi/openapi3"
)

// AddServer appends a server entry to every generated document. Repeated
// calls add repeated entries.
func (o *Options) AddServer(serverURL, desc string) error {
	if err := validateArg("server url", serverURL, serverURLRules...); err != nil {
		return err
	}
	o.AddDocumentTransformer(DocumentTransformerFunc(func(_ context.Context, doc *openapi3.T, _ *DocumentContext) error {
		doc.AddServer(&openapi3.Server{URL: serverURL, Description: desc})
		return nil
	}))
	return nil
}

// AddServerURL is AddServer for a parsed URL.
func (o *Options) AddServerURL(u *url.URL, desc string) error {
	if u == nil {
		return errors.New("server url: cannot be nil")
	}
	return o.AddServer(u.String(), desc)
}
