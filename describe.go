package openapix

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
)

// AddDescription sets the document-level description on every generated
// document, replacing whatever the host put there.
func (o *Options) AddDescription(desc string) *Options {
	return o.AddDocumentTransformer(DocumentTransformerFunc(func(_ context.Context, doc *openapi3.T, _ *DocumentContext) error {
		if doc.Info == nil {
			doc.Info = &openapi3.Info{}
		}
		doc.Info.Description = desc
		return nil
	}))
}
