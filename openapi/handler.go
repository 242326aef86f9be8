package openapi

import (
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Gobd/openapix"
)

// ServicesFunc supplies the per-request services handed to transformers.
type ServicesFunc func(r *http.Request) *openapix.Services

// Handler returns an http.Handler that generates the document for every
// request and serves it as JSON under /docs.json and as YAML under
// /docs.yaml. The prefix is stripped automatically, so just mount it:
//
//	http.Handle("/openapi/", openapi.Handler("/openapi/", gen, nil))
//
// services may be nil.
func Handler(prefix string, g *Generator, services ServicesFunc) http.Handler {
	logger := g.opts.Logger()

	return http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var contentType string
		switch r.URL.Path {
		case "/docs.json":
			contentType = "application/json"
		case "/docs.yaml":
			contentType = "application/yaml"
		default:
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		var svc *openapix.Services
		if services != nil {
			svc = services(r)
		}
		doc, err := g.Document(r.Context(), svc)
		if err != nil {
			logger.Error("generate openapi document", "path", r.URL.Path, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		var body []byte
		if contentType == "application/json" {
			body, err = doc.MarshalJSON()
		} else {
			var v any
			if v, err = doc.MarshalYAML(); err == nil {
				body, err = yaml.Marshal(v)
			}
		}
		if err != nil {
			logger.Error("encode openapi document", "path", r.URL.Path, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		logger.Debug("served openapi document", "path", r.URL.Path, "bytes", len(body))
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body)
	}))
}
