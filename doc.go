// Package openapix extends OpenAPI 3 document generation built on
// kin-openapi with a pipeline of transformers.
//
// An [Options] value holds three ordered lists of transformers. The host
// (see the openapi sub-package) runs them once per generated document:
// document transformers first, then operation transformers for every
// operation, then schema transformers for every schema node.
//
//	o := openapix.New()
//	o.AddDescription("Weather service")
//	_ = o.AddServer("https://api.example.com", "production")
//	_ = openapix.AddResponseTypeOf[ProblemDetails](o, http.StatusBadRequest, "Bad request")
//	_ = o.AddSecurityScheme("bearer", openapi3.NewJWTSecurityScheme())
//	_ = openapix.AddTypeAs[Money, string](o, openapix.WithFormat("decimal"))
//
// Registrars that take a Go type match schema nodes on exact type identity,
// so registering T affects nodes generated for T and *T but never nodes for
// types that embed or wrap T.
//
// Sub-packages:
//   - openapi: document host: endpoints, generation, HTTP handler
//   - xmldoc: summaries from XML side-car documentation files
//   - temporal: schema shapes for date and time types
package openapix
