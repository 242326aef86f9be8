// Package openapi hosts an [openapix.Options] registry: it lays out the
// registered endpoints, runs the transformer pipeline and serves the result.
//
// Create a [Generator], register endpoints with [Generator.Get],
// [Generator.Post], [Generator.Put], [Generator.Patch], or
// [Generator.Delete], and serve the document with [Handler]:
//
//	o := openapix.New()
//	_ = o.AddResponseType(http.StatusInternalServerError, "Unexpected failure")
//	gen := openapi.NewGenerator("orders", "Order API", "1.0", o)
//	gen.Post("/orders", "createOrder", openapi.Endpoint{
//	    Request:  Order{},
//	    Response: Order{},
//	})
//	http.Handle("/openapi/", openapi.Handler("/openapi/", gen, nil))
package openapi
