// Command chi serves the generated OpenAPI document from a chi router.
//
// Run:
//
//	cd _example/chi && go run .
//
// Then open http://localhost:8080/openapi/docs.yaml in your browser.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gobd/openapix"
	"github.com/Gobd/openapix/openapi"
	"github.com/Gobd/openapix/temporal"
)

type Order struct {
	CustomerName string                  `json:"customer_name"`
	ItemCount    int                     `json:"item_count"`
	PlacedAt     temporal.OffsetDateTime `json:"placed_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	o := openapix.New()
	if err := temporal.Configure(o); err != nil {
		log.Fatal(err)
	}
	if err := openapix.AddResponseTypeOf[ErrorResponse](o, http.StatusBadRequest, "Validation error"); err != nil {
		log.Fatal(err)
	}

	gen := openapi.NewGenerator("Example API (chi)", "Serves its own OpenAPI document", "0.1.0", o)
	gen.Post("/orders", "createOrder", openapi.Endpoint{
		Summary:  "Create an order",
		Request:  Order{},
		Response: Order{},
	})

	r := chi.NewRouter()

	r.Handle("/openapi/*", openapi.Handler("/openapi/", gen, nil))

	r.Post("/orders", func(w http.ResponseWriter, r *http.Request) {
		var order Order
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil || order.CustomerName == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "customer_name is required"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(order)
	})

	fmt.Println("Listening on http://localhost:8080")
	fmt.Println("OpenAPI: http://localhost:8080/openapi/docs.yaml")
	log.Fatal(http.ListenAndServe(":8080", r))
}
