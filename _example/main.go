// Command example serves a small weather API together with its generated
// OpenAPI document.
//
// Run:
//
//	go run ./cmd/xmldoc generate ./_example -o _example/example.xml
//	go run ./_example -docs _example/example.xml
//
// Then open http://localhost:8080/openapi/docs.json or
// http://localhost:8080/openapi/docs.yaml.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/golang-sql/civil"

	"github.com/Gobd/openapix"
	"github.com/Gobd/openapix/openapi"
	"github.com/Gobd/openapix/temporal"
	"github.com/Gobd/openapix/xmldoc"
)

// Forecast is the weather expected for one day.
type Forecast struct {
	// Day the forecast applies to.
	Date civil.Date `json:"date"`
	// Temperature in degrees Celsius.
	TemperatureC int `json:"temperatureC"`
	// Short human readable summary.
	Summary string `json:"summary"`
	// Hours of sunshine expected.
	Sunshine time.Duration `json:"sunshine"`
}

// ForecastQuery selects the days to forecast.
type ForecastQuery struct {
	// Inclusive range of days.
	Days temporal.DateInterval `json:"days"`
}

// ProblemDetails is the error body of every failed request.
type ProblemDetails struct {
	// Short summary of the problem.
	Title string `json:"title"`
	// HTTP status code.
	Status int `json:"status"`
}

func main() {
	docs := flag.String("docs", "", "XML documentation file, defaults to the side-car of the binary")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	o := openapix.New(openapix.WithLogger(logger))
	if err := temporal.Configure(o); err != nil {
		log.Fatal(err)
	}
	var xmlOpts []xmldoc.Option
	if *docs != "" {
		xmlOpts = append(xmlOpts, xmldoc.WithPath(*docs))
	}
	if _, err := xmldoc.AddXMLComments(o, xmlOpts...); err != nil {
		log.Fatal(err)
	}
	if err := openapix.AddResponseTypeOf[ProblemDetails](o, http.StatusBadRequest, "Bad request"); err != nil {
		log.Fatal(err)
	}
	if err := o.AddSecurityScheme("bearer", openapi3.NewJWTSecurityScheme()); err != nil {
		log.Fatal(err)
	}
	if err := o.AddServer("/", "This server"); err != nil {
		log.Fatal(err)
	}
	o.AddDescription("Daily weather forecasts.")

	gen := openapi.NewGenerator("Weather API", "", "0.1.0", o)
	gen.Post("/forecasts", "listForecasts", openapi.Endpoint{
		Summary:  "Forecast a range of days",
		Request:  ForecastQuery{},
		Response: []Forecast{},
	})

	policies := &openapix.StaticPolicies{
		Endpoints: map[string]*openapix.Policy{
			"POST /forecasts": {Name: "subscriber", Schemes: []string{"bearer"}},
		},
	}
	services := func(*http.Request) *openapix.Services {
		return openapix.Provide[openapix.PolicyProvider](openapix.NewServices(), policies)
	}

	http.Handle("/openapi/", openapi.Handler("/openapi/", gen, services))

	http.HandleFunc("/forecasts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var q ForecastQuery
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil || q.Days.End.Before(q.Days.Start) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(ProblemDetails{Title: "invalid day range", Status: http.StatusBadRequest})
			return
		}

		var out []Forecast
		for d := q.Days.Start; !q.Days.End.Before(d); d = d.AddDays(1) {
			out = append(out, Forecast{Date: d, TemperatureC: 18, Summary: "Mild", Sunshine: 6 * time.Hour})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})

	fmt.Println("Listening on http://localhost:8080")
	fmt.Println("OpenAPI: http://localhost:8080/openapi/docs.json")
	log.Fatal(http.ListenAndServe(":8080", nil))
}
