package main

import (
	"log"
	"net/http"

	"github.com/mnehpets/jrpc/endpoint"
	"github.com/mnehpets/jrpc/lint"
	"github.com/mnehpets/jrpc/middleware"
)

// HelloEndpoint sits next to the lint routes on the same mux.
func HelloEndpoint(w http.ResponseWriter, r *http.Request, params struct{}) (endpoint.Renderer, error) {
	return &endpoint.StringRenderer{
		Body: "POST a packet to /verify/auto",
	}, nil
}

func main() {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", endpoint.Handler(HelloEndpoint))

	// Mount the lint routes with only the request id processor.
	svc := &lint.Service{MaxBodyBytes: 64 << 10}
	svc.Routes(mux, middleware.NewRequestIDProcessor())

	log.Println("Listening on :8080")
	if err := http.ListenAndServe(":8080", mux); err != nil {
		log.Fatal(err)
	}
}
