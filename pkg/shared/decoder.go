package shared

import (
	"net/http"

	"github.com/go-playground/form"
	"github.com/gorilla/mux"
)

// Decoder decodes query strings into filter DTOs.
var Decoder = form.NewDecoder()

// DecodeQuery fills a filter struct from the request's query parameters.
func DecodeQuery(v interface{}, r *http.Request) error {
	return Decoder.Decode(v, r.URL.Query())
}

// PathVar returns a mux path variable.
func PathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
