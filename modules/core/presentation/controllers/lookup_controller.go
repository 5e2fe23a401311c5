package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sasanalk/sasana-portal/modules/core/geo"
	"github.com/sasanalk/sasana-portal/pkg/application"
	"github.com/sasanalk/sasana-portal/pkg/httpapi"
)

// LookupController serves the static reference data address pickers need.
type LookupController struct {
	basePath string
}

func NewLookupController(application.Application) application.Controller {
	return &LookupController{basePath: "/lookups"}
}

func (c *LookupController) Key() string {
	return c.basePath
}

func (c *LookupController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/provinces", c.Provinces).Methods(http.MethodGet)
}

func (c *LookupController) Provinces(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"provinces": geo.Provinces(),
	})
}
