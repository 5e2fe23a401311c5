package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sasanalk/sasana-portal/modules/vihara/domain"
	"github.com/sasanalk/sasana-portal/modules/vihara/presentation/mappers"
	"github.com/sasanalk/sasana-portal/modules/vihara/presentation/viewmodels"
	"github.com/sasanalk/sasana-portal/modules/vihara/services"
	"github.com/sasanalk/sasana-portal/pkg/application"
	"github.com/sasanalk/sasana-portal/pkg/composables"
	"github.com/sasanalk/sasana-portal/pkg/configuration"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
	"github.com/sasanalk/sasana-portal/pkg/httpapi"
	"github.com/sasanalk/sasana-portal/pkg/listapi"
	"github.com/sasanalk/sasana-portal/pkg/middleware"
	"github.com/sasanalk/sasana-portal/pkg/registry"
	"github.com/sasanalk/sasana-portal/pkg/shared"
	"github.com/sasanalk/sasana-portal/pkg/wizardapi"
	"github.com/sasanalk/sasana-portal/pkg/wizardsession"
)

type ViharaController struct {
	app      application.Application
	service  *services.ViharaService
	wizard   *wizardapi.Controller
	lists    *listapi.Controller
	basePath string
}

func NewViharaController(app application.Application) application.Controller {
	conf := configuration.Use()
	service := app.Service(services.ViharaService{}).(*services.ViharaService)
	c := &ViharaController{
		app:      app,
		service:  service,
		basePath: "/vihara",
	}
	c.wizard = wizardapi.New(wizardapi.Config{
		Domain:   domain.Domain,
		Form:     domain.Form,
		Sessions: app.WizardSessions(),
		Submit:   c.submit,
		Fetch:    service.GetValues,
	})
	c.lists = listapi.New(context.Background(), listapi.Config{
		Domain:         domain.Domain,
		DefaultLimit:   conf.PageSize,
		SearchDebounce: conf.SearchDebounce,
		Fetch:          service.List,
	})
	return c
}

func (c *ViharaController) Key() string {
	return c.basePath
}

func (c *ViharaController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireDepartment(composables.DepartmentVihara))

	c.wizard.Mount(router.PathPrefix("/wizard").Subrouter())
	c.lists.Mount(router.PathPrefix("/list-sessions").Subrouter())

	router.HandleFunc("/records", c.List).Methods(http.MethodGet)
	router.HandleFunc("/records/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/records/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/records/{id}/documents", c.UploadDocument).Methods(http.MethodPost)
}

func (c *ViharaController) submit(ctx context.Context, sess *wizardsession.Session, values formwizard.Values) (string, error) {
	if sess.RecordID == "" {
		return c.service.Create(ctx, values)
	}
	return sess.RecordID, c.service.Update(ctx, sess.RecordID, values)
}

type listFilters struct {
	SearchKey string `form:"search_key"`
	Province  string `form:"province"`
	District  string `form:"district"`
	Nikaya    string `form:"nikaya"`
	Status    string `form:"status"`
}

func (f listFilters) payload(p composables.PaginationParams) map[string]any {
	payload := map[string]any{
		"skip":  p.Offset,
		"limit": p.Limit,
		"page":  p.Page,
	}
	for key, value := range map[string]string{
		"search_key": f.SearchKey,
		"province":   f.Province,
		"district":   f.District,
		"nikaya":     f.Nikaya,
		"status":     f.Status,
	} {
		if value != "" {
			payload[key] = value
		}
	}
	return payload
}

func (c *ViharaController) List(w http.ResponseWriter, r *http.Request) {
	var filters listFilters
	if err := shared.DecodeQuery(&filters, r); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_QUERY", "invalid query parameters", nil)
		return
	}
	params := composables.UsePaginated(r)
	res, err := c.service.List(r.Context(), filters.payload(params))
	if err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	rows := make([]viewmodels.ViharaRow, 0, len(res.Items))
	for _, item := range res.Items {
		rec, err := domain.DecodeRecord(item)
		if err != nil {
			continue
		}
		rows = append(rows, mappers.ViharaToRow(rec))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"data":  rows,
		"total": res.Total,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

func (c *ViharaController) Get(w http.ResponseWriter, r *http.Request) {
	raw, err := c.service.Get(r.Context(), shared.PathVar(r, "id"))
	if err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (c *ViharaController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), shared.PathVar(r, "id")); err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (c *ViharaController) UploadDocument(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	if err := r.ParseMultipartForm(conf.MaxUploadSize); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_MULTIPART", "invalid multipart form", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "MISSING_FILE", "file part is required", nil)
		return
	}
	defer file.Close()
	if err := c.service.UploadDocument(r.Context(), shared.PathVar(r, "id"), header.Filename, file); err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, map[string]any{"uploaded": header.Filename})
}

func (c *ViharaController) writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		return
	}
	status := registry.StatusOf(err)
	if status == 0 {
		status = http.StatusBadGateway
	}
	_ = httpapi.WriteError(w, status, "REGISTRY_ERROR", registry.HumanMessage(err), nil)
}
