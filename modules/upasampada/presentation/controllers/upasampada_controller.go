package controllers

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/sasanalk/sasana-portal/modules/upasampada/domain"
	"github.com/sasanalk/sasana-portal/modules/upasampada/presentation/mappers"
	"github.com/sasanalk/sasana-portal/modules/upasampada/presentation/viewmodels"
	"github.com/sasanalk/sasana-portal/modules/upasampada/services"
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

// UpasampadaController mounts two wizards: the stage-one application
// form and the stage-two ceremony form, the latter only usable against
// records whose stage-one certificate is printed.
type UpasampadaController struct {
	app      application.Application
	service  *services.UpasampadaService
	stageOne *wizardapi.Controller
	stageTwo *wizardapi.Controller
	lists    *listapi.Controller
	basePath string
}

func NewUpasampadaController(app application.Application) application.Controller {
	conf := configuration.Use()
	service := app.Service(services.UpasampadaService{}).(*services.UpasampadaService)
	c := &UpasampadaController{
		app:      app,
		service:  service,
		basePath: "/upasampada",
	}
	c.stageOne = wizardapi.New(wizardapi.Config{
		Domain:   domain.Domain,
		Form:     domain.StageOneForm,
		Sessions: app.WizardSessions(),
		Submit: func(ctx context.Context, sess *wizardsession.Session, values formwizard.Values) (string, error) {
			return service.SaveStageOne(ctx, sess.RecordID, values)
		},
		Fetch: service.GetValues,
	})
	c.stageTwo = wizardapi.New(wizardapi.Config{
		Domain:   domain.Domain,
		Form:     domain.StageTwoForm,
		Sessions: app.WizardSessions(),
		Submit: func(ctx context.Context, sess *wizardsession.Session, values formwizard.Values) (string, error) {
			return sess.RecordID, service.SaveStageTwo(ctx, sess.RecordID, values)
		},
		Fetch:    service.GetValues,
		MapError: mapStageError,
	})
	c.lists = listapi.New(context.Background(), listapi.Config{
		Domain:         domain.Domain,
		DefaultLimit:   conf.PageSize,
		SearchDebounce: conf.SearchDebounce,
		Fetch:          service.List,
	})
	return c
}

func (c *UpasampadaController) Key() string {
	return c.basePath
}

func (c *UpasampadaController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireDepartment(composables.DepartmentUpasampada))

	c.stageOne.Mount(router.PathPrefix("/stage-one").Subrouter())
	c.stageTwo.Mount(router.PathPrefix("/stage-two").Subrouter())
	c.lists.Mount(router.PathPrefix("/list-sessions").Subrouter())

	router.HandleFunc("/records", c.List).Methods(http.MethodGet)
	router.HandleFunc("/records/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/records/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/records/{id}/mark-printed", c.MarkPrinted).Methods(http.MethodPost)
}

type listFilters struct {
	SearchKey string `form:"search_key"`
	Status    string `form:"status"`
	FromDate  string `form:"from_date"`
	ToDate    string `form:"to_date"`
}

func (f listFilters) payload(p composables.PaginationParams) map[string]any {
	payload := map[string]any{
		"skip":  p.Offset,
		"limit": p.Limit,
		"page":  p.Page,
	}
	for key, value := range map[string]string{
		"search_key": f.SearchKey,
		"status":     f.Status,
		"from_date":  f.FromDate,
		"to_date":    f.ToDate,
	} {
		if value != "" {
			payload[key] = value
		}
	}
	return payload
}

func (c *UpasampadaController) List(w http.ResponseWriter, r *http.Request) {
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
	rows := make([]viewmodels.UpasampadaRow, 0, len(res.Items))
	for _, item := range res.Items {
		rec, err := domain.DecodeRecord(item)
		if err != nil {
			continue
		}
		rows = append(rows, mappers.UpasampadaToRow(rec))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"data":  rows,
		"total": res.Total,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

func (c *UpasampadaController) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := c.service.GetRecord(r.Context(), shared.PathVar(r, "id"))
	if err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.UpasampadaToRow(rec))
}

func (c *UpasampadaController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), shared.PathVar(r, "id")); err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (c *UpasampadaController) MarkPrinted(w http.ResponseWriter, r *http.Request) {
	if err := c.service.MarkS1Printed(r.Context(), shared.PathVar(r, "id")); err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"printed": true})
}

// mapStageError translates the stage gate's sentinel into the same
// conflict response on every route that can trip it, wizard included.
func mapStageError(err error) (int, string, string, bool) {
	if errors.Is(err, services.ErrStageTwoNotReady) {
		return http.StatusConflict, "STAGE_NOT_READY", "Stage one certificate must be printed first", true
	}
	return 0, "", "", false
}

func (c *UpasampadaController) writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		return
	}
	if status, code, msg, ok := mapStageError(err); ok {
		_ = httpapi.WriteError(w, status, code, msg, nil)
		return
	}
	status := registry.StatusOf(err)
	if status == 0 {
		status = http.StatusBadGateway
	}
	_ = httpapi.WriteError(w, status, "REGISTRY_ERROR", registry.HumanMessage(err), nil)
}
