package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/sasanalk/sasana-portal/modules/sasanarakshaka/domain"
	"github.com/sasanalk/sasana-portal/modules/sasanarakshaka/presentation/mappers"
	"github.com/sasanalk/sasana-portal/modules/sasanarakshaka/presentation/viewmodels"
	"github.com/sasanalk/sasana-portal/modules/sasanarakshaka/services"
	"github.com/sasanalk/sasana-portal/pkg/application"
	"github.com/sasanalk/sasana-portal/pkg/composables"
	"github.com/sasanalk/sasana-portal/pkg/configuration"
	"github.com/sasanalk/sasana-portal/pkg/constants"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
	"github.com/sasanalk/sasana-portal/pkg/httpapi"
	"github.com/sasanalk/sasana-portal/pkg/listapi"
	"github.com/sasanalk/sasana-portal/pkg/middleware"
	"github.com/sasanalk/sasana-portal/pkg/registry"
	"github.com/sasanalk/sasana-portal/pkg/shared"
	"github.com/sasanalk/sasana-portal/pkg/wizardapi"
	"github.com/sasanalk/sasana-portal/pkg/wizardsession"
)

// SasanarakshakaController serves the council registry and, nested under
// each council, its member roster.
type SasanarakshakaController struct {
	app      application.Application
	service  *services.SasanarakshakaService
	wizard   *wizardapi.Controller
	lists    *listapi.Controller
	basePath string
}

func NewSasanarakshakaController(app application.Application) application.Controller {
	conf := configuration.Use()
	service := app.Service(services.SasanarakshakaService{}).(*services.SasanarakshakaService)
	c := &SasanarakshakaController{
		app:      app,
		service:  service,
		basePath: "/sasanarakshaka",
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

func (c *SasanarakshakaController) Key() string {
	return c.basePath
}

func (c *SasanarakshakaController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireDepartment(composables.DepartmentSasanarakshaka))

	c.wizard.Mount(router.PathPrefix("/wizard").Subrouter())
	c.lists.Mount(router.PathPrefix("/list-sessions").Subrouter())

	router.HandleFunc("/councils", c.List).Methods(http.MethodGet)
	router.HandleFunc("/councils/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/councils/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/councils/{id}/members", c.ListMembers).Methods(http.MethodGet)
	router.HandleFunc("/councils/{id}/members", c.AddMember).Methods(http.MethodPost)
	router.HandleFunc("/councils/{id}/members/{memberId}", c.RemoveMember).Methods(http.MethodDelete)
}

func (c *SasanarakshakaController) submit(ctx context.Context, sess *wizardsession.Session, values formwizard.Values) (string, error) {
	if sess.RecordID == "" {
		return c.service.Create(ctx, values)
	}
	return sess.RecordID, c.service.Update(ctx, sess.RecordID, values)
}

type listFilters struct {
	SearchKey string `form:"search_key"`
	Province  string `form:"province"`
	District  string `form:"district"`
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
	} {
		if value != "" {
			payload[key] = value
		}
	}
	return payload
}

func (c *SasanarakshakaController) List(w http.ResponseWriter, r *http.Request) {
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
	rows := make([]viewmodels.CouncilRow, 0, len(res.Items))
	for _, item := range res.Items {
		rec, err := domain.DecodeRecord(item)
		if err != nil {
			continue
		}
		rows = append(rows, mappers.CouncilToRow(rec))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"data":  rows,
		"total": res.Total,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

func (c *SasanarakshakaController) Get(w http.ResponseWriter, r *http.Request) {
	raw, err := c.service.Get(r.Context(), shared.PathVar(r, "id"))
	if err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (c *SasanarakshakaController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), shared.PathVar(r, "id")); err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (c *SasanarakshakaController) ListMembers(w http.ResponseWriter, r *http.Request) {
	params := composables.UsePaginated(r)
	res, err := c.service.ListMembers(r.Context(), shared.PathVar(r, "id"), map[string]any{
		"skip":  params.Offset,
		"limit": params.Limit,
	})
	if err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	rows := make([]viewmodels.MemberRow, 0, len(res.Items))
	for _, item := range res.Items {
		m, err := domain.DecodeMember(item)
		if err != nil {
			continue
		}
		rows = append(rows, mappers.MemberToRow(m))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"data":  rows,
		"total": res.Total,
	})
}

type memberRequest struct {
	MemberName string `json:"memberName" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=CHAIRMAN SECRETARY TREASURER MEMBER"`
	NicNumber  string `json:"nicNumber" validate:"omitempty,max=12"`
	ContactNo  string `json:"contactNo" validate:"omitempty,len=10"`
}

func (c *SasanarakshakaController) AddMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_JSON", "invalid json", nil)
		return
	}
	if err := constants.Validate.Struct(&req); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = "Invalid value"
			}
		}
		_ = httpapi.WriteFieldErrors(w, fields)
		return
	}
	id, err := c.service.AddMember(r.Context(), shared.PathVar(r, "id"), map[string]any{
		"member_name": req.MemberName,
		"role":        req.Role,
		"nic_no":      req.NicNumber,
		"contact_no":  req.ContactNo,
	})
	if err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (c *SasanarakshakaController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := c.service.RemoveMember(r.Context(), shared.PathVar(r, "memberId")); err != nil {
		c.writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (c *SasanarakshakaController) writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		return
	}
	status := registry.StatusOf(err)
	if status == 0 {
		status = http.StatusBadGateway
	}
	_ = httpapi.WriteError(w, status, "REGISTRY_ERROR", registry.HumanMessage(err), nil)
}
