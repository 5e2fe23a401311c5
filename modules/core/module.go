package core

import (
	"github.com/sasanalk/sasana-portal/modules/core/presentation/controllers"
	"github.com/sasanalk/sasana-portal/modules/core/services"
	"github.com/sasanalk/sasana-portal/pkg/application"
	"github.com/sasanalk/sasana-portal/pkg/configuration"
	"github.com/sasanalk/sasana-portal/pkg/events"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	store := services.NewSessionStore()
	audit := services.NewAuditService(app.Logger())
	app.RegisterServices(
		services.NewSessionService(app.Registry(), store, conf.Session.Duration),
		audit,
	)
	app.RegisterControllers(
		controllers.NewSessionController(app),
		controllers.NewLookupController(app),
	)
	app.EventPublisher().Subscribe(func(ev *events.RecordEvent) {
		audit.OnRecordEvent(ev)
	})
	return nil
}

func (m *Module) Name() string {
	return "core"
}
