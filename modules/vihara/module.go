package vihara

import (
	"github.com/sasanalk/sasana-portal/modules/vihara/presentation/controllers"
	"github.com/sasanalk/sasana-portal/modules/vihara/services"
	"github.com/sasanalk/sasana-portal/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewViharaService(app.Registry(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewViharaController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "vihara"
}
