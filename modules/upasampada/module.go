package upasampada

import (
	"github.com/sasanalk/sasana-portal/modules/upasampada/presentation/controllers"
	"github.com/sasanalk/sasana-portal/modules/upasampada/services"
	"github.com/sasanalk/sasana-portal/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewUpasampadaService(app.Registry(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewUpasampadaController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "upasampada"
}
