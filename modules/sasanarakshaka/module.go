package sasanarakshaka

import (
	"github.com/sasanalk/sasana-portal/modules/sasanarakshaka/presentation/controllers"
	"github.com/sasanalk/sasana-portal/modules/sasanarakshaka/services"
	"github.com/sasanalk/sasana-portal/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewSasanarakshakaService(app.Registry(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewSasanarakshakaController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "sasanarakshaka"
}
