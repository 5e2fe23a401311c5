package silmatha

import (
	"github.com/sasanalk/sasana-portal/modules/silmatha/presentation/controllers"
	"github.com/sasanalk/sasana-portal/modules/silmatha/services"
	"github.com/sasanalk/sasana-portal/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewSilmathaService(app.Registry(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewSilmathaController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "silmatha"
}
