package bhikkhu

import (
	"github.com/sasanalk/sasana-portal/modules/bhikkhu/presentation/controllers"
	"github.com/sasanalk/sasana-portal/modules/bhikkhu/services"
	"github.com/sasanalk/sasana-portal/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewBhikkhuService(app.Registry(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewBhikkhuController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "bhikkhu"
}
