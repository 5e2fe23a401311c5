package modules

import (
	"github.com/sasanalk/sasana-portal/modules/bhikkhu"
	"github.com/sasanalk/sasana-portal/modules/core"
	"github.com/sasanalk/sasana-portal/modules/sasanarakshaka"
	"github.com/sasanalk/sasana-portal/modules/silmatha"
	"github.com/sasanalk/sasana-portal/modules/upasampada"
	"github.com/sasanalk/sasana-portal/modules/vihara"
	"github.com/sasanalk/sasana-portal/pkg/application"
)

var BuiltInModules = []application.Module{
	core.NewModule(),
	bhikkhu.NewModule(),
	silmatha.NewModule(),
	vihara.NewModule(),
	upasampada.NewModule(),
	sasanarakshaka.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
