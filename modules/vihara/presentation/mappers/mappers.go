package mappers

import (
	"github.com/sasanalk/sasana-portal/modules/core/geo"
	"github.com/sasanalk/sasana-portal/modules/vihara/domain"
	"github.com/sasanalk/sasana-portal/modules/vihara/presentation/viewmodels"
)

func ViharaToRow(rec domain.Record) viewmodels.ViharaRow {
	return viewmodels.ViharaRow{
		ID:             rec.ID.String(),
		ViharaName:     rec.ViharaName,
		RegNumber:      rec.ViharaRegNo,
		Viharadhipathi: rec.Viharadhipathi,
		District:       geo.DistrictName(rec.District),
		Nikaya:         domain.Nikayas[rec.NikayaCode],
		Status:         rec.Status,
	}
}
