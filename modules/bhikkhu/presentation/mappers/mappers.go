package mappers

import (
	"github.com/sasanalk/sasana-portal/modules/bhikkhu/domain"
	"github.com/sasanalk/sasana-portal/modules/bhikkhu/presentation/viewmodels"
	"github.com/sasanalk/sasana-portal/modules/core/geo"
	"github.com/sasanalk/sasana-portal/pkg/dateutil"
)

func BhikkhuToRow(rec domain.Record) viewmodels.BhikkhuRow {
	return viewmodels.BhikkhuRow{
		ID:             rec.ID.String(),
		SamaneraNumber: rec.SamaneraNo,
		BhikkhuName:    rec.BhikkhuName,
		TempleName:     rec.TempleName,
		District:       geo.DistrictName(rec.District),
		OrdinationDate: dateutil.ToDisplay(rec.OrdinationDate),
		Status:         rec.Status,
	}
}
