package mappers

import (
	"github.com/sasanalk/sasana-portal/modules/core/geo"
	"github.com/sasanalk/sasana-portal/modules/silmatha/domain"
	"github.com/sasanalk/sasana-portal/modules/silmatha/presentation/viewmodels"
	"github.com/sasanalk/sasana-portal/pkg/dateutil"
)

func SilmathaToRow(rec domain.Record) viewmodels.SilmathaRow {
	return viewmodels.SilmathaRow{
		ID:             rec.ID.String(),
		SilmathaNumber: rec.SilmathaNo,
		SilmathaName:   rec.SilmathaName,
		AramayaName:    rec.AramayaName,
		District:       geo.DistrictName(rec.District),
		RobingDate:     dateutil.ToDisplay(rec.RobingDate),
		Status:         rec.Status,
	}
}
