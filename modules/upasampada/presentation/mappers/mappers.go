package mappers

import (
	"github.com/sasanalk/sasana-portal/modules/upasampada/domain"
	"github.com/sasanalk/sasana-portal/modules/upasampada/presentation/viewmodels"
	"github.com/sasanalk/sasana-portal/pkg/dateutil"
)

func UpasampadaToRow(rec domain.Record) viewmodels.UpasampadaRow {
	return viewmodels.UpasampadaRow{
		ID:             rec.ID.String(),
		SamaneraNumber: rec.SamaneraNo,
		CandidateName:  rec.CandidateName,
		TempleName:     rec.TempleName,
		UpasampadaDate: dateutil.ToDisplay(rec.UpasampadaDate),
		Status:         rec.Status,
		StatusLabel:    domain.StatusLabel(rec.Status),
		StageTwoReady:  domain.StageTwoReady(rec.Status),
	}
}
