package mappers

import (
	"github.com/sasanalk/sasana-portal/modules/core/geo"
	"github.com/sasanalk/sasana-portal/modules/sasanarakshaka/domain"
	"github.com/sasanalk/sasana-portal/modules/sasanarakshaka/presentation/viewmodels"
)

func CouncilToRow(rec domain.Record) viewmodels.CouncilRow {
	return viewmodels.CouncilRow{
		ID:            rec.ID.String(),
		CouncilName:   rec.CouncilName,
		RegNumber:     rec.CouncilRegNo,
		District:      geo.DistrictName(rec.District),
		ChairmanName:  rec.ChairmanName,
		SecretaryName: rec.SecretaryName,
		Status:        rec.Status,
	}
}

func MemberToRow(m domain.Member) viewmodels.MemberRow {
	label := domain.MemberRoles[m.Role]
	if label == "" {
		label = m.Role
	}
	return viewmodels.MemberRow{
		ID:         m.ID.String(),
		MemberName: m.MemberName,
		Role:       m.Role,
		RoleLabel:  label,
		NicNumber:  m.NicNo,
		ContactNo:  m.ContactNo,
	}
}
