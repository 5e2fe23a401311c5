package viewmodels

type CouncilRow struct {
	ID            string `json:"id"`
	CouncilName   string `json:"councilName"`
	RegNumber     string `json:"regNumber"`
	District      string `json:"district"`
	ChairmanName  string `json:"chairmanName"`
	SecretaryName string `json:"secretaryName"`
	Status        string `json:"status"`
}

type MemberRow struct {
	ID         string `json:"id"`
	MemberName string `json:"memberName"`
	Role       string `json:"role"`
	RoleLabel  string `json:"roleLabel"`
	NicNumber  string `json:"nicNumber"`
	ContactNo  string `json:"contactNo"`
}
