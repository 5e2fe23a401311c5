package viewmodels

type SilmathaRow struct {
	ID             string `json:"id"`
	SilmathaNumber string `json:"silmathaNumber"`
	SilmathaName   string `json:"silmathaName"`
	AramayaName    string `json:"aramayaName"`
	District       string `json:"district"`
	RobingDate     string `json:"robingDate"`
	Status         string `json:"status"`
}
