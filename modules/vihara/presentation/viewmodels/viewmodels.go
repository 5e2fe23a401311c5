package viewmodels

type ViharaRow struct {
	ID             string `json:"id"`
	ViharaName     string `json:"viharaName"`
	RegNumber      string `json:"regNumber"`
	Viharadhipathi string `json:"viharadhipathi"`
	District       string `json:"district"`
	Nikaya         string `json:"nikaya"`
	Status         string `json:"status"`
}
