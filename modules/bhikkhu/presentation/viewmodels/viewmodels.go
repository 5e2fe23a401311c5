package viewmodels

type BhikkhuRow struct {
	ID             string `json:"id"`
	SamaneraNumber string `json:"samaneraNumber"`
	BhikkhuName    string `json:"bhikkhuName"`
	TempleName     string `json:"templeName"`
	District       string `json:"district"`
	OrdinationDate string `json:"ordinationDate"`
	Status         string `json:"status"`
}
