package viewmodels

type UpasampadaRow struct {
	ID             string `json:"id"`
	SamaneraNumber string `json:"samaneraNumber"`
	CandidateName  string `json:"candidateName"`
	TempleName     string `json:"templeName"`
	UpasampadaDate string `json:"upasampadaDate"`
	Status         string `json:"status"`
	StatusLabel    string `json:"statusLabel"`
	StageTwoReady  bool   `json:"stageTwoReady"`
}
