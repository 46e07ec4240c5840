package dto

type ListProblemsResponse struct {
	Problems []string `json:"problems"`
}

type SerializeMatrixResponse struct {
	Matrix [][]int64 `json:"matrix"`
	Text   string    `json:"text"`
}
