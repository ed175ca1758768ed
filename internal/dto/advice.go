package dto

type AdviceRequest struct {
	UserID   int    `json:"userId"`
	Question string `json:"question"`
}

type AdviceContext struct {
	TotalSpent    float64       `json:"totalSpent"`
	TotalIncome   float64       `json:"totalIncome"`
	NetBalance    float64       `json:"netBalance"`
	TopCategories []TopCategory `json:"topCategories"`
}

type AdviceResponse struct {
	Advice  string        `json:"advice"`
	Context AdviceContext `json:"context"`
}
