package dto

type GeminiGenerateRequest struct {
	Prompt          string
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
}

type GeminiGenerateResponse struct {
	Text string
	Raw  any
}
