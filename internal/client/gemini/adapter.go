package geminiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/finsight/finsight-backend/internal/dto"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Adapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	log        *slog.Logger
}

func NewAdapter(log *slog.Logger, apiKey, model string) *Adapter {
	return &Adapter{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		log:        log,
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (a *Adapter) SetBaseURL(url string) {
	a.baseURL = url
}

func (a *Adapter) Configured() bool {
	return a.apiKey != ""
}

// generateContent wire types, matching the generativelanguage REST schema.
type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (a *Adapter) GenerateContent(ctx context.Context, req dto.GeminiGenerateRequest) (dto.GeminiGenerateResponse, error) {
	out := dto.GeminiGenerateResponse{}

	if a.apiKey == "" {
		return out, fmt.Errorf("gemini api key is not configured")
	}

	body := generateContentRequest{
		Contents: []content{
			{Parts: []part{{Text: req.Prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     req.Temperature,
			TopK:            req.TopK,
			TopP:            req.TopP,
			MaxOutputTokens: req.MaxOutputTokens,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return out, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return out, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, err
	}

	if resp.StatusCode != http.StatusOK {
		a.log.Error("gemini request failed", "status", resp.StatusCode, "body", string(raw))
		return out, fmt.Errorf("gemini request failed with status %d", resp.StatusCode)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return out, err
	}

	out.Raw = parsed
	out.Text = extractText(parsed)
	return out, nil
}

func extractText(resp generateContentResponse) string {
	var text string
	for _, candidate := range resp.Candidates {
		for _, p := range candidate.Content.Parts {
			text += p.Text
		}
	}
	return text
}
