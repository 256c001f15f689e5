package stability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-chat-be/pkg/genai"
)

const (
	defaultBaseURL = "https://api.stability.ai"
	defaultModel   = "stable-diffusion-xl-1024-v1-0"
)

// Fixed generation parameters: square SDXL resolution, one sample.
const (
	cfgScale  = 7
	imageSize = 1024
	samples   = 1
	steps     = 30
)

type Provider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type textPrompt struct {
	Text string `json:"text"`
}

type textToImageRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type textToImageResponse struct {
	Artifacts []struct {
		Base64 string `json:"base64"`
	} `json:"artifacts"`
}

func NewProvider(apiKey, baseURL, model string, timeout time.Duration) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Provider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Synthesize renders the prompt with the fixed parameters above and returns
// the first artifact as a PNG data URI. A missing artifact is an error.
func (p *Provider) Synthesize(ctx context.Context, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("stability: %w", genai.ErrMissingCredential)
	}

	reqBody := textToImageRequest{
		TextPrompts: []textPrompt{{Text: prompt}},
		CfgScale:    cfgScale,
		Height:      imageSize,
		Width:       imageSize,
		Samples:     samples,
		Steps:       steps,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stability api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var imgResp textToImageResponse
	if err := json.Unmarshal(bodyBytes, &imgResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(imgResp.Artifacts) == 0 || imgResp.Artifacts[0].Base64 == "" {
		return "", fmt.Errorf("no image artifact in stability response")
	}

	return "data:image/png;base64," + imgResp.Artifacts[0].Base64, nil
}
