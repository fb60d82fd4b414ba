// Package genai wraps the text-generation back end. The back end is
// optional: callers must treat a nil Generator or a failed call as a signal
// to use their own deterministic fallback.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Params bound every generation call. Stop sequences cut the model off at a
// blank line or a speaker label so it cannot simulate further turns.
type Params struct {
	MaxNewTokens  int      `json:"max_new_tokens"`
	Temperature   float64  `json:"temperature"`
	StopSequences []string `json:"stop_sequences"`
}

func DefaultParams() Params {
	return Params{
		MaxNewTokens:  200,
		Temperature:   0.7,
		StopSequences: []string{"\n\n", "User:", "Aura:"},
	}
}

type Client struct {
	baseURL    string
	apiKey     string
	modelID    string
	params     Params
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, modelID string, params Params) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		modelID: modelID,
		params:  params,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type generateRequest struct {
	ModelID    string `json:"model_id"`
	Input      string `json:"input"`
	Parameters Params `json:"parameters"`
}

type generateResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
	GeneratedText string `json:"generated_text"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		ModelID:    c.modelID,
		Input:      prompt,
		Parameters: c.params,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/text/generation", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation api returned status %s: %s", resp.Status, string(body))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Results) > 0 {
		return result.Results[0].GeneratedText, nil
	}
	return result.GeneratedText, nil
}
