package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Synthesizer turns text into an audio stream. The caller owns the returned
// reader and must close it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (io.ReadCloser, error)
}

type ElevenLabsClient struct {
	BaseURL string
	APIKey  string
	VoiceID string
	ModelID string
	Client  *http.Client
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type synthesizeReq struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

func NewElevenLabsClient(baseURL, apiKey string) *ElevenLabsClient {
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	return &ElevenLabsClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		VoiceID: "21m00Tcm4TlvDq8ikWAM",
		ModelID: "eleven_monolingual_v1",
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("elevenlabs: api key is required")
	}

	body, err := json.Marshal(synthesizeReq{
		Text:    text,
		ModelID: c.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", strings.TrimRight(c.BaseURL, "/"), c.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		text := strings.TrimSpace(string(msg))
		if text == "" {
			text = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("elevenlabs: %s", text)
	}

	return resp.Body, nil
}
