package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SugestaoPayload is sent to the text-suggestion sidecar, which drafts
// customer-facing copy (quote cover notes, follow-up messages) from the
// quote context.
type SugestaoPayload struct {
	Tipo        string `json:"tipo"` // "observacao" | "followup"
	ClienteNome string `json:"cliente_nome,omitempty"`
	Contexto    string `json:"contexto"`
}

// SugestaoResponse is returned by the sidecar.
type SugestaoResponse struct {
	Texto string `json:"texto"`
}

// SugestaoClient is an HTTP client that delegates text drafting to an
// external sidecar. The circuit breaker at the call site isolates sidecar
// outages from the core backend.
type SugestaoClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewSugestaoClient(sidecarURL string) *SugestaoClient {
	return &SugestaoClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Sugerir sends a POST to the sidecar and returns the drafted text.
func (c *SugestaoClient) Sugerir(ctx context.Context, payload SugestaoPayload) (*SugestaoResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("sugestao: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sidecarURL+"/sugerir", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sugestao: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sugestao: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sugestao: sidecar returned %d", resp.StatusCode)
	}

	var result SugestaoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("sugestao: decode response: %w", err)
	}
	return &result, nil
}
