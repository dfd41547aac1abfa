package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Orchestrator produces the assistant reply for a message and the conversation so far.
type Orchestrator interface {
	Ask(ctx context.Context, message string, history []Message) (string, error)
}

type historyEntry struct {
	Id        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type orchestrateRequest struct {
	Message string `json:"message"`
	Context struct {
		History []historyEntry `json:"history"`
	} `json:"context"`
}

type orchestrateResponse struct {
	Responses json.RawMessage `json:"responses"`
}

type OrchestratorClient struct {
	url        string
	httpClient *http.Client
}

func NewOrchestratorClient(url string, httpClient *http.Client) *OrchestratorClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OrchestratorClient{url: url, httpClient: httpClient}
}

// Ask posts the message once. An empty reply with a nil error means the orchestrator
// answered without a usable response.
func (c *OrchestratorClient) Ask(ctx context.Context, message string, history []Message) (string, error) {
	var payload orchestrateRequest
	payload.Message = message
	payload.Context.History = make([]historyEntry, 0, len(history))
	for _, m := range history {
		payload.Context.History = append(payload.Context.History, historyEntry{
			Id:        m.Id,
			Text:      m.Text,
			Sender:    m.Sender,
			Timestamp: m.Timestamp,
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode orchestrator request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create orchestrator request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call orchestrator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("orchestrator returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var decoded orchestrateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode orchestrator response: %w", err)
	}
	log.Tracef("orchestrator responses: %s", decoded.Responses)
	return responseText(decoded.Responses), nil
}

// responseText returns string responses as-is and renders any other JSON value as text.
func responseText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return text
	}
	return string(trimmed)
}
