package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
)

// AskRequest is the upstream oracle's question payload. History excludes
// round-winning verdicts; the upstream only wants real question/answer
// exchanges.
type AskRequest struct {
	Question    string           `json:"question"`
	PastAnswers []model.OracleQA `json:"pastAnswers"`
}

// AskResponse is the upstream oracle's verdict
type AskResponse struct {
	Answer   string `json:"answer"`
	Hint     string `json:"hint,omitempty"`
	GameOver bool   `json:"gameOver"`
}

// Client asks the external oracle a question against a round's history
type Client interface {
	Ask(ctx context.Context, req *AskRequest) (*AskResponse, error)
}

// HTTPClient is the production oracle client
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates an oracle client against the given base URL
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Ask forwards a question to the upstream oracle. Any transport or decode
// failure maps to model.ErrOracleUpstream so callers can render it as one
// kind of outage.
func (c *HTTPClient) Ask(ctx context.Context, req *AskRequest) (*AskResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ask", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrOracleUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream returned %d", model.ErrOracleUpstream, resp.StatusCode)
	}

	var out AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrOracleUpstream, err)
	}
	return &out, nil
}
