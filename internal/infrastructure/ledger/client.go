package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"momentchain/internal/domain/model"
)

type Config struct {
	// URL of the contract gateway that fronts the chain.
	URL string `yaml:"url"`

	// Token authorizes write calls. Loaded from the environment, never from
	// the yaml file.
	Token string `yaml:"-"`

	TimeoutInMs int64 `yaml:"timeout_in_ms"`
}

const defaultTimeout = 60 * time.Second

// Client is an HTTP client for the identity/ledger contract gateway: balance
// queries, character creation and batched note publishing.
type Client struct {
	base       string
	token      string
	httpClient *http.Client
}

func New(cfg Config) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutInMs > 0 {
		timeout = time.Duration(cfg.TimeoutInMs) * time.Millisecond
	}

	return &Client{
		base:  cfg.URL,
		token: cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetBalance returns owner's fee-token balance in wei.
func (c *Client) GetBalance(ctx context.Context, owner string) (*big.Int, error) {
	var resp balanceResponse
	if err := c.get(ctx, "/addresses/"+url.PathEscape(owner)+"/balance", &resp); err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}

	balance, ok := new(big.Int).SetString(resp.Balance, 10)
	if !ok {
		return nil, fmt.Errorf("get balance: malformed amount %q", resp.Balance)
	}

	return balance, nil
}

// CreateCharacter submits the identity-creation request and returns the new
// character id. The gateway resolves an existing character for the same
// handle, so re-runs land on the same identity.
func (c *Client) CreateCharacter(ctx context.Context, profile model.CharacterProfile) (int64, error) {
	var resp createCharacterResponse
	if err := c.post(ctx, "/characters", profile, &resp); err != nil {
		return 0, fmt.Errorf("create character: %w", err)
	}

	return resp.CharacterID, nil
}

// PostNotes publishes one batch of notes in a single gateway call.
func (c *Client) PostNotes(ctx context.Context, notes []model.Note) error {
	if err := c.post(ctx, "/notes/batch", postNotesRequest{Notes: notes}, nil); err != nil {
		return fmt.Errorf("post notes: %w", err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(req, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

type createCharacterResponse struct {
	CharacterID int64 `json:"characterId"`
}

type postNotesRequest struct {
	Notes []model.Note `json:"notes"`
}
