package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"momentchain/internal/domain/repository/wallet"
)

type Config struct {
	// URL of the wallet bridge RPC endpoint. Empty means no wallet is
	// present.
	URL string `yaml:"url"`

	TimeoutInMs int64 `yaml:"timeout_in_ms"`
}

const defaultTimeout = 30 * time.Second

// Bridge talks JSON-RPC 2.0 to an external wallet (a browser-wallet bridge
// or a local signer daemon). The wallet owns the keys; this client only asks
// for account access and network switching.
type Bridge struct {
	url        string
	httpClient *http.Client
}

// New returns nil when no bridge URL is configured, which the pipeline
// treats as the wallet capability being absent.
func New(cfg Config) *Bridge {
	if cfg.URL == "" {
		return nil
	}

	timeout := defaultTimeout
	if cfg.TimeoutInMs > 0 {
		timeout = time.Duration(cfg.TimeoutInMs) * time.Millisecond
	}

	return &Bridge{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (b *Bridge) RequestAccounts(ctx context.Context) (string, error) {
	var accounts []string
	if err := b.call(ctx, "eth_requestAccounts", nil, &accounts); err != nil {
		return "", err
	}
	if len(accounts) == 0 {
		return "", errors.New("wallet returned no accounts")
	}

	return accounts[0], nil
}

// AddNetwork asks the wallet to register the chain. Wallets treat an already
// known chain as a no-op, so the call is idempotent.
func (b *Bridge) AddNetwork(ctx context.Context, network wallet.Network) error {
	param := addChainParam{
		ChainID: network.ChainIDHex(),
		Network: network,
	}

	return b.call(ctx, "wallet_addEthereumChain", []any{param}, nil)
}

func (b *Bridge) SwitchNetwork(ctx context.Context, chainIDHex string) error {
	return b.call(ctx, "wallet_switchEthereumChain", []any{switchChainParam{ChainID: chainIDHex}}, nil)
}

func (b *Bridge) call(ctx context.Context, method string, params []any, result any) error {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("wallet error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("wallet rejected %s: %s (code %d)", method, rpcResp.Error.Message, rpcResp.Error.Code)
	}

	if result != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}
	}

	return nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type addChainParam struct {
	ChainID string `json:"chainId"`
	wallet.Network
}

type switchChainParam struct {
	ChainID string `json:"chainId"`
}
