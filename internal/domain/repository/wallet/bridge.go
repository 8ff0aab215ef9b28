package wallet

import (
	"context"
	"fmt"
)

// Currency is the native fee token of a network.
type Currency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals int    `json:"decimals" yaml:"decimals"`
}

// Network describes a chain for wallet_addEthereumChain.
type Network struct {
	ChainID           int64    `json:"-" yaml:"chain_id"`
	ChainName         string   `json:"chainName" yaml:"chain_name"`
	NativeCurrency    Currency `json:"nativeCurrency" yaml:"native_currency"`
	RPCURLs           []string `json:"rpcUrls" yaml:"rpc_urls"`
	IconURLs          []string `json:"iconUrls" yaml:"icon_urls"`
	BlockExplorerURLs []string `json:"blockExplorerUrls" yaml:"block_explorer_urls"`
}

// ChainIDHex returns the chain id in the 0x-prefixed form wallets expect.
func (n Network) ChainIDHex() string {
	return fmt.Sprintf("0x%x", n.ChainID)
}

// Bridge is the wallet capability. A nil Bridge means no wallet is present,
// which must be detected before any call is made.
type Bridge interface {
	RequestAccounts(ctx context.Context) (string, error)
	AddNetwork(ctx context.Context, network Network) error
	SwitchNetwork(ctx context.Context, chainIDHex string) error
}
