package utils

import "math/big"

var (
	weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	weiPerGwei  = big.NewInt(1_000_000_000)
)

// GweiToWei converts an amount expressed in gwei to wei.
func GweiToWei(gwei int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(gwei), weiPerGwei)
}

// FormatEther renders a wei amount as a decimal string in the display
// currency unit, trimmed to a readable precision.
func FormatEther(wei *big.Int) string {
	f := new(big.Float).SetInt(wei)
	f.Quo(f, new(big.Float).SetInt(weiPerEther))

	return f.Text('f', 6)
}
