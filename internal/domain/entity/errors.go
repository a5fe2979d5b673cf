package entity

import "errors"

// Error kinds surfaced by the stats pipeline. Callers wrap them with context
// describing the failed operation and match with errors.Is.
var (
	// ErrAddressParse marks a malformed wallet, contract or token address.
	ErrAddressParse = errors.New("invalid address")
	// ErrAbiParse marks a malformed contract interface description.
	ErrAbiParse = errors.New("invalid contract ABI")
	// ErrRPC marks a network or contract-call failure.
	ErrRPC = errors.New("rpc error")
	// ErrPriceFetch marks a price-index request or decode failure.
	ErrPriceFetch = errors.New("price fetch error")
	// ErrPriceUnavailable marks a token missing from a price-index response.
	ErrPriceUnavailable = errors.New("price unavailable")
)

// StatsError records which step of a stats request failed.
type StatsError struct {
	Op            string
	WalletAddress string
	Err           error
}

func (e *StatsError) Error() string {
	return e.Op + " for wallet " + e.WalletAddress + ": " + e.Err.Error()
}

func (e *StatsError) Unwrap() error { return e.Err }
