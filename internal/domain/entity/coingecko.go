package entity

// TokenPriceResponse is the body of CoinGecko /simple/token_price/{platform}:
// contract address -> currency -> price. Addresses come back lowercased.
type TokenPriceResponse map[string]map[string]float64

// CoinGeckoError is the error envelope CoinGecko returns with non-200 statuses.
type CoinGeckoError struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
	Error string `json:"error"`
}

// Message returns whichever error text the envelope carries.
func (e CoinGeckoError) Message() string {
	if e.Status.ErrorMessage != "" {
		return e.Status.ErrorMessage
	}
	return e.Error
}
