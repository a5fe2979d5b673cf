package units

import "fmt"

// ValueUSD multiplies the unit amount by a USD spot price.
func ValueUSD(u Unit, priceUSD float64) float64 {
	return u.Float64() * priceUSD
}

// FormatUSD renders a USD amount with two decimals, e.g. "20.50 USD".
func FormatUSD(v float64) string {
	return fmt.Sprintf("%.2f USD", v)
}
