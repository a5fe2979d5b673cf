// Package report renders Masonry stats as chat text.
package report

import (
	"strings"

	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/pkg/units"
)

const divider = "----------------------------------------"

// FormatMasonryStats renders the wallet, the Masonry section and the totals block.
func FormatMasonryStats(stats entity.MasonryStats) string {
	var b strings.Builder
	b.WriteString("Wallet Address: " + stats.WalletAddress + "\n\n")

	b.WriteString(divider + "\nMASONRY\n" + divider + "\n")
	b.WriteString("Unclaimed rewards: " + stats.Rewards + " (" + stats.RewardsValue + ")\n")
	b.WriteString("Total staked: " + stats.Staked + " (" + stats.StakedValue + ")\n\n")

	b.WriteString(divider + "\n")
	b.WriteString("TOTAL REWARDS = " + stats.RewardsValue + "\n")
	b.WriteString("TOTAL VALUE = " + units.FormatUSD(stats.TotalValueUSD) + "\n")
	b.WriteString(divider + "\n")
	return b.String()
}
