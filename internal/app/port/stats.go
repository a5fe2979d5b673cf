package port

import (
	"context"

	"masonry_tracker/internal/domain/entity"
)

// StatsService builds the Masonry report for a wallet.
type StatsService interface {
	MasonryStats(ctx context.Context, wallet entity.Wallet) (entity.MasonryStats, error)
}
