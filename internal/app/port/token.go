package port

import "masonry_tracker/internal/domain/entity"

// TokenProvider defines the interface for resolving the Masonry stake and reward tokens.
type TokenProvider interface {
	GetMasonryTokens() (entity.MasonryTokens, error)
}
