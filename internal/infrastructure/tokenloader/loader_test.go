package tokenloader

import (
	"errors"
	"testing"

	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/infrastructure/configloader"
	"masonry_tracker/internal/pkg/units"
)

func tombConfig() configloader.MasonryConfig {
	return configloader.MasonryConfig{
		StakeToken:  configloader.TokenConfig{Symbol: "TSHARES", Address: "0x4cdF39285D7Ca8eB3f090fDA0C069ba5F4145B37", Decimals: 18},
		RewardToken: configloader.TokenConfig{Symbol: "TOMB", Address: "0x6c021Ae822BEa943b2E66552bDe1D2696a53fbB7", Decimals: 18},
	}
}

func TestGetMasonryTokens(t *testing.T) {
	tokens, err := NewTokenLoader(tombConfig(), nil).GetMasonryTokens()
	if err != nil {
		t.Fatalf("GetMasonryTokens error: %v", err)
	}
	if tokens.Stake.Symbol != "TSHARES" || tokens.Stake.Decimals != 18 {
		t.Errorf("Stake = %+v", tokens.Stake)
	}
	if got := tokens.Reward.PriceKey(); got != "0x6c021ae822bea943b2e66552bde1d2696a53fbb7" {
		t.Errorf("Reward.PriceKey() = %q", got)
	}
}

func TestGetMasonryTokensErrors(t *testing.T) {
	badAddress := tombConfig()
	badAddress.StakeToken.Address = "0x4cdF"

	noSymbol := tombConfig()
	noSymbol.RewardToken.Symbol = " "

	badDecimals := tombConfig()
	badDecimals.RewardToken.Decimals = 20

	tests := []struct {
		name string
		cfg  configloader.MasonryConfig
		want error
	}{
		{"bad address", badAddress, entity.ErrAddressParse},
		{"missing symbol", noSymbol, nil},
		{"decimals out of range", badDecimals, units.ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenLoader(tt.cfg, nil).GetMasonryTokens()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
