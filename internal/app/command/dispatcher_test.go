package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
)

type fakeStats struct {
	stats  entity.MasonryStats
	err    error
	called int
}

func (f *fakeStats) MasonryStats(context.Context, entity.Wallet) (entity.MasonryStats, error) {
	f.called++
	return f.stats, f.err
}

type fakeWallet struct{ err error }

func (f fakeWallet) GetWallet() (entity.Wallet, error) {
	return entity.Wallet{Address: common.HexToAddress("0x08d6A1d7f3715f442e8e9dbe80CB6f0139c2735e")}, f.err
}

func TestParse(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/stats", "stats"},
		{"/Stats@tomb_tracker_bot", "stats"},
		{"help", "help"},
		{"  /help now ", "help"},
		{"", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHelp(t *testing.T) {
	d := NewDispatcher(&fakeStats{}, fakeWallet{}, logger.NewSlogAdapter())

	want := "These commands are supported:\n/help - display this text.\n/stats - view your stats."
	if got := d.Handle(context.Background(), "/help"); got != want {
		t.Errorf("Handle(/help) = %q, want %q", got, want)
	}
	if got := d.Handle(context.Background(), "/balance"); got != want {
		t.Errorf("Handle(/balance) = %q, want help text", got)
	}
}

func TestStats(t *testing.T) {
	svc := &fakeStats{stats: entity.MasonryStats{
		WalletAddress: "0x08d6A1d7f3715f442e8e9dbe80CB6f0139c2735e",
		Staked:        "12.346 TSHARES",
		StakedValue:   "18.52 USD",
		Rewards:       "1.235 TOMB",
		RewardsValue:  "2.47 USD",
		TotalValueUSD: 20.99,
	}}
	d := NewDispatcher(svc, fakeWallet{}, logger.NewSlogAdapter())

	got := d.Handle(context.Background(), "/stats")
	for _, want := range []string{"Wallet Address: 0x08d6", "Total staked: 12.346 TSHARES (18.52 USD)", "TOTAL VALUE = 20.99 USD"} {
		if !strings.Contains(got, want) {
			t.Errorf("Handle(/stats) missing %q in:\n%s", want, got)
		}
	}
	if svc.called != 1 {
		t.Errorf("stats service called %d times, want 1", svc.called)
	}
}

func TestStatsErrorBecomesReply(t *testing.T) {
	svc := &fakeStats{err: &entity.StatsError{Op: "read masonry position", WalletAddress: "0x08d6", Err: entity.ErrRPC}}
	d := NewDispatcher(svc, fakeWallet{}, logger.NewSlogAdapter())

	got := d.Handle(context.Background(), "/stats")
	if !strings.HasPrefix(got, "an error has occurred: ") || !strings.Contains(got, entity.ErrRPC.Error()) {
		t.Errorf("Handle(/stats) = %q", got)
	}

	d = NewDispatcher(&fakeStats{}, fakeWallet{err: errors.New("boom")}, logger.NewSlogAdapter())
	if got := d.Handle(context.Background(), "/stats"); !strings.Contains(got, "boom") {
		t.Errorf("Handle(/stats) with wallet error = %q", got)
	}
}

