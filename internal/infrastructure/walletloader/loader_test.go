package walletloader

import (
	"errors"
	"strings"
	"testing"

	"masonry_tracker/internal/domain/entity"
)

func TestParseWallet(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0x08d6A1d7f3715f442e8e9dbe80CB6f0139c2735e", "0x08d6A1d7f3715f442e8e9dbe80CB6f0139c2735e", false},
		{" 0x08d6a1d7f3715f442e8e9dbe80cb6f0139c2735e ", "0x08d6A1d7f3715f442e8e9dbe80CB6f0139c2735e", false},
		{"08d6a1d7f3715f442e8e9dbe80cb6f0139c2735e", "", true},
		{"0x08d6a1d7", "", true},
		{"0xzzd6a1d7f3715f442e8e9dbe80cb6f0139c2735e", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseWallet(tt.in)
		if tt.wantErr {
			if !errors.Is(err, entity.ErrAddressParse) {
				t.Errorf("ParseWallet(%q) error = %v, want ErrAddressParse", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWallet(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if !strings.EqualFold(got.Address.Hex(), tt.want) {
			t.Errorf("ParseWallet(%q) = %s, want %s", tt.in, got.Address.Hex(), tt.want)
		}
	}
}

func TestGetWallet(t *testing.T) {
	var logged bool
	l := NewWalletLoader("0x08d6A1d7f3715f442e8e9dbe80CB6f0139c2735e", func(string, ...any) { logged = true })
	if _, err := l.GetWallet(); err != nil {
		t.Fatalf("GetWallet error: %v", err)
	}
	if !logged {
		t.Error("GetWallet did not log the loaded wallet")
	}

	if _, err := NewWalletLoader("nope", nil).GetWallet(); !errors.Is(err, entity.ErrAddressParse) {
		t.Errorf("GetWallet error = %v, want ErrAddressParse", err)
	}
}
