package networkdefinition

import (
	"testing"

	"masonry_tracker/internal/infrastructure/configloader"
	"masonry_tracker/internal/pkg/logger"
)

func TestBuiltInFantom(t *testing.T) {
	p, err := NewNetworkDefinitionProvider(logger.NewSlogAdapter(), configloader.NetworkNodeConfig{Identifier: "Fantom"})
	if err != nil {
		t.Fatalf("NewNetworkDefinitionProvider error: %v", err)
	}
	def := p.Active()
	if def.ChainID != 250 || def.PrimaryRPCURL != Fantom.PrimaryRPCURL {
		t.Errorf("Active() = %+v, want built-in Fantom", def)
	}
	if _, ok := p.GetNetworkDefinitionByName("fantom"); !ok {
		t.Error("GetNetworkDefinitionByName(fantom) not found")
	}
	if _, ok := p.GetNetworkDefinitionByName("ethereum"); ok {
		t.Error("GetNetworkDefinitionByName(ethereum) should not be active")
	}
	if got := len(p.GetAllNetworkDefinitions()); got != 1 {
		t.Errorf("GetAllNetworkDefinitions() len = %d, want 1", got)
	}
}

func TestOverrides(t *testing.T) {
	p, err := NewNetworkDefinitionProvider(logger.NewSlogAdapter(), configloader.NetworkNodeConfig{
		Identifier:      "fantom",
		RPCURL:          "http://localhost:8545",
		FallbackRPCURLs: []string{"http://localhost:8546"},
	})
	if err != nil {
		t.Fatalf("NewNetworkDefinitionProvider error: %v", err)
	}
	def := p.Active()
	if def.PrimaryRPCURL != "http://localhost:8545" {
		t.Errorf("PrimaryRPCURL = %q", def.PrimaryRPCURL)
	}
	if len(def.FallbackRPCURLs) != 1 || def.FallbackRPCURLs[0] != "http://localhost:8546" {
		t.Errorf("FallbackRPCURLs = %v", def.FallbackRPCURLs)
	}
	if Fantom.PrimaryRPCURL == def.PrimaryRPCURL {
		t.Error("override leaked into the built-in definition")
	}
}

func TestUnknownNetwork(t *testing.T) {
	if _, err := NewNetworkDefinitionProvider(logger.NewSlogAdapter(), configloader.NetworkNodeConfig{Identifier: "solana"}); err == nil {
		t.Fatal("expected error for unknown network without rpcURL")
	}

	p, err := NewNetworkDefinitionProvider(logger.NewSlogAdapter(), configloader.NetworkNodeConfig{
		Identifier: "devnet", RPCURL: "http://127.0.0.1:8545", ChainID: 31337,
	})
	if err != nil {
		t.Fatalf("NewNetworkDefinitionProvider error: %v", err)
	}
	if def := p.Active(); def.ChainID != 31337 || def.Identifier != "devnet" {
		t.Errorf("Active() = %+v", def)
	}
}
