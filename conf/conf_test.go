package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/copernet/bitwire/chaincfg"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	assert.NoError(t, err)
	assert.Equal(t, "mainnet", cfg.Network)

	params, err := cfg.Params()
	assert.NoError(t, err)
	assert.Equal(t, chaincfg.MainNetParams.Net, params.Net)
}

func TestParamsSelection(t *testing.T) {
	cfg := &Config{Network: "testnet"}
	params, err := cfg.Params()
	assert.NoError(t, err)
	assert.Equal(t, chaincfg.TestNetParams.Net, params.Net)

	cfg.Network = "bogus"
	_, err = cfg.Params()
	assert.Error(t, err)
}

func TestLocalVersionOverride(t *testing.T) {
	params := &chaincfg.MainNetParams
	cfg := &Config{}
	assert.Equal(t, params.ProtocolVersion, cfg.LocalVersion(params))

	cfg.ProtoVersion = 60002
	assert.Equal(t, uint32(60002), cfg.LocalVersion(params))
}

func TestLocalNonceOverride(t *testing.T) {
	cfg := &Config{Nonce: 42}
	assert.Equal(t, uint64(42), cfg.LocalNonce())

	cfg = &Config{}
	assert.NotEqual(t, uint64(0), cfg.LocalNonce())
}
