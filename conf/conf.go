// Package conf loads the local node identity and network selection
// this core needs to operate: which network's magic bytes to use, the
// protocol version and nonce advertised in outbound version messages,
// and the address to listen on for inbound connections. It does not
// attempt to be a full node's configuration surface -- chain storage,
// RPC, and peer-discovery options belong to higher-level orchestration
// this module does not provide.
package conf

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/copernet/bitwire/chaincfg"
)

// Config holds the identity and network selection a Connection needs
// before it can dial or accept a peer.
type Config struct {
	Network      string `short:"n" long:"network" default:"mainnet" description:"one of mainnet, testnet, regtest"`
	ListenAddr   string `short:"l" long:"listen" description:"address to listen on for inbound connections, e.g. 0.0.0.0:8333"`
	UserAgent    string `long:"useragent" default:"/bitwire:0.1.0/" description:"sub-version string advertised in outbound version messages"`
	ProtoVersion uint32 `long:"protocolversion" description:"override the local protocol version advertised to peers (0 = use the network default)"`
	DisableRelay bool   `long:"norelay" description:"set the version message's fRelay flag to false"`
	Nonce        uint64 `long:"nonce" description:"override the random nonce sent in version messages (0 = generate one)"`
}

// Params resolves the chaincfg.Params this config selects.
func (c *Config) Params() (*chaincfg.Params, error) {
	switch c.Network {
	case "", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", c.Network)
	}
}

// LocalVersion returns the protocol version this process advertises,
// applying the config override if one was set.
func (c *Config) LocalVersion(params *chaincfg.Params) uint32 {
	if c.ProtoVersion != 0 {
		return c.ProtoVersion
	}
	return params.ProtocolVersion
}

// LocalNonce returns the nonce this process advertises in outbound
// version messages, generating a random one if none was configured.
func (c *Config) LocalNonce() uint64 {
	if c.Nonce != 0 {
		return c.Nonce
	}
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return src.Uint64()
}

// Load parses args (typically os.Args[1:]) into a Config, following
// the flag-parsing convention used across this codebase family.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	parser := flags.NewParser(cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is a convenience for callers that want to parse os.Args and
// exit on error, matching the teacher's InitArgs pattern.
func MustLoad() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
