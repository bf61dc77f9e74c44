// Package chaincfg carries the per-network constants a Connection
// needs before it can frame a single byte: the magic used to
// resynchronize the framer, the protocol version at which checksums
// switch on, and the default port for that network. It intentionally
// does not carry the proof-of-work, checkpoint, or address-prefix
// parameters a full node needs -- validation and address derivation
// are out of this core's scope.
package chaincfg

import "fmt"

// BitcoinNet represents the magic number identifying a Bitcoin
// network. It appears as the first four bytes of every frame.
type BitcoinNet uint32

// String returns the network name for well-known magics, matching
// the teacher's BitcoinNet identifiers.
func (n BitcoinNet) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet3:
		return "testnet3"
	case RegTest:
		return "regtest"
	default:
		return fmt.Sprintf("unknown net 0x%08x", uint32(n))
	}
}

// Well-known network magics, identical across implementations of the
// wire protocol so two nodes on the same network recognize each
// other's frames.
const (
	MainNet  BitcoinNet = 0xd9b4bef9
	TestNet3 BitcoinNet = 0x0709110b
	RegTest  BitcoinNet = 0xdab5bffa
)

// ProtocolVersionCutover is the protocol version at or above which a
// peer's frames carry a checksum and its addr messages may list more
// than one address. Versions below this predate the addition of
// checksums to the wire format (cutover date: 2012-02-20).
const ProtocolVersionCutover uint32 = 209

// CurrentProtocolVersion is the protocol version this module
// advertises by default in outbound version messages.
const CurrentProtocolVersion uint32 = 70012

// DefaultUserAgent is the sub-version string advertised when a config
// does not override it.
const DefaultUserAgent = "/bitwire:0.1.0/"

// Params bundles the identity of one Bitcoin-style network.
type Params struct {
	Name              string
	Net               BitcoinNet
	DefaultPort       string
	ProtocolVersion   uint32
	CheckpointVersion uint32 // ProtocolVersionCutover, kept per-network for parity with the teacher's per-Params fields
}

var MainNetParams = Params{
	Name:              "mainnet",
	Net:               MainNet,
	DefaultPort:       "8333",
	ProtocolVersion:   CurrentProtocolVersion,
	CheckpointVersion: ProtocolVersionCutover,
}

var TestNetParams = Params{
	Name:              "testnet",
	Net:               TestNet3,
	DefaultPort:       "18333",
	ProtocolVersion:   CurrentProtocolVersion,
	CheckpointVersion: ProtocolVersionCutover,
}

var RegressionNetParams = Params{
	Name:              "regtest",
	Net:               RegTest,
	DefaultPort:       "18444",
	ProtocolVersion:   CurrentProtocolVersion,
	CheckpointVersion: ProtocolVersionCutover,
}
