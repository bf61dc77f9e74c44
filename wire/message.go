package wire

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// CommandSize is the fixed width in bytes of a message's command field
// on the wire, NUL-padded when the name is shorter.
const CommandSize = 12

// SafeChars is the character set MessageSummary sanitizes free-text
// fields against before logging them, so a malicious peer cannot
// inject control characters into log output.
const SafeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ01234567890 .,;_/:?@"

// The commands this core recognizes. DecodeCommand drops any other
// command name without decoding it.
const (
	CommandVersion   = "version"
	CommandVerAck    = "verack"
	CommandPing      = "ping"
	CommandGetAddr   = "getaddr"
	CommandAddr      = "addr"
	CommandGetBlocks = "getblocks"
	CommandInv       = "inv"
	CommandGetData   = "getdata"
	CommandTx        = "tx"
	CommandBlock     = "block"
)

// Message is implemented by every decoded wire payload.
type Message interface {
	BtcDecode(r io.Reader, pver uint32) error
	BtcEncode(w io.Writer, pver uint32) error
	Command() string
	MaxPayloadLength(pver uint32) uint32
}

// DecodeCommand allocates the concrete Message type for command and
// decodes payload into it. It returns (nil, nil) for a command outside
// the recognized set, matching the codec's contract of silently
// dropping unknown commands rather than treating them as an error.
func DecodeCommand(command string, payload []byte, pver uint32) (Message, error) {
	msg, err := makeEmptyMessage(command)
	if err != nil {
		return nil, nil
	}
	if err := msg.BtcDecode(bytes.NewReader(payload), pver); err != nil {
		return nil, err
	}
	return msg, nil
}

// makeEmptyMessage returns a zero-value Message for command, or an
// error if command is not part of the recognized set. DecodeCommand
// uses this to allocate the right concrete type before decoding.
func makeEmptyMessage(command string) (Message, error) {
	switch command {
	case CommandVersion:
		return &MsgVersion{}, nil
	case CommandVerAck:
		return &MsgVerAck{}, nil
	case CommandPing:
		return &MsgPing{}, nil
	case CommandGetAddr:
		return &MsgGetAddr{}, nil
	case CommandAddr:
		return &MsgAddr{}, nil
	case CommandGetBlocks:
		return &MsgGetBlocks{}, nil
	case CommandInv:
		return &MsgInv{}, nil
	case CommandGetData:
		return &MsgGetData{}, nil
	case CommandTx:
		return &MsgTx{}, nil
	case CommandBlock:
		return &MsgBlock{}, nil
	default:
		return nil, errors.Errorf("unhandled command %q", command)
	}
}

// SanitizeString strips any rune not in SafeChars and truncates to
// maxLength, matching the treatment applied to peer-supplied free text
// (user agents, in the future reject reasons) before it reaches a log line.
func SanitizeString(str string, maxLength int) string {
	str = strings.Map(func(r rune) rune {
		if strings.ContainsRune(SafeChars, r) {
			return r
		}
		return -1
	}, str)
	if maxLength > 0 && len(str) > maxLength {
		str = str[:maxLength]
	}
	return str
}

// MessageSummary renders a short human-readable description of msg for
// logging, mirroring the per-type summaries used across this codebase
// family's debug logs.
func MessageSummary(msg Message) string {
	switch m := msg.(type) {
	case *MsgVersion:
		return fmt.Sprintf("agent %s, pver %d, block %d", SanitizeString(m.UserAgent, MaxUserAgentLen), m.ProtocolVersion, m.StartHeight)
	case *MsgAddr:
		return fmt.Sprintf("%d addr", len(m.AddrList))
	case *MsgTx:
		return fmt.Sprintf("hash %s, %d inputs, %d outputs", m.TxHash(), len(m.TxIn), len(m.TxOut))
	case *MsgBlock:
		return fmt.Sprintf("hash %s, %d txs", m.Header.BlockHash(), len(m.Transactions))
	case *MsgInv:
		return invSummary(m.InvList)
	case *MsgGetData:
		return invSummary(m.InvList)
	case *MsgGetBlocks:
		return locatorSummary(m.BlockLocator, &m.HashStop)
	}
	return ""
}

func invSummary(invList []*InvVect) string {
	switch len(invList) {
	case 0:
		return "empty"
	case 1:
		iv := invList[0]
		return fmt.Sprintf("%s %s", iv.Type, iv.Hash)
	default:
		return fmt.Sprintf("size %d", len(invList))
	}
}

func locatorSummary(locator []Hash, stop *Hash) string {
	if len(locator) > 0 {
		return fmt.Sprintf("locator %s, stop %s", locator[0], stop)
	}
	return fmt.Sprintf("no locator, stop %s", stop)
}
