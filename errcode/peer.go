package errcode

// PeerErr enumerates error codes for connection-level failures. The
// peer package returns only ErrorSelfConnect (from the version
// handshake); unknown or malformed inbound messages are logged and
// dropped there without an error code.
type PeerErr int

const (
	ErrorSelfConnect PeerErr = PeerErrorBase + iota
	ErrorUnknownCommand
	ErrorMalformedMessage
	ErrorNotConnected
)

var peerErrStrings = map[PeerErr]string{
	ErrorSelfConnect:      "peer nonce matches a nonce we sent, refusing self connection",
	ErrorUnknownCommand:   "command is not part of the recognized command set",
	ErrorMalformedMessage: "message body could not be decoded",
	ErrorNotConnected:     "connection is not attached to a live socket",
}

func (e PeerErr) String() string {
	if s, ok := peerErrStrings[e]; ok {
		return s
	}
	return "unknown peer error"
}
