package wire

import (
	"bytes"
	"testing"
	"time"

	"github.com/copernet/bitwire/chaincfg"
)

func sampleMessages() []Message {
	me := &NetAddress{IP: []byte{127, 0, 0, 1}, Port: 8333, Services: SFNodeNetwork}
	you := &NetAddress{IP: []byte{127, 0, 0, 2}, Port: 8333, Services: SFNodeNetwork}

	version := NewMsgVersion(me, you, 123456789, 42)

	inv := NewMsgInv()
	inv.AddInvVect(NewInvVect(InvTypeTx, &Hash{1, 2, 3}))

	getData := NewMsgGetData()
	getData.AddInvVect(NewInvVect(InvTypeBlock, &Hash{4, 5, 6}))

	getBlocks := NewMsgGetBlocks(&Hash{9, 9, 9})
	getBlocks.AddBlockLocatorHash(&Hash{1, 1, 1})

	addr := NewMsgAddr()
	addr.AddAddress(&NetAddress{Timestamp: time.Unix(1000, 0), IP: []byte{8, 8, 8, 8}, Port: 53, Services: SFNodeNetwork})

	tx := NewMsgTx()
	tx.TxIn = append(tx.TxIn, &TxIn{
		PreviousOutPoint: Outpoint{Hash: Hash{7}, Index: 0},
		SignatureScript:  []byte{0x01, 0x02},
		Sequence:         0xffffffff,
	})
	tx.TxOut = append(tx.TxOut, &TxOut{Value: 5000000000, PkScript: []byte{0x76, 0xa9}})

	block := NewMsgBlock(&BlockHeader{
		Version:    1,
		PrevBlock:  Hash{1},
		MerkleRoot: Hash{2},
		Timestamp:  time.Unix(1231006505, 0),
		Bits:       0x1d00ffff,
		Nonce:      2083236893,
	})
	block.AddTransaction(tx)

	return []Message{
		version,
		NewMsgVerAck(),
		NewMsgPing(99),
		inv,
		getData,
		getBlocks,
		NewMsgGetAddr(),
		addr,
		tx,
		block,
	}
}

func TestMessageRoundTrip(t *testing.T) {
	const pver = chaincfg.CurrentProtocolVersion
	for _, msg := range sampleMessages() {
		var buf bytes.Buffer
		if err := msg.BtcEncode(&buf, pver); err != nil {
			t.Fatalf("%s: encode: %v", msg.Command(), err)
		}

		decoded, err := makeEmptyMessage(msg.Command())
		if err != nil {
			t.Fatalf("%s: makeEmptyMessage: %v", msg.Command(), err)
		}
		if err := decoded.BtcDecode(&buf, pver); err != nil {
			t.Fatalf("%s: decode: %v", msg.Command(), err)
		}

		var reencoded bytes.Buffer
		if err := decoded.BtcEncode(&reencoded, pver); err != nil {
			t.Fatalf("%s: re-encode: %v", msg.Command(), err)
		}

		var original bytes.Buffer
		if err := msg.BtcEncode(&original, pver); err != nil {
			t.Fatalf("%s: re-encode original: %v", msg.Command(), err)
		}

		if !bytes.Equal(original.Bytes(), reencoded.Bytes()) {
			t.Errorf("%s: round trip mismatch\noriginal:  %x\nreencoded: %x", msg.Command(), original.Bytes(), reencoded.Bytes())
		}
	}
}

func TestMakeEmptyMessageRejectsUnknownCommand(t *testing.T) {
	if _, err := makeEmptyMessage("notacommand"); err == nil {
		t.Fatal("expected an error for an unrecognized command")
	}
}
