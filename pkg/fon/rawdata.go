package fon

import (
	"bytes"

	"github.com/fastobjectnotation/fon/pkg/z85"
)

type rawState uint8

const (
	rawEmpty rawState = iota
	rawPacked
	rawUnpacked
)

// RawData is an opaque binary payload. At any point it is in exactly one of
// three states: empty, packed (holding Z85 text), or unpacked (holding raw
// bytes). Pack and Unpack move between the two populated states and are
// no-ops when already there.
type RawData struct {
	state   rawState
	data    []byte
	encoded string
}

// NewRawData builds an unpacked payload from raw bytes. Empty input yields
// the empty state.
func NewRawData(data []byte) *RawData {
	if len(data) == 0 {
		return &RawData{}
	}
	return &RawData{state: rawUnpacked, data: data}
}

// NewRawDataEncoded builds a packed payload from Z85 text. The text is not
// validated until Unpack.
func NewRawDataEncoded(encoded string) *RawData {
	if encoded == "" {
		return &RawData{}
	}
	return &RawData{state: rawPacked, encoded: encoded}
}

// IsPacked reports whether the payload currently holds encoded text.
func (r *RawData) IsPacked() bool { return r.state == rawPacked }

// IsUnpacked reports whether the payload currently holds raw bytes.
func (r *RawData) IsUnpacked() bool { return r.state == rawUnpacked }

// IsEmpty reports whether the payload holds nothing.
func (r *RawData) IsEmpty() bool { return r.state == rawEmpty }

// Bytes returns the raw bytes, or nil unless unpacked.
func (r *RawData) Bytes() []byte {
	if r.state != rawUnpacked {
		return nil
	}
	return r.data
}

// Encoded returns the Z85 text, or "" unless packed.
func (r *RawData) Encoded() string {
	if r.state != rawPacked {
		return ""
	}
	return r.encoded
}

// Pack converts raw bytes to Z85 text. Already-packed and empty payloads are
// left as they are.
func (r *RawData) Pack() *RawData {
	if r.state != rawUnpacked {
		return r
	}
	r.encoded = z85.Encode(r.data)
	r.data = nil
	r.state = rawPacked
	return r
}

// Unpack converts Z85 text back to raw bytes. Already-unpacked and empty
// payloads are left as they are. The payload is unchanged on error.
func (r *RawData) Unpack() error {
	if r.state != rawPacked {
		return nil
	}
	data, err := z85.Decode(r.encoded)
	if err != nil {
		return newError(ErrInvalidZ85, "%v", err)
	}
	r.data = data
	r.encoded = ""
	r.state = rawUnpacked
	return nil
}

// equalContent compares two payloads by their decoded bytes regardless of
// packing state. Undecodable text never equals anything.
func (r *RawData) equalContent(o *RawData) bool {
	if r == nil || o == nil {
		return r == o
	}
	a, aok := r.contentBytes()
	b, bok := o.contentBytes()
	if !aok || !bok {
		return false
	}
	return bytes.Equal(a, b)
}

func (r *RawData) contentBytes() ([]byte, bool) {
	switch r.state {
	case rawEmpty:
		return nil, true
	case rawUnpacked:
		return r.data, true
	default:
		data, err := z85.Decode(r.encoded)
		if err != nil {
			return nil, false
		}
		return data, true
	}
}
