package z85

import "fmt"

// alphabet maps digit values 0-84 to their wire characters.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ.-:+=^!/*?&<>()[]{}@%$#"

const invalid = 0xFF

// decodeTable maps ASCII 32-127 to digit values; invalid marks non-alphabet bytes.
var decodeTable = [96]byte{
	invalid, 68, invalid, 84, 83, 82, 72, invalid, 75, 76, 70, 65, invalid, 63, 62, 69, // 32-47
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 64, invalid, 73, 66, 74, 71, // 48-63
	81, 36, 37, 38, 39, 40, 41, 42, 43, 44, 45, 46, 47, 48, 49, 50, // 64-79
	51, 52, 53, 54, 55, 56, 57, 58, 59, 60, 61, 77, invalid, 78, 67, invalid, // 80-95
	invalid, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 96-111
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 79, invalid, 80, invalid, invalid, // 112-127
}

// InvalidCharError reports a byte outside the Z85 alphabet encountered during decode.
type InvalidCharError struct {
	Char   byte
	Offset int
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("z85: invalid character %q at offset %d", e.Char, e.Offset)
}

// InvalidLengthError reports an encoded payload whose length is not a multiple of 5.
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("z85: payload length %d is not a multiple of 5", e.Length)
}

// EncodedLen returns the encoded length for n input bytes, including the
// trailing padding marker when n is not a multiple of 4.
func EncodedLen(n int) int {
	if n == 0 {
		return 0
	}
	padding := (4 - n%4) % 4
	out := ((n + padding) / 4) * 5
	if padding > 0 {
		out++
	}
	return out
}

// Encode converts bytes to Z85 text. Inputs whose length is not a multiple of
// four are zero-filled to the next 4-byte boundary and the encoding gains a
// single trailing marker digit '1'-'3' recording the fill count, so the exact
// input length survives a round trip.
func Encode(data []byte) string {
	n := len(data)
	if n == 0 {
		return ""
	}

	padding := (4 - n%4) % 4
	out := make([]byte, 0, EncodedLen(n))

	fullBlocks := n / 4
	for i := 0; i < fullBlocks; i++ {
		off := i * 4
		v := uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3])
		out = appendBlock(out, v)
	}

	if padding > 0 {
		var v uint32
		for _, b := range data[fullBlocks*4:] {
			v = v<<8 | uint32(b)
		}
		v <<= 8 * uint(padding)
		out = appendBlock(out, v)
		out = append(out, byte('0'+padding))
	}

	return string(out)
}

// appendBlock writes one 4-byte group as five base-85 digits, most significant first.
func appendBlock(out []byte, v uint32) []byte {
	var block [5]byte
	for j := 4; j >= 0; j-- {
		block[j] = alphabet[v%85]
		v /= 85
	}
	return append(out, block[:]...)
}

// Decode converts Z85 text back to bytes. A trailing '1'-'3' is consumed as
// the padding marker; the remaining payload must be a multiple of five
// characters drawn from the alphabet.
func Decode(encoded string) ([]byte, error) {
	n := len(encoded)
	if n == 0 {
		return nil, nil
	}

	padding := 0
	last := encoded[n-1]
	if last >= '1' && last <= '3' {
		padding = int(last - '0')
		n--
	}

	if n%5 != 0 || (padding > 0 && n == 0) {
		return nil, &InvalidLengthError{Length: n}
	}

	outLen := (n/5)*4 - padding
	out := make([]byte, 0, (n/5)*4)

	for i := 0; i < n; i += 5 {
		var v uint32
		for j := 0; j < 5; j++ {
			c := encoded[i+j]
			if c < 32 || c > 127 {
				return nil, &InvalidCharError{Char: c, Offset: i + j}
			}
			d := decodeTable[c-32]
			if d == invalid {
				return nil, &InvalidCharError{Char: c, Offset: i + j}
			}
			v = v*85 + uint32(d)
		}
		out = append(out, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}

	return out[:outLen], nil
}
