package fon

import "strconv"

const hexUpper = "0123456789ABCDEF"

// SerializeRecord emits one record as a single line (no trailing newline).
// Fields appear in insertion order as key=T:value joined by commas; the
// output parses back to an equal record.
func SerializeRecord(r *Record) (string, error) {
	if r == nil || r.Len() == 0 {
		return "", nil
	}

	out := make([]byte, 0, 64*r.Len())
	for i, key := range r.keys {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, key...)
		out = append(out, '=', byte(r.vals[i].kind), ':')

		var err error
		out, err = appendValue(out, r.vals[i])
		if err != nil {
			return "", err
		}
	}
	return string(out), nil
}

func appendValue(out []byte, v Value) ([]byte, error) {
	if !v.kind.Valid() {
		return nil, newError(ErrUnknownType, "cannot serialize invalid value")
	}
	if v.array {
		return appendArray(out, v)
	}

	switch v.kind {
	case KindByte:
		return strconv.AppendUint(out, uint64(v.data.(uint8)), 10), nil
	case KindShort:
		return strconv.AppendInt(out, int64(v.data.(int16)), 10), nil
	case KindInt:
		return strconv.AppendInt(out, int64(v.data.(int32)), 10), nil
	case KindUint:
		return strconv.AppendUint(out, uint64(v.data.(uint32)), 10), nil
	case KindLong:
		return strconv.AppendInt(out, v.data.(int64), 10), nil
	case KindULong:
		return strconv.AppendUint(out, v.data.(uint64), 10), nil
	case KindFloat:
		return strconv.AppendFloat(out, float64(v.data.(float32)), 'g', -1, 32), nil
	case KindDouble:
		return strconv.AppendFloat(out, v.data.(float64), 'g', -1, 64), nil
	case KindBool:
		return appendBool(out, v.data.(bool)), nil
	case KindString:
		return appendQuoted(out, v.data.(string)), nil
	case KindRaw:
		rd := v.data.(*RawData)
		out = append(out, '"')
		if rd != nil {
			out = append(out, rd.Pack().Encoded()...)
		}
		return append(out, '"'), nil
	}
	return nil, newError(ErrUnknownType, "cannot serialize kind %q", string(byte(v.kind)))
}

func appendArray(out []byte, v Value) ([]byte, error) {
	if v.kind == KindRaw {
		return nil, newError(ErrKindMismatch, "arrays of raw values are not supported")
	}

	out = append(out, '[')
	switch v.kind {
	case KindByte:
		for i, e := range v.data.([]uint8) {
			if i > 0 {
				out = append(out, ',')
			}
			out = strconv.AppendUint(out, uint64(e), 10)
		}
	case KindShort:
		for i, e := range v.data.([]int16) {
			if i > 0 {
				out = append(out, ',')
			}
			out = strconv.AppendInt(out, int64(e), 10)
		}
	case KindInt:
		for i, e := range v.data.([]int32) {
			if i > 0 {
				out = append(out, ',')
			}
			out = strconv.AppendInt(out, int64(e), 10)
		}
	case KindUint:
		for i, e := range v.data.([]uint32) {
			if i > 0 {
				out = append(out, ',')
			}
			out = strconv.AppendUint(out, uint64(e), 10)
		}
	case KindLong:
		for i, e := range v.data.([]int64) {
			if i > 0 {
				out = append(out, ',')
			}
			out = strconv.AppendInt(out, e, 10)
		}
	case KindULong:
		for i, e := range v.data.([]uint64) {
			if i > 0 {
				out = append(out, ',')
			}
			out = strconv.AppendUint(out, e, 10)
		}
	case KindFloat:
		for i, e := range v.data.([]float32) {
			if i > 0 {
				out = append(out, ',')
			}
			out = strconv.AppendFloat(out, float64(e), 'g', -1, 32)
		}
	case KindDouble:
		for i, e := range v.data.([]float64) {
			if i > 0 {
				out = append(out, ',')
			}
			out = strconv.AppendFloat(out, e, 'g', -1, 64)
		}
	case KindBool:
		for i, e := range v.data.([]bool) {
			if i > 0 {
				out = append(out, ',')
			}
			out = appendBool(out, e)
		}
	case KindString:
		for i, e := range v.data.([]string) {
			if i > 0 {
				out = append(out, ',')
			}
			out = appendQuoted(out, e)
		}
	}
	return append(out, ']'), nil
}

func appendBool(out []byte, v bool) []byte {
	if v {
		return append(out, '1')
	}
	return append(out, '0')
}

// appendQuoted emits a double-quoted string with the wire escape table:
// " \ LF CR TAB BS FF get two-byte escapes, any other byte below 0x20 is
// \u followed by four uppercase hex digits, everything else passes through.
func appendQuoted(out []byte, s string) []byte {
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		case '\b':
			out = append(out, '\\', 'b')
		case '\f':
			out = append(out, '\\', 'f')
		default:
			if c < 0x20 {
				out = append(out, '\\', 'u', '0', '0', hexUpper[c>>4], hexUpper[c&0xF])
			} else {
				out = append(out, c)
			}
		}
	}
	return append(out, '"')
}
