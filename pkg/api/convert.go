package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fastobjectnotation/fon/pkg/fon"
)

// recordToFields renders a record as a typed field list in insertion order.
// Raw payloads are packed first so the JSON view carries Z85 text.
func recordToFields(rec *fon.Record) ([]Field, error) {
	fields := make([]Field, 0, rec.Len())
	for i := 0; i < rec.Len(); i++ {
		key, v := rec.At(i)
		value, err := valueToJSON(v)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{
			Key:   key,
			Tag:   string(byte(v.Kind())),
			Array: v.IsArray(),
			Value: value,
		})
	}
	return fields, nil
}

func valueToJSON(v fon.Value) (interface{}, error) {
	if v.Kind() == fon.KindRaw {
		rd, err := v.Raw()
		if err != nil {
			return nil, err
		}
		return rd.Pack().Encoded(), nil
	}
	if !v.IsArray() {
		switch v.Kind() {
		case fon.KindByte:
			return orErr(v.Byte())
		case fon.KindShort:
			return orErr(v.Short())
		case fon.KindInt:
			return orErr(v.Int())
		case fon.KindUint:
			return orErr(v.Uint())
		case fon.KindLong:
			return orErr(v.Long())
		case fon.KindULong:
			return orErr(v.ULong())
		case fon.KindFloat:
			return orErr(v.Float())
		case fon.KindDouble:
			return orErr(v.Double())
		case fon.KindBool:
			return orErr(v.Bool())
		case fon.KindString:
			return orErr(v.String())
		}
	}
	switch v.Kind() {
	case fon.KindByte:
		return orErr(v.ByteArray())
	case fon.KindShort:
		return orErr(v.ShortArray())
	case fon.KindInt:
		return orErr(v.IntArray())
	case fon.KindUint:
		return orErr(v.UintArray())
	case fon.KindLong:
		return orErr(v.LongArray())
	case fon.KindULong:
		return orErr(v.ULongArray())
	case fon.KindFloat:
		return orErr(v.FloatArray())
	case fon.KindDouble:
		return orErr(v.DoubleArray())
	case fon.KindBool:
		return orErr(v.BoolArray())
	case fon.KindString:
		return orErr(v.StringArray())
	}
	return nil, fon.NewError(fon.ErrUnknownType, "unknown tag %q", string(byte(v.Kind())))
}

func orErr[T any](v T, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// fieldsToRecord builds a record from a typed field list, decoding each JSON
// value according to its tag
func fieldsToRecord(fields []FieldInput) (*fon.Record, error) {
	rec := fon.NewRecord()
	for _, f := range fields {
		v, err := fieldToValue(f)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		if err := rec.Set(f.Key, v); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func fieldToValue(f FieldInput) (fon.Value, error) {
	if len(f.Tag) != 1 || !fon.Kind(f.Tag[0]).Valid() {
		return fon.Value{}, fon.NewError(fon.ErrUnknownType, "unknown tag %q", f.Tag)
	}
	kind := fon.Kind(f.Tag[0])

	if kind == fon.KindRaw {
		if f.Array {
			return fon.Value{}, fon.NewError(fon.ErrKindMismatch, "arrays of raw values are not supported")
		}
		var encoded string
		if err := json.Unmarshal(f.Value, &encoded); err != nil {
			return fon.Value{}, fon.NewError(fon.ErrInvalidFormat, "raw value must be a Z85 string: %v", err)
		}
		return fon.Raw(fon.NewRawDataEncoded(encoded)), nil
	}

	if !f.Array {
		return scalarFromJSON(kind, f.Value)
	}
	return arrayFromJSON(kind, f.Value)
}

func scalarFromJSON(kind fon.Kind, raw json.RawMessage) (fon.Value, error) {
	switch kind {
	case fon.KindBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return fon.Value{}, fon.NewError(fon.ErrInvalidFormat, "boolean value: %v", err)
		}
		return fon.Bool(b), nil
	case fon.KindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fon.Value{}, fon.NewError(fon.ErrInvalidFormat, "string value: %v", err)
		}
		return fon.String(s), nil
	default:
		num, err := decodeNumber(raw)
		if err != nil {
			return fon.Value{}, err
		}
		return numberToValue(kind, num)
	}
}

func arrayFromJSON(kind fon.Kind, raw json.RawMessage) (fon.Value, error) {
	switch kind {
	case fon.KindBool:
		var bs []bool
		if err := json.Unmarshal(raw, &bs); err != nil {
			return fon.Value{}, fon.NewError(fon.ErrInvalidFormat, "boolean array: %v", err)
		}
		return fon.BoolArray(bs), nil
	case fon.KindString:
		var ss []string
		if err := json.Unmarshal(raw, &ss); err != nil {
			return fon.Value{}, fon.NewError(fon.ErrInvalidFormat, "string array: %v", err)
		}
		return fon.StringArray(ss), nil
	default:
		var nums []json.Number
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&nums); err != nil {
			return fon.Value{}, fon.NewError(fon.ErrInvalidFormat, "numeric array: %v", err)
		}
		return numbersToArray(kind, nums)
	}
}

func decodeNumber(raw json.RawMessage) (json.Number, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var num json.Number
	if err := dec.Decode(&num); err != nil {
		return "", fon.NewError(fon.ErrInvalidFormat, "numeric value: %v", err)
	}
	return num, nil
}

func numberToValue(kind fon.Kind, num json.Number) (fon.Value, error) {
	lit := num.String()
	switch kind {
	case fon.KindByte:
		n, err := strconv.ParseUint(lit, 10, 8)
		if err != nil {
			return fon.Value{}, numErr(lit, err)
		}
		return fon.Byte(uint8(n)), nil
	case fon.KindShort:
		n, err := strconv.ParseInt(lit, 10, 16)
		if err != nil {
			return fon.Value{}, numErr(lit, err)
		}
		return fon.Short(int16(n)), nil
	case fon.KindInt:
		n, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			return fon.Value{}, numErr(lit, err)
		}
		return fon.Int(int32(n)), nil
	case fon.KindUint:
		n, err := strconv.ParseUint(lit, 10, 32)
		if err != nil {
			return fon.Value{}, numErr(lit, err)
		}
		return fon.Uint(uint32(n)), nil
	case fon.KindLong:
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return fon.Value{}, numErr(lit, err)
		}
		return fon.Long(n), nil
	case fon.KindULong:
		n, err := strconv.ParseUint(lit, 10, 64)
		if err != nil {
			return fon.Value{}, numErr(lit, err)
		}
		return fon.ULong(n), nil
	case fon.KindFloat:
		n, err := strconv.ParseFloat(lit, 32)
		if err != nil {
			return fon.Value{}, numErr(lit, err)
		}
		return fon.Float(float32(n)), nil
	case fon.KindDouble:
		n, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return fon.Value{}, numErr(lit, err)
		}
		return fon.Double(n), nil
	}
	return fon.Value{}, fon.NewError(fon.ErrUnknownType, "unknown tag %q", string(byte(kind)))
}

func numbersToArray(kind fon.Kind, nums []json.Number) (fon.Value, error) {
	switch kind {
	case fon.KindByte:
		return collect(nums, fon.ByteArray, func(n json.Number) (uint8, error) {
			v, err := strconv.ParseUint(n.String(), 10, 8)
			return uint8(v), err
		})
	case fon.KindShort:
		return collect(nums, fon.ShortArray, func(n json.Number) (int16, error) {
			v, err := strconv.ParseInt(n.String(), 10, 16)
			return int16(v), err
		})
	case fon.KindInt:
		return collect(nums, fon.IntArray, func(n json.Number) (int32, error) {
			v, err := strconv.ParseInt(n.String(), 10, 32)
			return int32(v), err
		})
	case fon.KindUint:
		return collect(nums, fon.UintArray, func(n json.Number) (uint32, error) {
			v, err := strconv.ParseUint(n.String(), 10, 32)
			return uint32(v), err
		})
	case fon.KindLong:
		return collect(nums, fon.LongArray, func(n json.Number) (int64, error) {
			return strconv.ParseInt(n.String(), 10, 64)
		})
	case fon.KindULong:
		return collect(nums, fon.ULongArray, func(n json.Number) (uint64, error) {
			return strconv.ParseUint(n.String(), 10, 64)
		})
	case fon.KindFloat:
		return collect(nums, fon.FloatArray, func(n json.Number) (float32, error) {
			v, err := strconv.ParseFloat(n.String(), 32)
			return float32(v), err
		})
	case fon.KindDouble:
		return collect(nums, fon.DoubleArray, func(n json.Number) (float64, error) {
			return strconv.ParseFloat(n.String(), 64)
		})
	}
	return fon.Value{}, fon.NewError(fon.ErrUnknownType, "unknown tag %q", string(byte(kind)))
}

func collect[T any](nums []json.Number, wrap func([]T) fon.Value, parse func(json.Number) (T, error)) (fon.Value, error) {
	out := make([]T, len(nums))
	for i, n := range nums {
		v, err := parse(n)
		if err != nil {
			return fon.Value{}, numErr(n.String(), err)
		}
		out[i] = v
	}
	return wrap(out), nil
}

func numErr(lit string, err error) *fon.Error {
	return fon.NewError(fon.ErrNumericParse, "cannot parse %q: %v", lit, err)
}
