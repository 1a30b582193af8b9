package fon

// Kind is the single-character wire tag of a scalar type.
type Kind byte

const (
	KindByte   Kind = 'e' // uint8
	KindShort  Kind = 't' // int16
	KindInt    Kind = 'i' // int32
	KindUint   Kind = 'u' // uint32
	KindLong   Kind = 'l' // int64
	KindULong  Kind = 'g' // uint64
	KindFloat  Kind = 'f' // float32
	KindDouble Kind = 'd' // float64
	KindBool   Kind = 'b'
	KindString Kind = 's'
	KindRaw    Kind = 'r'
)

// Valid reports whether k is one of the eleven scalar kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindByte, KindShort, KindInt, KindUint, KindLong, KindULong,
		KindFloat, KindDouble, KindBool, KindString, KindRaw:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindLong:
		return "long"
	case KindULong:
		return "ulong"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindRaw:
		return "raw"
	default:
		return "invalid"
	}
}

// Value is a tagged union holding one scalar or one homogeneous array of a
// scalar kind. The zero Value is invalid; build values with the constructors.
type Value struct {
	kind  Kind
	array bool
	data  interface{}
}

// Kind returns the scalar kind of the value (the element kind for arrays).
func (v Value) Kind() Kind { return v.kind }

// IsArray reports whether the value is an array.
func (v Value) IsArray() bool { return v.array }

// Byte builds a uint8 value.
func Byte(v uint8) Value { return Value{kind: KindByte, data: v} }

// Short builds an int16 value.
func Short(v int16) Value { return Value{kind: KindShort, data: v} }

// Int builds an int32 value.
func Int(v int32) Value { return Value{kind: KindInt, data: v} }

// Uint builds a uint32 value.
func Uint(v uint32) Value { return Value{kind: KindUint, data: v} }

// Long builds an int64 value.
func Long(v int64) Value { return Value{kind: KindLong, data: v} }

// ULong builds a uint64 value.
func ULong(v uint64) Value { return Value{kind: KindULong, data: v} }

// Float builds a float32 value.
func Float(v float32) Value { return Value{kind: KindFloat, data: v} }

// Double builds a float64 value.
func Double(v float64) Value { return Value{kind: KindDouble, data: v} }

// Bool builds a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, data: v} }

// String builds a string value.
func String(v string) Value { return Value{kind: KindString, data: v} }

// Raw builds a raw binary value. Arrays of raw values are not representable
// in the format.
func Raw(v *RawData) Value { return Value{kind: KindRaw, data: v} }

// ByteArray builds a uint8 array value.
func ByteArray(v []uint8) Value { return Value{kind: KindByte, array: true, data: v} }

// ShortArray builds an int16 array value.
func ShortArray(v []int16) Value { return Value{kind: KindShort, array: true, data: v} }

// IntArray builds an int32 array value.
func IntArray(v []int32) Value { return Value{kind: KindInt, array: true, data: v} }

// UintArray builds a uint32 array value.
func UintArray(v []uint32) Value { return Value{kind: KindUint, array: true, data: v} }

// LongArray builds an int64 array value.
func LongArray(v []int64) Value { return Value{kind: KindLong, array: true, data: v} }

// ULongArray builds a uint64 array value.
func ULongArray(v []uint64) Value { return Value{kind: KindULong, array: true, data: v} }

// FloatArray builds a float32 array value.
func FloatArray(v []float32) Value { return Value{kind: KindFloat, array: true, data: v} }

// DoubleArray builds a float64 array value.
func DoubleArray(v []float64) Value { return Value{kind: KindDouble, array: true, data: v} }

// BoolArray builds a boolean array value.
func BoolArray(v []bool) Value { return Value{kind: KindBool, array: true, data: v} }

// StringArray builds a string array value.
func StringArray(v []string) Value { return Value{kind: KindString, array: true, data: v} }

func (v Value) mismatch(want Kind, wantArray bool) *Error {
	shape := "scalar"
	if wantArray {
		shape = "array"
	}
	got := "scalar"
	if v.array {
		got = "array"
	}
	return newError(ErrKindMismatch, "want %s %s, have %s %s", want, shape, v.kind, got)
}

// Byte returns the uint8 payload, or a kind-mismatch error.
func (v Value) Byte() (uint8, error) {
	if v.kind != KindByte || v.array {
		return 0, v.mismatch(KindByte, false)
	}
	return v.data.(uint8), nil
}

// Short returns the int16 payload, or a kind-mismatch error.
func (v Value) Short() (int16, error) {
	if v.kind != KindShort || v.array {
		return 0, v.mismatch(KindShort, false)
	}
	return v.data.(int16), nil
}

// Int returns the int32 payload, or a kind-mismatch error.
func (v Value) Int() (int32, error) {
	if v.kind != KindInt || v.array {
		return 0, v.mismatch(KindInt, false)
	}
	return v.data.(int32), nil
}

// Uint returns the uint32 payload, or a kind-mismatch error.
func (v Value) Uint() (uint32, error) {
	if v.kind != KindUint || v.array {
		return 0, v.mismatch(KindUint, false)
	}
	return v.data.(uint32), nil
}

// Long returns the int64 payload, or a kind-mismatch error.
func (v Value) Long() (int64, error) {
	if v.kind != KindLong || v.array {
		return 0, v.mismatch(KindLong, false)
	}
	return v.data.(int64), nil
}

// ULong returns the uint64 payload, or a kind-mismatch error.
func (v Value) ULong() (uint64, error) {
	if v.kind != KindULong || v.array {
		return 0, v.mismatch(KindULong, false)
	}
	return v.data.(uint64), nil
}

// Float returns the float32 payload, or a kind-mismatch error.
func (v Value) Float() (float32, error) {
	if v.kind != KindFloat || v.array {
		return 0, v.mismatch(KindFloat, false)
	}
	return v.data.(float32), nil
}

// Double returns the float64 payload, or a kind-mismatch error.
func (v Value) Double() (float64, error) {
	if v.kind != KindDouble || v.array {
		return 0, v.mismatch(KindDouble, false)
	}
	return v.data.(float64), nil
}

// Bool returns the boolean payload, or a kind-mismatch error.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool || v.array {
		return false, v.mismatch(KindBool, false)
	}
	return v.data.(bool), nil
}

// String returns the string payload, or a kind-mismatch error.
func (v Value) String() (string, error) {
	if v.kind != KindString || v.array {
		return "", v.mismatch(KindString, false)
	}
	return v.data.(string), nil
}

// Raw returns the raw binary payload, or a kind-mismatch error.
func (v Value) Raw() (*RawData, error) {
	if v.kind != KindRaw || v.array {
		return nil, v.mismatch(KindRaw, false)
	}
	return v.data.(*RawData), nil
}

// ByteArray returns the uint8 array payload, or a kind-mismatch error.
func (v Value) ByteArray() ([]uint8, error) {
	if v.kind != KindByte || !v.array {
		return nil, v.mismatch(KindByte, true)
	}
	return v.data.([]uint8), nil
}

// ShortArray returns the int16 array payload, or a kind-mismatch error.
func (v Value) ShortArray() ([]int16, error) {
	if v.kind != KindShort || !v.array {
		return nil, v.mismatch(KindShort, true)
	}
	return v.data.([]int16), nil
}

// IntArray returns the int32 array payload, or a kind-mismatch error.
func (v Value) IntArray() ([]int32, error) {
	if v.kind != KindInt || !v.array {
		return nil, v.mismatch(KindInt, true)
	}
	return v.data.([]int32), nil
}

// UintArray returns the uint32 array payload, or a kind-mismatch error.
func (v Value) UintArray() ([]uint32, error) {
	if v.kind != KindUint || !v.array {
		return nil, v.mismatch(KindUint, true)
	}
	return v.data.([]uint32), nil
}

// LongArray returns the int64 array payload, or a kind-mismatch error.
func (v Value) LongArray() ([]int64, error) {
	if v.kind != KindLong || !v.array {
		return nil, v.mismatch(KindLong, true)
	}
	return v.data.([]int64), nil
}

// ULongArray returns the uint64 array payload, or a kind-mismatch error.
func (v Value) ULongArray() ([]uint64, error) {
	if v.kind != KindULong || !v.array {
		return nil, v.mismatch(KindULong, true)
	}
	return v.data.([]uint64), nil
}

// FloatArray returns the float32 array payload, or a kind-mismatch error.
func (v Value) FloatArray() ([]float32, error) {
	if v.kind != KindFloat || !v.array {
		return nil, v.mismatch(KindFloat, true)
	}
	return v.data.([]float32), nil
}

// DoubleArray returns the float64 array payload, or a kind-mismatch error.
func (v Value) DoubleArray() ([]float64, error) {
	if v.kind != KindDouble || !v.array {
		return nil, v.mismatch(KindDouble, true)
	}
	return v.data.([]float64), nil
}

// BoolArray returns the boolean array payload, or a kind-mismatch error.
func (v Value) BoolArray() ([]bool, error) {
	if v.kind != KindBool || !v.array {
		return nil, v.mismatch(KindBool, true)
	}
	return v.data.([]bool), nil
}

// StringArray returns the string array payload, or a kind-mismatch error.
func (v Value) StringArray() ([]string, error) {
	if v.kind != KindString || !v.array {
		return nil, v.mismatch(KindString, true)
	}
	return v.data.([]string), nil
}

// Equal reports whether two values hold the same kind, shape and payload.
// Raw payloads compare by decoded bytes, so a packed blob equals its
// unpacked twin.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.array != o.array {
		return false
	}
	if v.kind == KindRaw {
		a, _ := v.Raw()
		b, _ := o.Raw()
		return a.equalContent(b)
	}
	if !v.array {
		return v.data == o.data
	}
	switch v.kind {
	case KindByte:
		return equalSlices(v.data.([]uint8), o.data.([]uint8))
	case KindShort:
		return equalSlices(v.data.([]int16), o.data.([]int16))
	case KindInt:
		return equalSlices(v.data.([]int32), o.data.([]int32))
	case KindUint:
		return equalSlices(v.data.([]uint32), o.data.([]uint32))
	case KindLong:
		return equalSlices(v.data.([]int64), o.data.([]int64))
	case KindULong:
		return equalSlices(v.data.([]uint64), o.data.([]uint64))
	case KindFloat:
		return equalSlices(v.data.([]float32), o.data.([]float32))
	case KindDouble:
		return equalSlices(v.data.([]float64), o.data.([]float64))
	case KindBool:
		return equalSlices(v.data.([]bool), o.data.([]bool))
	case KindString:
		return equalSlices(v.data.([]string), o.data.([]string))
	}
	return false
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
