package fon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRecord(t *testing.T, fields ...func(*Record) error) *Record {
	t.Helper()
	rec := NewRecord()
	for _, f := range fields {
		require.NoError(t, f(rec))
	}
	return rec
}

func set(key string, v Value) func(*Record) error {
	return func(r *Record) error { return r.Set(key, v) }
}

func TestSerializeRecordMixedScalars(t *testing.T) {
	rec := buildRecord(t,
		set("id", Int(42)),
		set("name", String("test")),
		set("price", Float(99.99)),
		set("active", Bool(true)),
	)

	line, err := SerializeRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, `id=i:42,name=s:"test",price=f:99.99,active=b:1`, line)
}

func TestSerializeRecordArrays(t *testing.T) {
	rec := buildRecord(t,
		set("numbers", IntArray([]int32{1, 2, 3, 4, 5})),
		set("names", StringArray([]string{"Alice", "Bob", "Charlie"})),
	)

	line, err := SerializeRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, `numbers=i:[1,2,3,4,5],names=s:["Alice","Bob","Charlie"]`, line)
}

func TestSerializeRecordEmpty(t *testing.T) {
	line, err := SerializeRecord(NewRecord())
	require.NoError(t, err)
	assert.Equal(t, "", line)

	line, err = SerializeRecord(nil)
	require.NoError(t, err)
	assert.Equal(t, "", line)
}

func TestSerializeRecordStringEscapes(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello", want: `"hello"`},
		{name: "quote", in: `a"b`, want: `"a\"b"`},
		{name: "backslash", in: `a\b`, want: `"a\\b"`},
		{name: "newline", in: "a\nb", want: `"a\nb"`},
		{name: "carriage return", in: "a\rb", want: `"a\rb"`},
		{name: "tab", in: "a\tb", want: `"a\tb"`},
		{name: "backspace", in: "a\bb", want: `"a\bb"`},
		{name: "form feed", in: "a\fb", want: `"a\fb"`},
		{name: "control byte", in: "a\x01b", want: `"a\u0001b"`},
		{name: "control byte upper hex", in: "a\x1fb", want: `"a\u001Fb"`},
		{name: "solidus unescaped", in: "a/b", want: `"a/b"`},
		{name: "utf8 passthrough", in: "héllo 🎯", want: `"héllo 🎯"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := buildRecord(t, set("v", String(tc.in)))
			line, err := SerializeRecord(rec)
			require.NoError(t, err)
			assert.Equal(t, "v=s:"+tc.want, line)
		})
	}
}

func TestSerializeRecordBoolForms(t *testing.T) {
	rec := buildRecord(t,
		set("yes", Bool(true)),
		set("no", Bool(false)),
		set("flags", BoolArray([]bool{true, false, true})),
	)
	line, err := SerializeRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "yes=b:1,no=b:0,flags=b:[1,0,1]", line)
}

func TestSerializeRecordRaw(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	rec := buildRecord(t, set("blob", Raw(NewRawData(payload))))

	line, err := SerializeRecord(rec)
	require.NoError(t, err)

	// 7 bytes pack to 10 Z85 chars plus a padding marker.
	require.Len(t, line, len(`blob=r:""`)+11)
	assert.Equal(t, byte('1'), line[len(line)-2])

	rec2, err := ParseLine([]byte(line))
	require.NoError(t, err)
	v, ok := rec2.Get("blob")
	require.True(t, ok)
	rd, err := v.Raw()
	require.NoError(t, err)
	require.NoError(t, rd.Unpack())
	assert.Equal(t, payload, rd.Bytes())
}

func TestSerializeRecordEmptyRaw(t *testing.T) {
	rec := buildRecord(t, set("blob", Raw(NewRawData(nil))))
	line, err := SerializeRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, `blob=r:""`, line)
}

func TestSerializeRecordRawArrayRejected(t *testing.T) {
	rec := NewRecord()
	rec.keys = append(rec.keys, "a")
	rec.vals = append(rec.vals, Value{kind: KindRaw, array: true, data: []*RawData{}})
	rec.idx["a"] = 0

	_, err := SerializeRecord(rec)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindMismatch, kind)
}

func TestSerializeRecordFloatFormatting(t *testing.T) {
	testCases := []struct {
		name string
		v    Value
		want string
	}{
		{name: "float simple", v: Float(1.5), want: "f:1.5"},
		{name: "float integral", v: Float(3), want: "f:3"},
		{name: "float negative", v: Float(-2.25), want: "f:-2.25"},
		{name: "double simple", v: Double(0.1), want: "d:0.1"},
		{name: "double large", v: Double(1e300), want: "d:1e+300"},
		{name: "double tiny", v: Double(5e-324), want: "d:5e-324"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := buildRecord(t, set("v", tc.v))
			line, err := SerializeRecord(rec)
			require.NoError(t, err)
			assert.Equal(t, "v="+tc.want, line)

			back, err := ParseLine([]byte(line))
			require.NoError(t, err)
			assert.True(t, rec.Equal(back))
		})
	}
}

func TestSerializeRecordPreservesInsertionOrder(t *testing.T) {
	rec := buildRecord(t,
		set("zzz", Int(1)),
		set("aaa", Int(2)),
		set("mmm", Int(3)),
	)
	line, err := SerializeRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "zzz=i:1,aaa=i:2,mmm=i:3", line)
}

func TestSerializeRecordAllArrayKinds(t *testing.T) {
	rec := buildRecord(t,
		set("e", ByteArray([]uint8{0, 128, 255})),
		set("t", ShortArray([]int16{-1, 0, 1})),
		set("u", UintArray([]uint32{0, 4294967295})),
		set("l", LongArray([]int64{-5, 5})),
		set("g", ULongArray([]uint64{18446744073709551615})),
		set("f", FloatArray([]float32{0.5, -0.5})),
		set("d", DoubleArray([]float64{1.25})),
	)
	line, err := SerializeRecord(rec)
	require.NoError(t, err)
	assert.Equal(t,
		"e=e:[0,128,255],t=t:[-1,0,1],u=u:[0,4294967295],l=l:[-5,5],"+
			"g=g:[18446744073709551615],f=f:[0.5,-0.5],d=d:[1.25]",
		line)
}
