package fon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindByte, KindShort, KindInt, KindUint, KindLong,
		KindULong, KindFloat, KindDouble, KindBool, KindString, KindRaw} {
		assert.True(t, k.Valid(), "kind %c", byte(k))
	}
	assert.False(t, Kind('x').Valid())
	assert.False(t, Kind(0).Valid())
	assert.Equal(t, "invalid", Kind('x').String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "raw", KindRaw.String())
}

func TestValueGetterMismatch(t *testing.T) {
	v := Int(7)

	_, err := v.String()
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindMismatch, kind)

	_, err = v.IntArray()
	require.Error(t, err)

	arr := IntArray([]int32{1})
	_, err = arr.Int()
	require.Error(t, err)

	n, err := arr.IntArray()
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, n)
}

func TestValueEqualScalars(t *testing.T) {
	assert.True(t, Int(5).Equal(Int(5)))
	assert.False(t, Int(5).Equal(Int(6)))
	assert.False(t, Int(5).Equal(Long(5)), "kinds differ")
	assert.False(t, Int(5).Equal(IntArray([]int32{5})), "shape differs")
	assert.True(t, String("a").Equal(String("a")))
	assert.True(t, Bool(false).Equal(Bool(false)))
	assert.True(t, Double(0.5).Equal(Double(0.5)))
}

func TestValueEqualArrays(t *testing.T) {
	assert.True(t, IntArray([]int32{1, 2}).Equal(IntArray([]int32{1, 2})))
	assert.False(t, IntArray([]int32{1, 2}).Equal(IntArray([]int32{2, 1})))
	assert.False(t, IntArray([]int32{1}).Equal(IntArray([]int32{1, 2})))
	assert.True(t, StringArray(nil).Equal(StringArray([]string{})))
	assert.True(t, BoolArray([]bool{true}).Equal(BoolArray([]bool{true})))
}

func TestValueEqualRaw(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	a := Raw(NewRawData(payload))
	b := Raw(NewRawData(payload).Pack())
	assert.True(t, a.Equal(b))

	c := Raw(NewRawData([]byte{9}))
	assert.False(t, a.Equal(c))
}

func TestValueKindShape(t *testing.T) {
	assert.Equal(t, KindFloat, Float(1).Kind())
	assert.False(t, Float(1).IsArray())
	assert.Equal(t, KindFloat, FloatArray(nil).Kind())
	assert.True(t, FloatArray(nil).IsArray())
}
