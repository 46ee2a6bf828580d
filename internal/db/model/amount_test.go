package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAmount_BSON(t *testing.T) {
	type doc struct {
		Total Amount `bson:"total"`
	}

	for _, value := range []uint64{0, 1, 150, math.MaxInt64, math.MaxInt64 + 1, math.MaxUint64} {
		raw, err := bson.Marshal(doc{Total: Amount(value)})
		require.NoError(t, err)

		// stored as decimal128 regardless of magnitude
		assert.Equal(t, bson.TypeDecimal128, bson.Raw(raw).Lookup("total").Type)

		var decoded doc
		require.NoError(t, bson.Unmarshal(raw, &decoded))
		assert.Equal(t, value, decoded.Total.Uint64())
	}
}

func TestAmount_DecodeIntegers(t *testing.T) {
	var decoded struct {
		A Amount `bson:"a"`
		B Amount `bson:"b"`
	}
	raw, err := bson.Marshal(bson.M{"a": int32(7), "b": int64(1 << 40)})
	require.NoError(t, err)
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.EqualValues(t, 7, decoded.A)
	assert.EqualValues(t, 1<<40, decoded.B)

	raw, err = bson.Marshal(bson.M{"a": int64(-1)})
	require.NoError(t, err)
	require.Error(t, bson.Unmarshal(raw, &decoded))
}

func TestDecimal128ToBigInt(t *testing.T) {
	d, err := primitive.ParseDecimal128("12E+3")
	require.NoError(t, err)
	bi, err := Decimal128ToBigInt(d)
	require.NoError(t, err)
	assert.Equal(t, "12000", bi.String())

	d, err = primitive.ParseDecimal128("1.5")
	require.NoError(t, err)
	_, err = Decimal128ToBigInt(d)
	require.Error(t, err)
}
