package model

import (
	"fmt"
	"math"
	"math/big"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Amount is a uint64 token quantity. BSON has no unsigned 64-bit type, so it
// is stored as Decimal128, which keeps the full range and still supports
// $sum in aggregations.
type Amount uint64

func (a Amount) Uint64() uint64 {
	return uint64(a)
}

func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d, ok := primitive.ParseDecimal128FromBigInt(new(big.Int).SetUint64(uint64(a)), 0)
	if !ok {
		return 0, nil, fmt.Errorf("amount %d does not fit into decimal128", uint64(a))
	}
	return bson.MarshalValue(d)
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Decimal128:
		d, ok := raw.Decimal128OK()
		if !ok {
			return fmt.Errorf("malformed decimal128 amount")
		}
		bi, err := Decimal128ToBigInt(d)
		if err != nil {
			return err
		}
		if bi.Sign() < 0 || !bi.IsUint64() {
			return fmt.Errorf("amount %s out of uint64 range", bi.String())
		}
		*a = Amount(bi.Uint64())
	case bsontype.Int64:
		v := raw.Int64()
		if v < 0 {
			return fmt.Errorf("negative amount %d", v)
		}
		*a = Amount(v)
	case bsontype.Int32:
		v := raw.Int32()
		if v < 0 {
			return fmt.Errorf("negative amount %d", v)
		}
		*a = Amount(v)
	default:
		return fmt.Errorf("cannot decode %s into amount", t)
	}
	return nil
}

// Decimal128ToBigInt converts an integral Decimal128 into a big.Int.
func Decimal128ToBigInt(d primitive.Decimal128) (*big.Int, error) {
	bi, exp, err := d.BigInt()
	if err != nil {
		return nil, fmt.Errorf("invalid decimal128 %s: %w", d.String(), err)
	}
	if exp == 0 {
		return bi, nil
	}
	if exp < 0 || exp > math.MaxInt32 {
		return nil, fmt.Errorf("decimal128 %s is not an integer", d.String())
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
	return bi.Mul(bi, scale), nil
}
