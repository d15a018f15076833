package idcodec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const sampleHex = "5f1d7c2e9b3a4c6d8e0f1a2b"

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(sampleHex))
	assert.True(t, IsValid(bson.NewObjectID().Hex()))
	assert.False(t, IsValid("id_value"))
	assert.False(t, IsValid("5f1d7c2e9b3a4c6d8e0f1a2"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("zz1d7c2e9b3a4c6d8e0f1a2b"))
}

func TestConvert_String(t *testing.T) {
	converted := Convert(sampleHex)
	require.IsType(t, bson.ObjectID{}, converted)
	assert.Equal(t, sampleHex, converted.(bson.ObjectID).Hex())

	assert.Equal(t, "value", Convert("value"))
}

func TestConvert_BigInt(t *testing.T) {
	assert.Equal(t, "1", Convert(big.NewInt(1)))

	id, err := bson.ObjectIDFromHex(sampleHex)
	require.NoError(t, err)

	i, ok := new(big.Int).SetString(sampleHex, 16)
	require.True(t, ok)

	assert.Equal(t, id, Convert(i))
}

func TestConvert_PassThrough(t *testing.T) {
	id := bson.NewObjectID()

	assert.Equal(t, id, Convert(id))
	assert.Equal(t, 5, Convert(5))
	assert.Nil(t, Convert(nil))
}

func TestFromBigInt_Nil(t *testing.T) {
	assert.Nil(t, FromBigInt(nil))
}
