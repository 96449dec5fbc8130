package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_Get(t *testing.T) {
	f := Fields{"Judul": "Manajemen"}

	v, ok := f.Get("judul")
	require.True(t, ok)
	assert.Equal(t, "Manajemen", v)

	_, ok = f.Get("kode")
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "65000", Text(65000.0))
	assert.Equal(t, "12.5", Text(12.5))
	assert.Equal(t, "7", Text(7))
	assert.Equal(t, "Jakarta", Text("Jakarta"))
}

func TestNumber(t *testing.T) {
	n, ok := Number(5)
	assert.True(t, ok)
	assert.Equal(t, 5.0, n)

	_, ok = Number("5")
	assert.False(t, ok, "strings are not coerced")
}

func TestCalculateHash(t *testing.T) {
	a := CalculateHash(Fields{"kode": "EKMA4116", "qty": 5.0})
	b := CalculateHash(Fields{"qty": 5.0, "kode": "EKMA4116"})
	assert.Equal(t, a, b, "hash is independent of map order")
	assert.Len(t, a, 12)

	c := CalculateHash(Fields{"kode": "EKMA4116", "qty": 6.0})
	assert.NotEqual(t, a, c)
}

func TestHashPayload(t *testing.T) {
	payload, err := json.Marshal(map[string]any{"kode": "EKMA4116", "qty": 5})
	require.NoError(t, err)

	h, err := HashPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, CalculateHash(Fields{"kode": "EKMA4116", "qty": 5.0}), h)

	_, err = HashPayload([]byte("not json"))
	assert.Error(t, err)
}
