package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		in    string
		field string
		dir   Direction
	}{
		{"judul-asc", "judul", Asc},
		{"qty-desc", "qty", Desc},
		{"harga-DESC", "harga", Desc},
		{"judul", "judul", Asc},
		{"lokasi-rak", "lokasi-rak", Asc},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s := ParseSort(tt.in)
			require.NotNil(t, s)
			assert.Equal(t, tt.field, s.Field)
			assert.Equal(t, tt.dir, s.Direction)
		})
	}

	assert.Nil(t, ParseSort("  "))
}

func TestSort_String(t *testing.T) {
	assert.Equal(t, "qty-desc", ParseSort("qty-desc").String())
	assert.Equal(t, "judul-asc", ParseSort("judul").String())

	var s *Sort
	assert.Equal(t, "", s.String())
}

func TestSpec_WhereDoesNotAlias(t *testing.T) {
	base := Spec{}.Where("kategori", "MK Wajib")
	a := base.Where("upbjj", "Jakarta")
	b := base.Where("upbjj", "Surabaya")

	assert.Len(t, base.Equals, 1)
	assert.Equal(t, "Jakarta", a.Equals[1].Value)
	assert.Equal(t, "Surabaya", b.Equals[1].Value)
}
