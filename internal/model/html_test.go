package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Edisi 2024", "Edisi 2024"},
		{"inline tags", "<i>Edisi</i> <strong>2024</strong>", "Edisi 2024"},
		{"block tags", "<p>Baris satu</p><p>Baris   dua</p>", "Baris satu\nBaris dua"},
		{"line break", "satu<br>dua", "satu\ndua"},
		{"entities", "A &amp; B", "A & B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}
