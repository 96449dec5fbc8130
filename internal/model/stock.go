package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Course code format: 4 uppercase letters + 4 digits (e.g. EKMA4116)
var courseCodeRegex = regexp.MustCompile(`^[A-Z]{4}\d{4}$`)

// Stock status texts shown next to each stock entry
const (
	StatusEmpty     = "Habis"
	StatusLow       = "Stok Rendah"
	StatusAvailable = "Tersedia"
)

// Stock is one teaching-material stock entry, keyed by course code.
type Stock struct {
	Kode        string  `json:"kode" yaml:"kode"`
	Judul       string  `json:"judul" yaml:"judul"`
	Kategori    string  `json:"kategori" yaml:"kategori"`
	Upbjj       string  `json:"upbjj" yaml:"upbjj"`
	LokasiRak   string  `json:"lokasiRak" yaml:"lokasiRak"`
	Harga       float64 `json:"harga" yaml:"harga"`
	Qty         int     `json:"qty" yaml:"qty"`
	Safety      int     `json:"safety" yaml:"safety"`
	CatatanHTML string  `json:"catatanHTML,omitempty" yaml:"catatanHTML,omitempty"`
}

// Key returns the course code.
func (s Stock) Key() string {
	return s.Kode
}

// Field returns the value of a stock attribute by JSON name.
func (s Stock) Field(name string) (any, bool) {
	switch strings.ToLower(name) {
	case "kode":
		return s.Kode, true
	case "judul":
		return s.Judul, true
	case "kategori":
		return s.Kategori, true
	case "upbjj":
		return s.Upbjj, true
	case "lokasirak":
		return s.LokasiRak, true
	case "harga":
		return s.Harga, true
	case "qty":
		return s.Qty, true
	case "safety":
		return s.Safety, true
	case "catatanhtml":
		return s.CatatanHTML, true
	}
	return nil, false
}

// Validate checks the stock form rules. The first failing rule wins.
func (s Stock) Validate() error {
	if strings.TrimSpace(s.Kode) == "" {
		return invalid("kode", "is required")
	}
	if strings.TrimSpace(s.Judul) == "" {
		return invalid("judul", "is required")
	}
	if strings.TrimSpace(s.Kategori) == "" {
		return invalid("kategori", "is required")
	}
	if strings.TrimSpace(s.Upbjj) == "" {
		return invalid("upbjj", "is required")
	}
	if strings.TrimSpace(s.LokasiRak) == "" {
		return invalid("lokasiRak", "is required")
	}
	if s.Qty < 0 {
		return invalid("qty", "must not be negative")
	}
	if s.Safety < 0 {
		return invalid("safety", "must not be negative")
	}
	if math.IsNaN(s.Harga) || math.IsInf(s.Harga, 0) {
		return invalid("harga", "must be a finite number")
	}
	if s.Harga <= 0 {
		return invalid("harga", "must be greater than 0")
	}
	if !courseCodeRegex.MatchString(s.Kode) {
		return invalid("kode", "must be 4 letters + 4 digits (e.g. EKMA4116)")
	}
	return nil
}

// Status returns the availability text for the entry.
func (s Stock) Status() string {
	switch {
	case s.Qty == 0:
		return StatusEmpty
	case s.Qty < s.Safety:
		return StatusLow
	default:
		return StatusAvailable
	}
}

// Warning returns the safety-stock warning shown to the user, or "" when
// the level is fine. Only applies when both qty and safety are set.
func (s Stock) Warning() string {
	if s.Qty > 0 && s.Safety > 0 && s.Qty < s.Safety {
		return fmt.Sprintf("Peringatan: Stok (%d) di bawah safety stock (%d)!", s.Qty, s.Safety)
	}
	return ""
}

// SetField assigns a field from its textual form, as typed on the command line.
func (s *Stock) SetField(name, value string) error {
	switch strings.ToLower(name) {
	case "kode":
		s.Kode = value
	case "judul":
		s.Judul = value
	case "kategori":
		s.Kategori = value
	case "upbjj":
		s.Upbjj = value
	case "lokasirak":
		s.LokasiRak = value
	case "catatanhtml":
		s.CatatanHTML = value
	case "harga":
		f, err := parseFloat(value)
		if err != nil {
			return invalid("harga", "must be a number")
		}
		s.Harga = f
	case "qty":
		n, err := parseInt(value)
		if err != nil {
			return invalid("qty", "must be a whole number")
		}
		s.Qty = n
	case "safety":
		n, err := parseInt(value)
		if err != nil {
			return invalid("safety", "must be a whole number")
		}
		s.Safety = n
	default:
		return invalid(name, "unknown field")
	}
	return nil
}
