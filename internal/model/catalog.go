package model

import (
	"strconv"
	"strings"
)

// Package is a bundle of teaching materials shipped in one delivery order.
type Package struct {
	Kode  string   `json:"kode" yaml:"kode"`
	Nama  string   `json:"nama" yaml:"nama"`
	Isi   []string `json:"isi" yaml:"isi"`
	Harga float64  `json:"harga" yaml:"harga"`
}

// Label is the package name recorded on a delivery order.
func (p Package) Label() string {
	return p.Kode + " - " + p.Nama
}

// User is an account allowed to log in.
type User struct {
	ID       int    `json:"id,omitempty" yaml:"id,omitempty"`
	Nama     string `json:"nama" yaml:"nama"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
	Role     string `json:"role" yaml:"role"`
	Lokasi   string `json:"lokasi" yaml:"lokasi"`
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
