package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Delivery order statuses
const (
	OrderReceived   = "Diterima"
	OrderProcessing = "Diproses"
	OrderInTransit  = "Dalam Perjalanan"
	OrderShipped    = "Dikirim"
	OrderCompleted  = "Selesai"
)

// OrderPrefix is the default prefix of delivery order numbers.
const OrderPrefix = "DO"

// DateLayout is the layout of tanggalKirim.
const DateLayout = "2006-01-02"

var orderStatuses = []string{OrderReceived, OrderProcessing, OrderInTransit, OrderShipped, OrderCompleted}

// OrderStatuses returns the known delivery order statuses.
func OrderStatuses() []string {
	return append([]string(nil), orderStatuses...)
}

// NormalizeStatus returns the canonical spelling of a status.
func NormalizeStatus(status string) (string, bool) {
	for _, s := range orderStatuses {
		if strings.EqualFold(s, strings.TrimSpace(status)) {
			return s, true
		}
	}
	return "", false
}

// JourneyEntry is one step in the shipping history of a delivery order.
type JourneyEntry struct {
	Waktu      time.Time `json:"waktu" yaml:"waktu"`
	Keterangan string    `json:"keterangan" yaml:"keterangan"`
}

// journeyLayouts are the timestamp formats accepted for journey entries.
var journeyLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

// UnmarshalJSON accepts RFC 3339 as well as the local timestamp forms found
// in hand-written data files.
func (e *JourneyEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Waktu      string `json:"waktu"`
		Keterangan string `json:"keterangan"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Keterangan = raw.Keterangan
	e.Waktu = time.Time{}
	if raw.Waktu == "" {
		return nil
	}
	for _, layout := range journeyLayouts {
		if t, err := time.Parse(layout, raw.Waktu); err == nil {
			e.Waktu = t
			return nil
		}
	}
	return fmt.Errorf("invalid journey time %q", raw.Waktu)
}

// DeliveryOrder is a shipment of a package to a student, keyed by DO number.
type DeliveryOrder struct {
	NomorDO      string         `json:"nomorDO" yaml:"nomorDO"`
	NIM          string         `json:"nim" yaml:"nim"`
	Nama         string         `json:"nama" yaml:"nama"`
	Status       string         `json:"status" yaml:"status"`
	Ekspedisi    string         `json:"ekspedisi" yaml:"ekspedisi"`
	TanggalKirim string         `json:"tanggalKirim" yaml:"tanggalKirim"`
	Paket        string         `json:"paket" yaml:"paket"`
	PaketKode    string         `json:"paketKode,omitempty" yaml:"paketKode,omitempty"`
	Total        float64        `json:"total" yaml:"total"`
	Perjalanan   []JourneyEntry `json:"perjalanan" yaml:"perjalanan"`
}

// Key returns the DO number.
func (d DeliveryOrder) Key() string {
	return d.NomorDO
}

// Field returns the value of a delivery order attribute by JSON name.
func (d DeliveryOrder) Field(name string) (any, bool) {
	switch strings.ToLower(name) {
	case "nomordo":
		return d.NomorDO, true
	case "nim":
		return d.NIM, true
	case "nama":
		return d.Nama, true
	case "status":
		return d.Status, true
	case "ekspedisi":
		return d.Ekspedisi, true
	case "tanggalkirim":
		return d.TanggalKirim, true
	case "paket":
		return d.Paket, true
	case "paketkode":
		return d.PaketKode, true
	case "total":
		return d.Total, true
	}
	return nil, false
}

// Clone returns a deep copy; the journey slice is not shared.
func (d DeliveryOrder) Clone() DeliveryOrder {
	d.Perjalanan = append([]JourneyEntry(nil), d.Perjalanan...)
	return d
}

// Validate checks the delivery order form rules. The first failing rule wins.
func (d DeliveryOrder) Validate() error {
	if strings.TrimSpace(d.NIM) == "" {
		return invalid("nim", "is required")
	}
	if strings.TrimSpace(d.Nama) == "" {
		return invalid("nama", "is required")
	}
	if strings.TrimSpace(d.Ekspedisi) == "" {
		return invalid("ekspedisi", "is required")
	}
	if strings.TrimSpace(d.PaketKode) == "" {
		return invalid("paketKode", "is required")
	}
	if strings.TrimSpace(d.TanggalKirim) == "" {
		return invalid("tanggalKirim", "is required")
	}
	if _, err := time.Parse(DateLayout, d.TanggalKirim); err != nil {
		return invalid("tanggalKirim", "must be a date in YYYY-MM-DD format")
	}
	if _, ok := NormalizeStatus(d.Status); !ok {
		return invalid("status", fmt.Sprintf("must be one of: %s", strings.Join(orderStatuses, ", ")))
	}
	return nil
}

// LatestEntry returns the most recent journey entry, if any.
func (d DeliveryOrder) LatestEntry() (JourneyEntry, bool) {
	if len(d.Perjalanan) == 0 {
		return JourneyEntry{}, false
	}
	return d.Perjalanan[len(d.Perjalanan)-1], true
}

// YearPartition returns the partition used for DO numbers created at t.
func YearPartition(t time.Time) string {
	return strconv.Itoa(t.Year())
}
