package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() DeliveryOrder {
	return DeliveryOrder{
		NomorDO:      "DO2025-0001",
		NIM:          "123456789",
		Nama:         "Rina Wulandari",
		Status:       OrderProcessing,
		Ekspedisi:    "JNE",
		TanggalKirim: "2025-08-25",
		Paket:        "PAKET-UT-001 - PAKET IPS Dasar",
		PaketKode:    "PAKET-UT-001",
		Total:        120000,
		Perjalanan: []JourneyEntry{
			{Waktu: time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC), Keterangan: "Penerimaan di Loket"},
		},
	}
}

func TestDeliveryOrder_Validate(t *testing.T) {
	assert.NoError(t, validOrder().Validate())

	tests := []struct {
		name  string
		edit  func(*DeliveryOrder)
		field string
	}{
		{"missing nim", func(d *DeliveryOrder) { d.NIM = "" }, "nim"},
		{"missing nama", func(d *DeliveryOrder) { d.Nama = "" }, "nama"},
		{"missing ekspedisi", func(d *DeliveryOrder) { d.Ekspedisi = "" }, "ekspedisi"},
		{"missing paket", func(d *DeliveryOrder) { d.PaketKode = "" }, "paketKode"},
		{"missing tanggal", func(d *DeliveryOrder) { d.TanggalKirim = "" }, "tanggalKirim"},
		{"bad tanggal", func(d *DeliveryOrder) { d.TanggalKirim = "25/08/2025" }, "tanggalKirim"},
		{"unknown status", func(d *DeliveryOrder) { d.Status = "Hilang" }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validOrder()
			tt.edit(&d)

			var verr *ValidationError
			require.True(t, errors.As(d.Validate(), &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	s, ok := NormalizeStatus("dalam perjalanan")
	require.True(t, ok)
	assert.Equal(t, OrderInTransit, s)

	_, ok = NormalizeStatus("lost")
	assert.False(t, ok)
}

func TestDeliveryOrder_Clone(t *testing.T) {
	d := validOrder()
	c := d.Clone()
	c.Perjalanan[0].Keterangan = "changed"
	c.Perjalanan = append(c.Perjalanan, JourneyEntry{Keterangan: "extra"})

	assert.Equal(t, "Penerimaan di Loket", d.Perjalanan[0].Keterangan)
	assert.Len(t, d.Perjalanan, 1)
}

func TestDeliveryOrder_Field(t *testing.T) {
	d := validOrder()

	v, ok := d.Field("nomorDO")
	require.True(t, ok)
	assert.Equal(t, "DO2025-0001", v)

	v, ok = d.Field("total")
	require.True(t, ok)
	assert.Equal(t, 120000.0, v)
}

func TestYearPartition(t *testing.T) {
	assert.Equal(t, "2025", YearPartition(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestJourneyEntry_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`{"waktu":"2025-08-25T10:12:20Z","keterangan":"a"}`, time.Date(2025, 8, 25, 10, 12, 20, 0, time.UTC)},
		{`{"waktu":"2025-08-25 10:12:20","keterangan":"a"}`, time.Date(2025, 8, 25, 10, 12, 20, 0, time.UTC)},
		{`{"waktu":"2025-08-25","keterangan":"a"}`, time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var e JourneyEntry
		require.NoError(t, json.Unmarshal([]byte(tt.in), &e))
		assert.True(t, tt.want.Equal(e.Waktu), "got %v", e.Waktu)
		assert.Equal(t, "a", e.Keterangan)
	}

	var e JourneyEntry
	assert.Error(t, json.Unmarshal([]byte(`{"waktu":"kemarin"}`), &e))
}
