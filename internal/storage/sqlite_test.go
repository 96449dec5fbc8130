package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/ajar/internal/model"
)

func setupMirror(t *testing.T) *Mirror {
	t.Helper()
	m, err := OpenMirror(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func sampleOrder() model.DeliveryOrder {
	return model.DeliveryOrder{
		NomorDO: "DO2025-0001", NIM: "123456789", Nama: "Rina", Status: model.OrderShipped,
		Ekspedisi: "JNE", TanggalKirim: "2025-08-25", Paket: "PAKET-UT-001 - PAKET IPS Dasar",
		PaketKode: "PAKET-UT-001", Total: 120000,
		Perjalanan: []model.JourneyEntry{
			{Waktu: time.Date(2025, 8, 25, 10, 12, 20, 0, time.UTC), Keterangan: "Penerimaan di Loket"},
			{Waktu: time.Date(2025, 8, 26, 8, 0, 0, 0, time.UTC), Keterangan: "Tiba di Hub"},
		},
	}
}

func TestMirror_Rebuild(t *testing.T) {
	m := setupMirror(t)

	s := sampleStock()
	s.CatatanHTML = "<p>Edisi <b>2024</b></p>"
	require.NoError(t, m.Rebuild([]model.Stock{s}, []model.DeliveryOrder{sampleOrder()}))

	rows, cols, err := m.RawQuery(`SELECT kode, status, catatan, qty FROM stock`)
	require.NoError(t, err)
	assert.Equal(t, []string{"kode", "status", "catatan", "qty"}, cols)
	require.Len(t, rows, 1)
	assert.Equal(t, "EKMA4116", rows[0]["kode"])
	assert.Equal(t, model.StatusAvailable, rows[0]["status"])
	assert.Equal(t, "Edisi 2024", rows[0]["catatan"])
	assert.EqualValues(t, 28, rows[0]["qty"])

	rows, _, err = m.RawQuery(`SELECT COUNT(*) AS n FROM journey WHERE nomor_do = 'DO2025-0001'`)
	require.NoError(t, err)
	assert.EqualValues(t, 2, rows[0]["n"])

	last, err := m.LastSync()
	require.NoError(t, err)
	assert.False(t, last.IsZero())
}

func TestMirror_RebuildReplaces(t *testing.T) {
	m := setupMirror(t)

	require.NoError(t, m.Rebuild([]model.Stock{sampleStock()}, []model.DeliveryOrder{sampleOrder()}))
	require.NoError(t, m.Rebuild(nil, nil))

	rows, _, err := m.RawQuery(`SELECT * FROM stock`)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, _, err = m.RawQuery(`SELECT * FROM delivery_order`)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMirror_NullCatatan(t *testing.T) {
	m := setupMirror(t)
	require.NoError(t, m.Rebuild([]model.Stock{sampleStock()}, nil))

	rows, _, err := m.RawQuery(`SELECT catatan FROM stock`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0]["catatan"])
}

func TestMirror_LastSyncEmpty(t *testing.T) {
	m := setupMirror(t)
	last, err := m.LastSync()
	require.NoError(t, err)
	assert.True(t, last.IsZero())
}

func TestMirror_RawQueryError(t *testing.T) {
	m := setupMirror(t)
	_, _, err := m.RawQuery(`SELECT * FROM no_such_table`)
	assert.Error(t, err)
}
