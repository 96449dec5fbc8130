package service

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/user/ajar/internal/model"
	"github.com/user/ajar/internal/query"
	"github.com/user/ajar/internal/storage"
)

func testSnapshot() *storage.Snapshot {
	return &storage.Snapshot{
		UpbjjList:    []string{"Jakarta", "Surabaya", "Makassar"},
		KategoriList: []string{"MK Wajib", "MK Pilihan", "Praktikum"},
		Stok: []model.Stock{
			{Kode: "EKMA4116", Judul: "Pengantar Manajemen", Kategori: "MK Wajib", Upbjj: "Jakarta", LokasiRak: "R1-A3", Harga: 65000, Qty: 28, Safety: 20},
			{Kode: "EKMA4115", Judul: "Pengantar Akuntansi", Kategori: "MK Wajib", Upbjj: "Jakarta", LokasiRak: "R1-A4", Harga: 60000, Qty: 7, Safety: 15},
			{Kode: "BIOL4201", Judul: "Biologi Umum (Praktikum)", Kategori: "Praktikum", Upbjj: "Surabaya", LokasiRak: "R3-B2", Harga: 80000, Qty: 12, Safety: 10},
			{Kode: "ISIP4110", Judul: "Dasar-Dasar Sosiologi", Kategori: "MK Pilihan", Upbjj: "Makassar", LokasiRak: "R2-C1", Harga: 55000, Qty: 2, Safety: 8},
		},
		Paket: []model.Package{
			{Kode: "PAKET-UT-001", Nama: "PAKET IPS Dasar", Isi: []string{"EKMA4116", "EKMA4115"}, Harga: 120000},
			{Kode: "PAKET-UT-002", Nama: "PAKET IPA Dasar", Isi: []string{"BIOL4201", "XXXX0000"}, Harga: 140000},
		},
		Tracking: storage.TrackingList{
			{NomorDO: "DO2025-0001", NIM: "123456789", Nama: "Rina Wulandari", Status: model.OrderInTransit,
				Ekspedisi: "JNE", TanggalKirim: "2025-08-25", Paket: "PAKET-UT-001 - PAKET IPS Dasar", PaketKode: "PAKET-UT-001", Total: 120000},
			{NomorDO: "DO2025-0002", NIM: "987654321", Nama: "Agus Pranoto", Status: model.OrderShipped,
				Ekspedisi: "Pos Indonesia", TanggalKirim: "2025-08-25", Paket: "PAKET-UT-002 - PAKET IPA Dasar", PaketKode: "PAKET-UT-002", Total: 140000},
		},
		Pengguna: []model.User{
			{ID: 1, Nama: "Rina", Email: "rina@ut.ac.id", Password: "rina123", Role: "UPBJJ-UT", Lokasi: "Jakarta"},
		},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(testSnapshot(), Options{Actor: "tester"})
	require.NoError(t, err)
	return svc
}

func newJournaledService(t *testing.T, dir string) (*Service, *storage.Store) {
	t.Helper()
	st, err := storage.NewStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc, err := New(testSnapshot(), Options{Storage: st, Actor: "tester"})
	require.NoError(t, err)
	return svc, st
}

func kodes(stocks []model.Stock) []string {
	out := make([]string, len(stocks))
	for i, s := range stocks {
		out[i] = s.Kode
	}
	return out
}

func TestNew_DuplicateSeed(t *testing.T) {
	snap := testSnapshot()
	snap.Stok = append(snap.Stok, snap.Stok[0])

	_, err := New(snap, Options{})
	assert.ErrorIs(t, err, model.ErrDuplicateKey)
}

func TestNew_NilSnapshot(t *testing.T) {
	svc, err := New(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, svc.ListStock(query.Spec{}))
	assert.Equal(t, "DO2025-0001", svc.NextOrderNumber(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestService_Lookups(t *testing.T) {
	svc := newTestService(t)

	assert.Equal(t, []string{"Jakarta", "Surabaya", "Makassar"}, svc.Regions())
	assert.Equal(t, []string{"MK Wajib", "MK Pilihan", "Praktikum"}, svc.Categories())
	assert.Len(t, svc.Users(), 1)
	assert.Equal(t, "tester", svc.Actor())

	regions := svc.Regions()
	regions[0] = "changed"
	assert.Equal(t, "Jakarta", svc.Regions()[0])

	pkgs := svc.Packages()
	pkgs[0].Isi[0] = "changed"
	assert.Equal(t, "EKMA4116", svc.Packages()[0].Isi[0])
}

func TestService_PackageByCode(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.PackageByCode(" PAKET-UT-002 ")
	require.NoError(t, err)
	assert.Equal(t, "PAKET-UT-002 - PAKET IPA Dasar", p.Label())

	_, err = svc.PackageByCode("PAKET-UT-999")
	assert.ErrorIs(t, err, model.ErrUnknownPackage)
}

func TestService_CourseTitle(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, "Biologi Umum (Praktikum)", svc.CourseTitle("BIOL4201"))
	assert.Equal(t, NotFoundTitle, svc.CourseTitle("XXXX0000"))
}

func TestService_Snapshot(t *testing.T) {
	svc := newTestService(t)
	snap := svc.Snapshot()

	want := testSnapshot()
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
}

func TestService_SyncMirror(t *testing.T) {
	t.Run("without storage", func(t *testing.T) {
		assert.Error(t, newTestService(t).SyncMirror())
	})

	t.Run("with storage", func(t *testing.T) {
		svc, st := newJournaledService(t, t.TempDir())
		require.NoError(t, svc.SyncMirror())

		rows, _, err := st.RawQuery(`SELECT kode FROM stock WHERE status = 'Stok Rendah' ORDER BY kode`)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "EKMA4115", rows[0]["kode"])
		assert.Equal(t, "ISIP4110", rows[1]["kode"])
	})
}

func TestService_JournalReplay(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC)

	svc, _ := newJournaledService(t, dir)
	_, err := svc.EditStock("EKMA4116", map[string]string{"qty": "3"})
	require.NoError(t, err)
	created, err := svc.CreateOrder(OrderInput{
		NIM: "111", Nama: "Budi", Ekspedisi: "JNE", PaketKode: "PAKET-UT-001", TanggalKirim: "2025-09-02",
	}, now)
	require.NoError(t, err)
	_, err = svc.UpdateOrderStatus(created.NomorDO, "dikirim", "", now.Add(time.Hour))
	require.NoError(t, err)

	// A fresh service over the same state directory sees the mutations.
	reopened, _ := newJournaledService(t, dir)

	got, err := reopened.GetStock("EKMA4116")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Qty)

	d, err := reopened.FindOrder(created.NomorDO)
	require.NoError(t, err)
	assert.Equal(t, model.OrderShipped, d.Status)
	assert.Len(t, d.Perjalanan, 2)
	assert.Equal(t, "DO2025-0004", reopened.NextOrderNumber(now))
}

func TestService_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc, err := New(testSnapshot(), Options{Actor: "tester", Logger: zap.New(core)})
	require.NoError(t, err)

	_, err = svc.EditStock("EKMA4116", map[string]string{"qty": "5"})
	require.NoError(t, err)

	entries := logs.FilterMessage("Stock saved").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "EKMA4116", fields["kode"])
	assert.Equal(t, "tester", fields["actor"])
	assert.Equal(t, "Peringatan: Stok (5) di bawah safety stock (20)!", fields["warning"])
}
