package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/ajar/internal/storage"
)

func TestExport(t *testing.T) {
	t.Run("writes journaled state as YAML", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		login(t)

		run(t, "stock", "edit", "EKMA4116", "--set", "qty=40")
		require.Equal(t, 0, ExitCode)

		out, _ := run(t, "export", "snapshot.yaml")
		assert.Equal(t, 0, ExitCode)
		assert.Equal(t, "Exported 4 stock entries and 2 delivery orders to snapshot.yaml\n", out)

		snap, err := storage.LoadSnapshot(filepath.Join(tempDir, "snapshot.yaml"))
		require.NoError(t, err)
		require.Len(t, snap.Stok, 4)
		assert.Equal(t, 40, snap.Stok[0].Qty)
		require.Len(t, snap.Tracking, 2)
		assert.Equal(t, "DO2025-0001", snap.Tracking[0].NomorDO)
		require.Len(t, snap.Pengguna, 1)
		assert.Equal(t, []string{"Jakarta", "Surabaya", "Makassar"}, snap.UpbjjList)
	})

	t.Run("exported JSON is a usable data source", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		login(t)

		run(t, "tracking", "create", "--nim", "1", "--nama", "A", "--ekspedisi", "JNE", "--paket", "PAKET-UT-001")
		require.Equal(t, 0, ExitCode)
		run(t, "export", "next.json")
		require.Equal(t, 0, ExitCode)

		out, _ := run(t, "tracking", "next", "--data", filepath.Join(tempDir, "next.json"), "--state-dir", filepath.Join(tempDir, "fresh"))
		assert.Equal(t, 4, ExitCode, "a fresh state dir has no session")

		run(t, "login", "rina@ut.ac.id", "-p", "rina123", "--data", "next.json", "--state-dir", "fresh")
		require.Equal(t, 0, ExitCode)
		out, _ = run(t, "tracking", "next", "--data", "next.json", "--state-dir", "fresh")
		assert.Equal(t, "DO2025-0004\n", out)
	})

	t.Run("refuses to overwrite without --force", func(t *testing.T) {
		tempDir, cleanup := setupTestEnv(t)
		defer cleanup()
		login(t)

		path := filepath.Join(tempDir, "out.json")
		require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

		_, errOut := run(t, "export", "out.json")
		assert.Equal(t, 1, ExitCode)
		assert.Contains(t, errOut, "already exists")
		data, _ := os.ReadFile(path)
		assert.Equal(t, "keep", string(data))

		run(t, "export", "out.json", "--force")
		assert.Equal(t, 0, ExitCode)
		_, err := storage.LoadSnapshot(path)
		assert.NoError(t, err)
	})
}
