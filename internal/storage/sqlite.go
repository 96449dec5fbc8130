package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/user/ajar/internal/model"
)

// MirrorFile is the name of the SQL mirror database inside the state directory.
const MirrorFile = "mirror.db"

// Mirror is a SQLite copy of the in-memory stores, used for ad-hoc reporting.
// It is rebuilt wholesale from the stores and never read back into them.
type Mirror struct {
	db     *sql.DB
	dbPath string
}

var mirrorSchema = []string{
	`CREATE TABLE IF NOT EXISTS stock (
		kode TEXT PRIMARY KEY,
		judul TEXT NOT NULL,
		kategori TEXT NOT NULL,
		upbjj TEXT NOT NULL,
		lokasi_rak TEXT NOT NULL,
		harga REAL NOT NULL,
		qty INTEGER NOT NULL,
		safety INTEGER NOT NULL,
		status TEXT NOT NULL,
		catatan TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS delivery_order (
		nomor_do TEXT PRIMARY KEY,
		nim TEXT NOT NULL,
		nama TEXT NOT NULL,
		status TEXT NOT NULL,
		ekspedisi TEXT NOT NULL,
		tanggal_kirim TEXT NOT NULL,
		paket TEXT NOT NULL,
		paket_kode TEXT,
		total REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS journey (
		nomor_do TEXT NOT NULL,
		seq INTEGER NOT NULL,
		waktu TEXT NOT NULL,
		keterangan TEXT NOT NULL,
		PRIMARY KEY (nomor_do, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS _mirror_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		last_sync TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_kategori ON stock(kategori)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_upbjj ON stock(upbjj)`,
	`CREATE INDEX IF NOT EXISTS idx_delivery_order_status ON delivery_order(status)`,
}

// OpenMirror opens (creating if needed) the mirror database in stateDir.
func OpenMirror(stateDir string) (*Mirror, error) {
	dbPath := filepath.Join(stateDir, MirrorFile)

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	m := &Mirror{db: db, dbPath: dbPath}
	if err := m.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func (m *Mirror) initSchema() error {
	for _, stmt := range mirrorSchema {
		if _, err := m.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create mirror schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (m *Mirror) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (m *Mirror) Path() string {
	return m.dbPath
}

// Rebuild replaces the mirror contents with the given records in one transaction.
func (m *Mirror) Rebuild(stocks []model.Stock, orders []model.DeliveryOrder) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"stock", "delivery_order", "journey"} {
		if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM "%s"`, table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	stockStmt, err := tx.Prepare(`
		INSERT INTO stock (kode, judul, kategori, upbjj, lokasi_rak, harga, qty, safety, status, catatan)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare stock insert: %w", err)
	}
	defer stockStmt.Close()

	for _, s := range stocks {
		_, err := stockStmt.Exec(s.Kode, s.Judul, s.Kategori, s.Upbjj, s.LokasiRak,
			s.Harga, s.Qty, s.Safety, s.Status(), nullString(model.PlainText(s.CatatanHTML)))
		if err != nil {
			return fmt.Errorf("failed to mirror stock %s: %w", s.Kode, err)
		}
	}

	orderStmt, err := tx.Prepare(`
		INSERT INTO delivery_order (nomor_do, nim, nama, status, ekspedisi, tanggal_kirim, paket, paket_kode, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare order insert: %w", err)
	}
	defer orderStmt.Close()

	journeyStmt, err := tx.Prepare(`
		INSERT INTO journey (nomor_do, seq, waktu, keterangan) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare journey insert: %w", err)
	}
	defer journeyStmt.Close()

	for _, d := range orders {
		_, err := orderStmt.Exec(d.NomorDO, d.NIM, d.Nama, d.Status, d.Ekspedisi,
			d.TanggalKirim, d.Paket, nullString(d.PaketKode), d.Total)
		if err != nil {
			return fmt.Errorf("failed to mirror order %s: %w", d.NomorDO, err)
		}
		for i, e := range d.Perjalanan {
			if _, err := journeyStmt.Exec(d.NomorDO, i+1, e.Waktu.Format(time.RFC3339), e.Keterangan); err != nil {
				return fmt.Errorf("failed to mirror journey of %s: %w", d.NomorDO, err)
			}
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO _mirror_meta (id, last_sync) VALUES (1, ?)`,
		now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store sync time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mirror: %w", err)
	}
	return nil
}

// LastSync returns when the mirror was last rebuilt, or the zero time.
func (m *Mirror) LastSync() (time.Time, error) {
	var lastSync sql.NullString
	err := m.db.QueryRow(`SELECT last_sync FROM _mirror_meta WHERE id = 1`).Scan(&lastSync)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last sync time: %w", err)
	}
	if !lastSync.Valid || lastSync.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, lastSync.String)
}

// nullString converts empty string to sql.NullString.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// RawQuery executes a raw SQL SELECT query and returns results.
// Only SELECT queries should be passed to this function.
func (m *Mirror) RawQuery(query string) ([]map[string]interface{}, []string, error) {
	rows, err := m.db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, fmt.Errorf("scan failed: %w", err)
		}

		row := make(map[string]interface{})
		for i, col := range columns {
			val := values[i]
			// Convert []byte to string for readability
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return results, columns, nil
}
