// Package storage loads the bulk data source and keeps the mutation journal
// and the SQL reporting mirror for ajar.
package storage

import (
	"encoding/json"
	"time"
)

// now is replaced in tests.
var now = time.Now

// Journal operation types
const (
	OpInsert = "insert"
	OpUpdate = "update"
)

// Record kinds stored in the journal
const (
	KindStock = "stock"
	KindOrder = "order"
)

// Entry is one line of the mutation journal.
type Entry struct {
	Op      string          `json:"op"`
	Kind    string          `json:"kind"`
	Key     string          `json:"key"`
	Hash    string          `json:"hash"`
	At      time.Time       `json:"at"`
	Actor   string          `json:"actor"`
	Payload json.RawMessage `json:"payload"`
}
