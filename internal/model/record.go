package model

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is an item under management: a stock entry or a delivery order.
// Key is unique within the owning store. Field looks up an attribute by its
// JSON name, case-insensitively.
type Record interface {
	Key() string
	Field(name string) (any, bool)
}

// Fields is the attribute map of a record, keyed by JSON field name.
type Fields map[string]any

// Get returns the value of a field, using case-insensitive matching.
func (f Fields) Get(name string) (any, bool) {
	// Try exact match first
	if v, ok := f[name]; ok {
		return v, true
	}
	nameLower := strings.ToLower(name)
	for k, v := range f {
		if strings.ToLower(k) == nameLower {
			return v, true
		}
	}
	return nil, false
}

// Text renders a scalar field value as the string a user would type.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Number reports the numeric value of v. Strings are not coerced.
func Number(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// CalculateHash computes a deterministic hash from a map of fields.
// Returns the first 12 characters of the hex-encoded SHA-256 hash.
func CalculateHash(fields Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		v, _ := json.Marshal(fields[k])
		buf.WriteString(k)
		buf.WriteString(":")
		buf.Write(v)
		buf.WriteString("\n")
	}

	hash := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(hash[:])[:12]
}

// HashPayload hashes a JSON object payload via CalculateHash.
func HashPayload(payload []byte) (string, error) {
	var fields Fields
	if err := json.Unmarshal(payload, &fields); err != nil {
		return "", fmt.Errorf("failed to decode payload: %w", err)
	}
	return CalculateHash(fields), nil
}
