package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SequenceWidth is the zero-padded width of the counter part of a sequence ID.
const SequenceWidth = 4

// NextSequenceID returns the next collision-free ID for a partition.
// Format: <prefix><partition>-<counter>
// Example: DO2025-0004 when DO2025-0001 and DO2025-0003 exist.
//
// Keys outside the partition, or whose suffix is not a number, are ignored.
// Counters start at 1 for a new partition.
func NextSequenceID(keys []string, prefix, partition string) string {
	maxSeq := 0
	for _, key := range keys {
		seq, ok := ParseSequence(key, prefix, partition)
		if ok && seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatSequenceID(prefix, partition, maxSeq+1)
}

// FormatSequenceID renders a sequence ID.
func FormatSequenceID(prefix, partition string, seq int) string {
	return fmt.Sprintf("%s%s-%0*d", prefix, partition, SequenceWidth, seq)
}

// ParseSequence extracts the counter of key when it belongs to the partition.
// Example: ("DO2025-0012", "DO", "2025") -> 12, true
func ParseSequence(key, prefix, partition string) (int, bool) {
	rest, ok := strings.CutPrefix(key, prefix+partition+"-")
	if !ok || rest == "" {
		return 0, false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	seq, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return seq, true
}
