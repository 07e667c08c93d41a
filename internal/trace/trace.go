// Package trace exports the published bandwidth signal so a session can be
// correlated with experiment results afterwards.
package trace

import "time"

// Row is one published control record with its provenance.
type Row struct {
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"session_id"`
	Profile       string    `json:"profile"`
	Mbps          float64   `json:"mbps"`
	BitsPerSecond uint64    `json:"bits_per_second"`
	LinkUp        bool      `json:"link_up"`
}

// Writer receives every published record.
type Writer interface {
	Write(row Row) error
}
