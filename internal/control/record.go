// Package control owns the shared memory region read by the traffic shaper.
//
// The region is a fixed 16-byte file: bits-per-second at offset 0 and a
// link-running flag at offset 8, both unsigned 64-bit little-endian. The
// reader re-reads the mapping on every packet decision, so the writer must
// always lay down the full record and flush before returning.
package control

import (
	"encoding/binary"
	"fmt"
	"math"
)

// RecordSize is the exact size of the backing file in bytes.
const RecordSize = 16

// Record is the wire state published to the external reader.
type Record struct {
	BitsPerSecond uint64
	LinkRunning   uint64
}

// RecordFor derives the wire record from a bandwidth in Mbps and a link flag.
func RecordFor(mbps float64, up bool) Record {
	r := Record{BitsPerSecond: uint64(math.Round(mbps * 1e6))}
	if up {
		r.LinkRunning = 1
	}
	return r
}

// Up reports whether the record marks the link as running.
func (r Record) Up() bool { return r.LinkRunning == 1 }

// Mbps converts the record's bit rate back to Mbps.
func (r Record) Mbps() float64 { return float64(r.BitsPerSecond) / 1e6 }

func (r Record) encode(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], r.BitsPerSecond)
	binary.LittleEndian.PutUint64(buf[8:16], r.LinkRunning)
}

// DecodeRecord parses a 16-byte buffer into a Record.
func DecodeRecord(buf []byte) (Record, error) {
	if len(buf) < RecordSize {
		return Record{}, fmt.Errorf("control record too short: %d bytes", len(buf))
	}
	return Record{
		BitsPerSecond: binary.LittleEndian.Uint64(buf[0:8]),
		LinkRunning:   binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}
