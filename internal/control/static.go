package control

import (
	"fmt"
	"os"
)

// WriteStatic writes a single fixed record (the given bandwidth with the
// link running) to a brand-new file and returns. It refuses to overwrite:
// an existing path fails with an error wrapping os.ErrExist.
func WriteStatic(path string, mbps float64) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create static control file: %w", err)
	}
	defer f.Close()

	var buf [RecordSize]byte
	RecordFor(mbps, true).encode(buf[:])
	if _, err := f.Write(buf[:]); err != nil {
		return fmt.Errorf("write static control file %s: %w", path, err)
	}
	return f.Sync()
}

// ReadFile reads the record currently stored at path. Used by tests and
// the status display; the shaper reads the mapping directly.
func ReadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	return DecodeRecord(data)
}
