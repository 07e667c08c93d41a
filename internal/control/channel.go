package control

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ErrChannelUnavailable marks a control file that cannot be created or mapped.
var ErrChannelUnavailable = errors.New("control channel unavailable")

// Channel is the writer side of the shared memory region. The external
// shaper is the sole reader; there is no locking protocol beyond writing
// the full record in one pass and flushing before returning.
type Channel struct {
	path string
	file *os.File
	mem  mmap.MMap
}

// Open creates or truncates the backing file to RecordSize bytes and maps
// it for writing. The file is left zeroed until the first Publish.
func Open(path string) (*Channel, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrChannelUnavailable, path, err)
	}
	if err := f.Truncate(RecordSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: truncate %s: %v", ErrChannelUnavailable, path, err)
	}
	mem, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: map %s: %v", ErrChannelUnavailable, path, err)
	}
	return &Channel{path: path, file: f, mem: mem}, nil
}

// Path returns the backing file path.
func (c *Channel) Path() string { return c.path }

// Publish writes rec at offset 0 and synchronously flushes the mapping so
// the reader process observes it. The record is encoded into a local buffer
// first; on any failure the previously published bytes stay untouched.
func (c *Channel) Publish(rec Record) error {
	if c.mem == nil {
		return fmt.Errorf("%w: channel closed", ErrChannelUnavailable)
	}
	var buf [RecordSize]byte
	rec.encode(buf[:])
	copy(c.mem, buf[:])
	if err := c.mem.Flush(); err != nil {
		return fmt.Errorf("flush control file %s: %w", c.path, err)
	}
	return nil
}

// Close unmaps and closes the backing file. The file itself is kept; its
// lifetime belongs to the operator. Close is idempotent.
func (c *Channel) Close() error {
	var err error
	if c.mem != nil {
		err = c.mem.Unmap()
		c.mem = nil
	}
	if c.file != nil {
		if e := c.file.Close(); e != nil && err == nil {
			err = e
		}
		c.file = nil
	}
	return err
}
