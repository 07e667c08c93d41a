package trace

// MultiWriter fans every row out to several writers. The first error wins
// but all writers still see the row.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a MultiWriter over the given writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write fans out a single trace row.
func (m *MultiWriter) Write(row Row) error {
	var first error
	for _, w := range m.writers {
		if err := w.Write(row); err != nil && first == nil {
			first = err
		}
	}
	return first
}
