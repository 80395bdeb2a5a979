package tabular

import "sync"

// WriterRegistry stores format writers. Registering an existing format
// replaces the previous writer.
type WriterRegistry struct {
	mu      sync.RWMutex
	writers map[Format]Writer
}

// NewWriterRegistry creates an empty writer registry.
func NewWriterRegistry() *WriterRegistry {
	return &WriterRegistry{writers: make(map[Format]Writer)}
}

// Register adds a writer for a format.
func (r *WriterRegistry) Register(format Format, w Writer) error {
	if w == nil {
		return NewError(KindValidation, "writer is required", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writers[NormalizeFormat(format)] = w
	return nil
}

// Resolve returns the writer for a format.
func (r *WriterRegistry) Resolve(format Format) (Writer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.writers[NormalizeFormat(format)]
	return w, ok
}

// ReaderRegistry stores format readers.
type ReaderRegistry struct {
	mu      sync.RWMutex
	readers map[Format]Reader
}

// NewReaderRegistry creates an empty reader registry.
func NewReaderRegistry() *ReaderRegistry {
	return &ReaderRegistry{readers: make(map[Format]Reader)}
}

// Register adds a reader for a format.
func (r *ReaderRegistry) Register(format Format, rd Reader) error {
	if rd == nil {
		return NewError(KindValidation, "reader is required", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readers[NormalizeFormat(format)] = rd
	return nil
}

// Resolve returns the reader for a format.
func (r *ReaderRegistry) Resolve(format Format) (Reader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rd, ok := r.readers[NormalizeFormat(format)]
	return rd, ok
}

// DefaultWriters returns a registry with the built-in writers registered.
// The SQLite adapter registers itself separately.
func DefaultWriters() *WriterRegistry {
	writers := NewWriterRegistry()
	_ = writers.Register(FormatCSV, CSVWriter{})
	_ = writers.Register(FormatXLSX, XLSXWriter{})
	return writers
}

// DefaultReaders returns a registry with the built-in readers registered.
func DefaultReaders() *ReaderRegistry {
	readers := NewReaderRegistry()
	_ = readers.Register(FormatCSV, CSVReader{})
	_ = readers.Register(FormatXLSX, XLSXReader{})
	return readers
}
