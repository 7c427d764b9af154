package historical

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/exp/mmap"
)

var ErrEof = errors.New("EOF")

// Source is a random-access view over a file of fixed-size binary records.
// Records are reinterpreted in place, so T must be a flat struct without
// padding.
type Source[T any] struct {
	dataSourceName string
	reader         *mmap.ReaderAt
	entrySize      int64
	entryCount     int64
}

func NewSource[T any](dataSourceName string) *Source[T] {
	var entry T
	return &Source[T]{
		dataSourceName: dataSourceName,
		entrySize:      int64(unsafe.Sizeof(entry)),
	}
}

func (s *Source[T]) Open() error {
	if s.entrySize == 0 {
		return fmt.Errorf("size of record type is zero")
	}

	fileInfo, err := os.Stat(s.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to stat data source %q: %w", s.dataSourceName, err)
	}
	if fileInfo.Size()%s.entrySize != 0 {
		return fmt.Errorf("data source %q size is not a multiple of record size %d", s.dataSourceName, s.entrySize)
	}
	s.entryCount = fileInfo.Size() / s.entrySize

	s.reader, err = mmap.Open(s.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open data source %q: %w", s.dataSourceName, err)
	}
	return nil
}

func (s *Source[T]) Close() {
	_ = s.reader.Close()
}

func (s *Source[T]) EntryCount() int64 {
	return s.entryCount
}

func (s *Source[T]) Read(index int64, data *T) error {
	if index < 0 || index >= s.entryCount {
		return ErrEof
	}

	buffer := make([]byte, s.entrySize)
	n, err := s.reader.ReadAt(buffer, index*s.entrySize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("unable to read: %w", err)
	}
	if int64(n) < s.entrySize {
		return ErrEof
	}

	*data = *(*T)(unsafe.Pointer(&buffer[0])) // #nosec G103
	return nil
}
