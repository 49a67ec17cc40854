package parser

import (
	"bufio"
	"context"
	"io"
	"os"
)

// MaxLineSize is the longest transcript line, in bytes, that can be read.
const MaxLineSize = 1024 * 1024

// ReaderSource parses records from an io.Reader, one line at a time.
type ReaderSource struct {
	name    string
	scanner *bufio.Scanner
	parser  *Parser
	eof     bool
}

// NewReaderSource creates a RecordSource over r. The name is used in errors.
func NewReaderSource(r io.Reader, name string, opts ...Option) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &ReaderSource{
		name:    name,
		scanner: scanner,
		parser:  New(opts...),
	}
}

// Next returns the next record. Returns io.EOF once the input is exhausted
// and the last pending record has been returned.
func (s *ReaderSource) Next(ctx context.Context) (*Record, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.eof {
			return nil, io.EOF
		}

		if s.scanner.Scan() {
			if rec, ok := s.parser.Feed(s.scanner.Text()); ok {
				return rec, nil
			}
			continue
		}

		s.eof = true
		if err := s.scanner.Err(); err != nil {
			return nil, &SourceError{Path: s.name, Err: err}
		}
		if rec, ok := s.parser.Finish(); ok {
			return rec, nil
		}
	}
}

// Stats returns the parser counters so far.
func (s *ReaderSource) Stats() Stats {
	return s.parser.Stats()
}

// Close is a no-op; the caller owns the reader.
func (s *ReaderSource) Close() error {
	return nil
}

// FileSource parses records from a transcript file. The file is closed when
// the source is exhausted, on read error, and on Close.
type FileSource struct {
	*ReaderSource
	path string
	file *os.File
}

// OpenFile opens a transcript file for parsing.
func OpenFile(path string, opts ...Option) (*FileSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	return &FileSource{
		ReaderSource: NewReaderSource(f, path, opts...),
		path:         path,
		file:         f,
	}, nil
}

// Path returns the transcript path.
func (s *FileSource) Path() string {
	return s.path
}

// Next returns the next record, closing the file once no more can be read.
func (s *FileSource) Next(ctx context.Context) (*Record, error) {
	rec, err := s.ReaderSource.Next(ctx)
	if err != nil {
		if closeErr := s.Close(); closeErr != nil && err == io.EOF {
			return nil, &SourceError{Path: s.path, Err: closeErr}
		}
	}
	return rec, err
}

// Close releases the file handle. Safe to call more than once.
func (s *FileSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// ParseFile reads a whole transcript. On error no records are returned.
func ParseFile(ctx context.Context, path string, opts ...Option) ([]Record, Stats, error) {
	src, err := OpenFile(path, opts...)
	if err != nil {
		return nil, Stats{}, err
	}
	defer src.Close()

	records, err := Collect(ctx, src)
	if err != nil {
		return nil, src.Stats(), err
	}
	return records, src.Stats(), nil
}
