package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
)

// DefaultBufferSize is the number of rows a BufferedWriter holds before
// writing them out.
const DefaultBufferSize = 100

// Options configures the writers and readers of this package.
type Options struct {
	// Dialect defaults to ExcelTab for BufferedWriter and Excel otherwise.
	Dialect Dialect
	// Encoding is an IANA charset name. Empty means UTF-8.
	Encoding string
	// BufferSize only applies to BufferedWriter.
	BufferSize int
}

// BufferedWriter accumulates rows and writes them in batches.
// Call Close (or Flush) once done, rows still buffered are otherwise lost.
type BufferedWriter struct {
	w      *csv.Writer
	closer io.Closer
	buf    [][]string
	size   int
}

// NewBufferedWriter returns a BufferedWriter writing to w.
func NewBufferedWriter(w io.Writer, opts Options) (*BufferedWriter, error) {
	dst, closer, err := encode(w, opts.Encoding)
	if err != nil {
		return nil, err
	}
	size := opts.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &BufferedWriter{
		w:      opts.Dialect.or(ExcelTab).newWriter(dst),
		closer: closer,
		size:   size,
	}, nil
}

// Buffered returns the number of rows waiting to be written.
func (b *BufferedWriter) Buffered() int {
	return len(b.buf)
}

// WriteRow buffers row, writing the batch out once it exceeds the buffer size.
func (b *BufferedWriter) WriteRow(row []string) error {
	b.buf = append(b.buf, slices.Clone(row))
	if len(b.buf) > b.size {
		return b.Flush()
	}
	return nil
}

// WriteRows buffers every row then flushes.
func (b *BufferedWriter) WriteRows(rows [][]string) error {
	for _, row := range rows {
		if err := b.WriteRow(row); err != nil {
			return err
		}
	}
	return b.Flush()
}

// Flush writes the buffered rows to the underlying writer.
func (b *BufferedWriter) Flush() error {
	for _, row := range b.buf {
		if err := b.w.Write(row); err != nil {
			return fmt.Errorf("error writing row to CSV: %w", err)
		}
	}
	b.buf = b.buf[:0]
	b.w.Flush()
	if err := b.w.Error(); err != nil {
		return fmt.Errorf("error flushing CSV: %w", err)
	}
	return nil
}

// Close flushes the buffer and any pending encoder output. It does not close
// the underlying writer.
func (b *BufferedWriter) Close() error {
	if err := b.Flush(); err != nil {
		return err
	}
	if b.closer != nil {
		return b.closer.Close()
	}
	return nil
}

// DictWriter writes rows given as maps keyed by column name.
type DictWriter struct {
	// RestVal is written for columns missing from a row.
	RestVal string

	columns []string
	known   map[string]struct{}
	w       *csv.Writer
	closer  io.Closer
}

// NewDictWriter returns a DictWriter emitting columns in the given order.
func NewDictWriter(w io.Writer, columns []string, opts Options) (*DictWriter, error) {
	dst, closer, err := encode(w, opts.Encoding)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		known[c] = struct{}{}
	}
	return &DictWriter{
		columns: slices.Clone(columns),
		known:   known,
		w:       opts.Dialect.or(Excel).newWriter(dst),
		closer:  closer,
	}, nil
}

// Columns returns the column names in output order.
func (d *DictWriter) Columns() []string {
	return slices.Clone(d.columns)
}

// WriteHeader writes the column names as a row.
func (d *DictWriter) WriteHeader() error {
	if err := d.w.Write(d.columns); err != nil {
		return fmt.Errorf("error writing headers to CSV: %w", err)
	}
	return nil
}

// WriteRow writes row. A nil row is skipped.
func (d *DictWriter) WriteRow(row map[string]string) error {
	if row == nil {
		return nil
	}
	var extra []string
	for k := range row {
		if _, ok := d.known[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("%w: %s", ErrExtraKeys, strings.Join(extra, ", "))
	}

	record := make([]string, len(d.columns))
	for i, c := range d.columns {
		v, ok := row[c]
		if !ok {
			v = d.RestVal
		}
		record[i] = v
	}
	if err := d.w.Write(record); err != nil {
		return fmt.Errorf("error writing row to CSV: %w", err)
	}
	return nil
}

// WriteRows writes every row, stopping at the first error.
func (d *DictWriter) WriteRows(rows []map[string]string) error {
	for _, row := range rows {
		if err := d.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes rows held by the csv writer to the underlying writer.
func (d *DictWriter) Flush() error {
	d.w.Flush()
	return d.w.Error()
}

// Close flushes pending output. It does not close the underlying writer.
func (d *DictWriter) Close() error {
	if err := d.Flush(); err != nil {
		return err
	}
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}
