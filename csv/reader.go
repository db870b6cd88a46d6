package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
)

// Reader reads rows from a CSV source in a given encoding. Records may have
// a varying number of fields.
type Reader struct {
	r *csv.Reader
}

// NewReader returns a Reader decoding src with opts.Encoding.
func NewReader(src io.Reader, opts Options) (*Reader, error) {
	r, err := decode(src, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return &Reader{r: opts.Dialect.or(Excel).newReader(r)}, nil
}

// Read returns the next row, or io.EOF when there is none.
func (r *Reader) Read() ([]string, error) {
	row, err := r.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	return row, nil
}

// Header consumes the next row and returns it as field names.
func (r *Reader) Header() ([]string, error) {
	return r.Read()
}

// Rows yields the remaining rows. Iteration stops after the first error,
// which is yielded with a nil row.
func (r *Reader) Rows() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			row, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// DictReader reads rows as maps keyed by the names found in the first row.
type DictReader struct {
	// RestVal fills fields missing from short rows.
	RestVal string

	r          *Reader
	fields     []string
	fieldsRead bool
}

// NewDictReader returns a DictReader over src.
func NewDictReader(src io.Reader, opts Options) (*DictReader, error) {
	r, err := NewReader(src, opts)
	if err != nil {
		return nil, err
	}
	return &DictReader{r: r}, nil
}

// Fieldnames returns the header row, reading it on first use. An empty
// source has no field names.
func (d *DictReader) Fieldnames() ([]string, error) {
	if !d.fieldsRead {
		fields, err := d.r.Header()
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		d.fields = fields
		d.fieldsRead = true
	}
	return slices.Clone(d.fields), nil
}

// Read returns the next row. Fields beyond the header are dropped.
func (d *DictReader) Read() (map[string]string, error) {
	fields, err := d.Fieldnames()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, io.EOF
	}
	record, err := d.r.Read()
	if err != nil {
		return nil, err
	}
	row := make(map[string]string, len(fields))
	for i, name := range fields {
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = d.RestVal
		}
	}
	return row, nil
}

// Rows yields the remaining rows, stopping after the first error.
func (d *DictReader) Rows() iter.Seq2[map[string]string, error] {
	return func(yield func(map[string]string, error) bool) {
		for {
			row, err := d.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}
