package csv

import (
	"bytes"
	"errors"
	"testing"
)

func TestBufferedWriterDefaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := NewBufferedWriter(&buf, Options{})
	if err != nil {
		t.Fatalf("NewBufferedWriter() error = %v", err)
	}
	if err := w.WriteRows([][]string{{"a", "b"}, {"c", "d e"}}); err != nil {
		t.Fatalf("WriteRows() error = %v", err)
	}
	if got, want := buf.String(), "a\tb\r\nc\td e\r\n"; got != want {
		t.Fatalf("unexpected output:\n got: %q\nwant: %q", got, want)
	}
}

func TestBufferedWriterBatches(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := NewBufferedWriter(&buf, Options{Dialect: Unix, BufferSize: 2})
	if err != nil {
		t.Fatalf("NewBufferedWriter() error = %v", err)
	}

	for _, row := range [][]string{{"1"}, {"2"}} {
		if err := w.WriteRow(row); err != nil {
			t.Fatalf("WriteRow() error = %v", err)
		}
	}
	if w.Buffered() != 2 || buf.Len() != 0 {
		t.Fatalf("expected 2 buffered rows and no output, got %d rows and %q", w.Buffered(), buf.String())
	}

	if err := w.WriteRow([]string{"3"}); err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}
	if w.Buffered() != 0 {
		t.Fatalf("expected buffer to be flushed, %d rows left", w.Buffered())
	}
	if got, want := buf.String(), "1\n2\n3\n"; got != want {
		t.Fatalf("unexpected output:\n got: %q\nwant: %q", got, want)
	}

	if err := w.WriteRow([]string{"4"}); err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got, want := buf.String(), "1\n2\n3\n4\n"; got != want {
		t.Fatalf("unexpected output after Close:\n got: %q\nwant: %q", got, want)
	}
}

func TestBufferedWriterCopiesRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := NewBufferedWriter(&buf, Options{Dialect: Unix})
	if err != nil {
		t.Fatalf("NewBufferedWriter() error = %v", err)
	}
	row := []string{"before"}
	if err := w.WriteRow(row); err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}
	row[0] = "after"
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := buf.String(); got != "before\n" {
		t.Fatalf("got %q", got)
	}
}

func TestBufferedWriterEncoding(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := NewBufferedWriter(&buf, Options{Dialect: Unix, Encoding: "iso-8859-1"})
	if err != nil {
		t.Fatalf("NewBufferedWriter() error = %v", err)
	}
	if err := w.WriteRows([][]string{{"Février", "Août"}}); err != nil {
		t.Fatalf("WriteRows() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	want := []byte("F\xe9vrier,Ao\xfbt\n")
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("unexpected bytes:\n got: %q\nwant: %q", buf.Bytes(), want)
	}
}

func TestDictWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := NewDictWriter(&buf, []string{"month", "total"}, Options{Dialect: Unix})
	if err != nil {
		t.Fatalf("NewDictWriter() error = %v", err)
	}
	w.RestVal = "0"

	if err := w.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	rows := []map[string]string{
		{"month": "2020-01", "total": "12"},
		nil,
		{"month": "2020-02"},
	}
	if err := w.WriteRows(rows); err != nil {
		t.Fatalf("WriteRows() error = %v", err)
	}

	err = w.WriteRow(map[string]string{"month": "2020-03", "zeta": "1", "alpha": "2"})
	if !errors.Is(err, ErrExtraKeys) {
		t.Fatalf("expected ErrExtraKeys, got %v", err)
	}
	if err.Error() != "csv: row has keys not in columns: alpha, zeta" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got, want := buf.String(), "month,total\n2020-01,12\n2020-02,0\n"; got != want {
		t.Fatalf("unexpected output:\n got: %q\nwant: %q", got, want)
	}
}

func TestWriterUnknownEncoding(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewBufferedWriter(&buf, Options{Encoding: "klingon"}); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("expected ErrUnsupportedEncoding, got %v", err)
	}
	if _, err := NewDictWriter(&buf, []string{"a"}, Options{Encoding: "klingon"}); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("expected ErrUnsupportedEncoding, got %v", err)
	}
}

func TestParseDialect(t *testing.T) {
	t.Parallel()

	tests := map[string]Dialect{
		"":          Excel,
		"excel":     Excel,
		"Excel-Tab": ExcelTab,
		"unix":      Unix,
	}
	for in, want := range tests {
		got, err := ParseDialect(in)
		if err != nil {
			t.Fatalf("ParseDialect(%q) error = %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseDialect(%q) = %+v, want %+v", in, got, want)
		}
	}
	if _, err := ParseDialect("pipes"); !errors.Is(err, ErrUnknownDialect) {
		t.Fatalf("expected ErrUnknownDialect, got %v", err)
	}
}
