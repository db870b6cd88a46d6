package csv

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding resolves an IANA charset name such as "utf-8", "iso-8859-1" or
// "windows-1252". An empty name selects UTF-8.
func Encoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: %q has no decoder", ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

// decode wraps r so that it yields UTF-8. A leading byte order mark takes
// precedence over the configured encoding and is stripped.
func decode(r io.Reader, name string) (io.Reader, error) {
	enc, err := Encoding(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// encode wraps w so that UTF-8 input is written in the named encoding. The
// returned closer flushes the transformer and is nil for UTF-8.
func encode(w io.Writer, name string) (io.Writer, io.Closer, error) {
	enc, err := Encoding(name)
	if err != nil {
		return nil, nil, err
	}
	if enc == unicode.UTF8 {
		return w, nil, nil
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw, nil
}
