package csv

import "errors"

var (
	// ErrUnknownDialect is returned by ParseDialect for unknown names.
	ErrUnknownDialect = errors.New("csv: unknown dialect")
	// ErrUnsupportedEncoding is returned when a charset cannot be resolved.
	ErrUnsupportedEncoding = errors.New("csv: unsupported encoding")
	// ErrExtraKeys is returned by DictWriter for keys outside its columns.
	ErrExtraKeys = errors.New("csv: row has keys not in columns")
)
