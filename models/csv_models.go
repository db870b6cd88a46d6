package models

// WriteOptions contains configuration for CSV file output
type WriteOptions struct {
	Directory  string
	Filename   string
	AppendDate bool   // Add a timestamp and random suffix to Filename
	Dialect    string // "excel", "excel-tab" or "unix"
	Encoding   string // IANA charset name, UTF-8 when empty
}
