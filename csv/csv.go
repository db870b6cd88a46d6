// Package csv wraps encoding/csv with dialects, text encodings, buffered and
// map-based writers, and file helpers.
package csv

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"apu/models"
)

// generateRandomString returns a random string of the specified length
func generateRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.IntN(len(charset))]
	}
	return string(result)
}

// outputFilename builds the file name for options, adding a timestamp and
// random suffix when AppendDate is set and ensuring a .csv extension
func outputFilename(options models.WriteOptions, now time.Time) string {
	filename := options.Filename
	if filename == "" {
		filename = "export"
	}
	if options.AppendDate {
		timestamp := now.Format("2006-01-02_150405")
		ext := filepath.Ext(filename)
		basename := filename[:len(filename)-len(ext)]
		filename = fmt.Sprintf("%s_%s_%s%s", basename, timestamp, generateRandomString(4), ext)
	}
	if filepath.Ext(filename) != ".csv" {
		filename = filename + ".csv"
	}
	return filename
}

func writerOptions(options models.WriteOptions) (Options, error) {
	dialect, err := ParseDialect(options.Dialect)
	if err != nil {
		return Options{}, err
	}
	return Options{Dialect: dialect, Encoding: options.Encoding}, nil
}

// WriteToCSV writes the given data to a new CSV file and returns its path
func WriteToCSV(data [][]string, headers []string, options models.WriteOptions) (string, error) {
	opts, err := writerOptions(options)
	if err != nil {
		return "", err
	}

	if options.Directory != "" {
		if err := os.MkdirAll(options.Directory, 0755); err != nil {
			return "", fmt.Errorf("error creating directory: %w", err)
		}
	}

	fullPath := filepath.Join(options.Directory, outputFilename(options, time.Now()))

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	if err := writeRows(file, data, headers, opts); err != nil {
		return "", err
	}

	return fullPath, nil
}

// AppendToCSV appends data to an existing CSV file or creates a new one if it doesn't exist
func AppendToCSV(data [][]string, filePath string, writeHeaders bool, headers []string, options models.WriteOptions) error {
	opts, err := writerOptions(options)
	if err != nil {
		return err
	}

	// Headers only go into a file we create
	fileExists := false
	if _, err := os.Stat(filePath); err == nil {
		fileExists = true
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening/creating CSV file: %w", err)
	}
	defer file.Close()

	if fileExists || !writeHeaders {
		headers = nil
	}
	return writeRows(file, data, headers, opts)
}

func writeRows(file *os.File, data [][]string, headers []string, opts Options) error {
	opts.BufferSize = len(data) + 1
	writer, err := NewBufferedWriter(file, opts)
	if err != nil {
		return err
	}

	if len(headers) > 0 {
		if err := writer.WriteRow(headers); err != nil {
			return fmt.Errorf("error writing headers to CSV: %w", err)
		}
	}
	for _, row := range data {
		if err := writer.WriteRow(row); err != nil {
			return fmt.Errorf("error writing data to CSV: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("error writing data to CSV: %w", err)
	}
	return nil
}

// ReadCSV reads all rows from a CSV file
func ReadCSV(filePath string, options models.WriteOptions) ([][]string, error) {
	opts, err := writerOptions(options)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	reader, err := NewReader(file, opts)
	if err != nil {
		return nil, err
	}

	var records [][]string
	for row, err := range reader.Rows() {
		if err != nil {
			return nil, fmt.Errorf("error reading CSV file: %w", err)
		}
		records = append(records, row)
	}

	return records, nil
}
