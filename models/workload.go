package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// Workload describes a period export loaded from a JSON file
type Workload struct {
	Workers    int      `json:"workers"`
	Targets    []string `json:"targets"`  // Database hosts, queried in parallel
	Query      string   `json:"query"`    // SQL query, bound to each period's start and end
	Period     string   `json:"period"`   // day, week, month or year
	From       string   `json:"from"`     // First date of the export
	To         string   `json:"to"`       // Last date of the export
	OutputDir  string   `json:"outdir"`   // Optional output directory
	OutputFile string   `json:"outfile"`  // Optional output file name
	Dialect    string   `json:"dialect"`  // Optional CSV dialect
	Encoding   string   `json:"encoding"` // Optional output charset
}

// LoadWorkloadConfig reads and parses the workload configuration file
func LoadWorkloadConfig(filePath string) (*Workload, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading workload file: %w", err)
	}

	var workload Workload
	if err := json.Unmarshal(data, &workload); err != nil {
		return nil, fmt.Errorf("error parsing workload file %s: %w", filePath, err)
	}

	return &workload, nil
}
