package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"apu/config"
	"apu/csv"
	"apu/dt"
	"apu/executor"
	"apu/models"

	"golang.org/x/text/language"
)

// summaryColumns heads the export written when no query is given
var summaryColumns = []string{"period_start", "period_end", "label", "days", "working_days"}

func main() {
	// Database and CSV defaults come from .env and the environment
	cfg := config.Load()

	workloadFile := flag.String("workload", "", "JSON workload file")
	period := flag.String("period", "", "Period to step by: day, week, month or year (default month)")
	from := flag.String("from", "", "First date of the export (default: January 1st of last month's year)")
	to := flag.String("to", "", "Last date of the export (default: end of last month)")
	query := flag.String("query", "", "SQL query run per period, may use @start, @end and @next")
	targets := flag.String("targets", "", "Comma separated database hosts (or sqlite files)")
	outputDir := flag.String("outdir", "", "Directory for output CSV files (default ./output)")
	outputFile := flag.String("outfile", "", "Output CSV filename, - for stdout (default periods)")
	dialect := flag.String("dialect", "", "CSV dialect: excel, excel-tab or unix")
	encoding := flag.String("encoding", "", "Output charset, e.g. utf-8 or iso-8859-1")
	lang := flag.String("lang", "en", "Language of period labels (en or fr)")

	flag.Parse()

	workload := &models.Workload{}
	if *workloadFile != "" {
		loaded, err := models.LoadWorkloadConfig(*workloadFile)
		if err != nil {
			log.Fatalf("Failed to load workload: %v", err)
		}
		workload = loaded
	}

	overrides := models.Workload{
		Period:     *period,
		From:       *from,
		To:         *to,
		Query:      *query,
		OutputDir:  *outputDir,
		OutputFile: *outputFile,
		Dialect:    *dialect,
		Encoding:   *encoding,
	}
	if *targets != "" {
		overrides.Targets = splitList(*targets)
	}
	mergeWorkload(workload, overrides)
	applyDefaults(workload, cfg)

	tag, err := language.Parse(*lang)
	if err != nil {
		log.Fatalf("Invalid -lang %q: %v", *lang, err)
	}

	r, err := buildRange(workload)
	if err != nil {
		log.Fatalf("Invalid period range: %v", err)
	}

	startTime := time.Now()
	log.Printf("Starting export of %s %s at %s", r.Period.Plural(), r, startTime.Format(time.RFC3339))

	var headers []string
	var rows [][]string
	if workload.Query == "" {
		headers, rows = summary(r, tag)
	} else {
		if cfg.DB.Database == "" && cfg.DB.Type != "sqlite" {
			log.Fatal("Database name is required. Set DB_NAME in .env file.")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result := executor.QueryPeriods(ctx, workload, cfg.DB, r, nil)
		log.Printf("Query finished: %s", result.Describe())
		if !result.HasResults {
			log.Fatalf("No results to write (%d error(s))", result.ErrorCount)
		}
		headers, rows = result.Columns, result.Rows
	}

	outputPath, err := writeOutput(workload, headers, rows)
	if err != nil {
		log.Fatalf("Failed to write data to CSV: %v", err)
	}

	if outputPath != "" {
		absPath, _ := filepath.Abs(outputPath)
		log.Printf("Data successfully written to CSV file: %s", absPath)
	}
	log.Printf("Process completed in %v", time.Since(startTime))
}

// mergeWorkload copies every non-empty field of src over dst
func mergeWorkload(dst *models.Workload, src models.Workload) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.Period, src.Period)
	set(&dst.From, src.From)
	set(&dst.To, src.To)
	set(&dst.Query, src.Query)
	set(&dst.OutputDir, src.OutputDir)
	set(&dst.OutputFile, src.OutputFile)
	set(&dst.Dialect, src.Dialect)
	set(&dst.Encoding, src.Encoding)
	if len(src.Targets) > 0 {
		dst.Targets = src.Targets
	}
	if src.Workers > 0 {
		dst.Workers = src.Workers
	}
}

// applyDefaults fills what neither the workload nor the flags set
func applyDefaults(w *models.Workload, cfg config.Config) {
	if w.Period == "" {
		w.Period = dt.Month.String()
	}
	if w.OutputDir == "" {
		w.OutputDir = "./output"
	}
	if w.OutputFile == "" {
		w.OutputFile = "periods"
	}
	if w.Dialect == "" {
		w.Dialect = cfg.Dialect
	}
	if w.Encoding == "" {
		w.Encoding = cfg.Encoding
	}
	if w.Workers <= 0 {
		w.Workers = cfg.Workers
	}
	if len(w.Targets) == 0 {
		if cfg.DB.Type == "sqlite" {
			w.Targets = []string{cfg.DB.Database}
		} else {
			w.Targets = []string{cfg.DB.Host}
		}
	}
}

// buildRange resolves the workload's period and dates. Without dates the
// range covers the current year up to the end of last month.
func buildRange(w *models.Workload) (dt.Range, error) {
	period, err := dt.ParsePeriod(w.Period)
	if err != nil {
		return dt.Range{}, err
	}

	var start, end time.Time
	if w.From != "" {
		if start, err = dt.ParseDate(w.From); err != nil {
			return dt.Range{}, err
		}
	}
	if w.To != "" {
		if end, err = dt.ParseDate(w.To); err != nil {
			return dt.Range{}, err
		}
	}

	switch {
	case start.IsZero() && end.IsZero():
		start, end = dt.YearToLastMonth(time.Time{})
	case start.IsZero():
		start = dt.StartOfYear(end)
	case end.IsZero():
		end = dt.StartOfDay(time.Time{})
	}
	if start.After(end) {
		return dt.Range{}, fmt.Errorf("from %s is after to %s", start.Format(dt.DateLayout), end.Format(dt.DateLayout))
	}
	return dt.NewRange(period, start, end), nil
}

// summary lists each period with its length in days and working days
func summary(r dt.Range, tag language.Tag) ([]string, [][]string) {
	var rows [][]string
	for iv := range r.Intervals() {
		rows = append(rows, []string{
			iv.Start.Format(dt.DateLayout),
			iv.End.Format(dt.DateLayout),
			label(r.Period, iv.Start, tag),
			strconv.Itoa(iv.Days()),
			strconv.Itoa(dt.WorkingDays(iv.Start, iv.End)),
		})
	}
	return summaryColumns, rows
}

func label(p dt.Period, start time.Time, tag language.Tag) string {
	switch p {
	case dt.Week:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case dt.Month:
		return fmt.Sprintf("%s %d", dt.MonthName(start.Month(), tag), start.Year())
	case dt.Year:
		return strconv.Itoa(start.Year())
	}
	return start.Format(dt.DateLayout)
}

// writeOutput writes to stdout when the output file is "-" and returns an
// empty path in that case
func writeOutput(w *models.Workload, headers []string, rows [][]string) (string, error) {
	options := models.WriteOptions{
		Directory:  w.OutputDir,
		Filename:   w.OutputFile,
		AppendDate: true,
		Dialect:    w.Dialect,
		Encoding:   w.Encoding,
	}
	if w.OutputFile != "-" {
		return csv.WriteToCSV(rows, headers, options)
	}

	dialect, err := csv.ParseDialect(w.Dialect)
	if err != nil {
		return "", err
	}
	out, err := csv.NewBufferedWriter(os.Stdout, csv.Options{Dialect: dialect, Encoding: w.Encoding})
	if err != nil {
		return "", err
	}
	if err := out.WriteRow(headers); err != nil {
		return "", err
	}
	if err := out.WriteRows(rows); err != nil {
		return "", err
	}
	return "", out.Close()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
