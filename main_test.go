package main

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"apu/config"
	"apu/database"
	"apu/dt"
	"apu/models"

	"golang.org/x/text/language"
)

func TestBuildRange(t *testing.T) {
	t.Parallel()

	r, err := buildRange(&models.Workload{Period: "months", From: "2020-02-01", To: "2020-03-31"})
	if err != nil {
		t.Fatalf("buildRange() error = %v", err)
	}
	if r.Period != dt.Month {
		t.Fatalf("period = %v", r.Period)
	}
	if got := r.String(); got != "[2020-02-01;2020-03-31]" {
		t.Fatalf("range = %s", got)
	}

	r, err = buildRange(&models.Workload{Period: "week", To: "2020-01-08"})
	if err != nil {
		t.Fatalf("buildRange() error = %v", err)
	}
	if got := r.String(); got != "[2019-12-30;2020-01-12]" {
		t.Fatalf("range from start of year = %s", got)
	}
}

func TestBuildRangeErrors(t *testing.T) {
	t.Parallel()

	if _, err := buildRange(&models.Workload{Period: "fortnight"}); !errors.Is(err, dt.ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}
	if _, err := buildRange(&models.Workload{Period: "day", From: "2020-03-01", To: "2020-02-01"}); err == nil {
		t.Fatalf("expected error for inverted dates")
	}
	if _, err := buildRange(&models.Workload{Period: "day", From: "yesterday-ish"}); err == nil {
		t.Fatalf("expected error for unparsable date")
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	r := dt.MonthRange(time.Date(2020, 2, 10, 0, 0, 0, 0, time.UTC), time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC))

	headers, rows := summary(r, language.French)
	if !reflect.DeepEqual(headers, summaryColumns) {
		t.Fatalf("unexpected headers %v", headers)
	}
	want := [][]string{
		{"2020-02-01", "2020-02-29", "Février 2020", "29", "20"},
		{"2020-03-01", "2020-03-31", "Mars 2020", "31", "22"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected rows:\n got: %v\nwant: %v", rows, want)
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	day := time.Date(2020, 2, 3, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		p    dt.Period
		want string
	}{
		{dt.Day, "2020-02-03"},
		{dt.Week, "2020-W06"},
		{dt.Month, "February 2020"},
		{dt.Year, "2020"},
	}
	for _, tc := range tests {
		if got := label(tc.p, day, language.English); got != tc.want {
			t.Errorf("label(%v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestMergeAndDefaults(t *testing.T) {
	t.Parallel()

	w := &models.Workload{Period: "week", Query: "SELECT 1", Targets: []string{"db1"}, Workers: 2}
	mergeWorkload(w, models.Workload{Period: "day", Encoding: "iso-8859-1"})

	cfg := config.Config{
		DB:       database.Config{Type: "mysql", Host: "localhost"},
		Dialect:  "excel-tab",
		Encoding: "utf-8",
		Workers:  4,
	}
	applyDefaults(w, cfg)

	want := &models.Workload{
		Period:     "day",
		Query:      "SELECT 1",
		Targets:    []string{"db1"},
		Workers:    2,
		OutputDir:  "./output",
		OutputFile: "periods",
		Dialect:    "excel-tab",
		Encoding:   "iso-8859-1",
	}
	if !reflect.DeepEqual(w, want) {
		t.Fatalf("unexpected workload:\n got: %+v\nwant: %+v", w, want)
	}

	empty := &models.Workload{}
	applyDefaults(empty, config.Config{DB: database.Config{Type: "sqlite", Database: "local.db"}})
	if !reflect.DeepEqual(empty.Targets, []string{"local.db"}) || empty.Period != "month" {
		t.Fatalf("unexpected defaults %+v", empty)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	if got := splitList(" db1, ,db2,"); !reflect.DeepEqual(got, []string{"db1", "db2"}) {
		t.Fatalf("got %v", got)
	}
}
