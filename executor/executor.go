// Package executor runs a query once per calendar period against one or more
// database targets in parallel
package executor

import (
	"context"
	"fmt"
	"log"
	"sync"

	"apu/database"
	"apu/dt"
	"apu/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Leading columns added to every result row
var (
	PeriodColumns = []string{"period_start", "period_end"}
	TargetColumn  = "target"
)

// ExecutionResult represents the aggregated results of parallel query execution
type ExecutionResult struct {
	Rows       [][]string
	Columns    []string
	ErrorCount int
	HasResults bool
}

// Connector opens a database for a target. database.Connect is used in
// production.
type Connector func(database.Config) (*gorm.DB, error)

type job struct {
	target   string
	db       *gorm.DB
	interval dt.Interval
}

// TargetConfig returns dbConfig pointed at target: the host for server
// databases, the file path for sqlite
func TargetConfig(dbConfig database.Config, target string) database.Config {
	if dbConfig.Type == "sqlite" {
		dbConfig.Database = target
	} else {
		dbConfig.Host = target
	}
	return dbConfig
}

// QueryArgs returns the named arguments bound for an interval: @start (first
// day), @end (last day) and @next (first day of the following period, for
// half-open comparisons on timestamps)
func QueryArgs(period dt.Period, iv dt.Interval) map[string]interface{} {
	return map[string]interface{}{
		"start": iv.Start,
		"end":   iv.End,
		"next":  period.Next(iv.Start),
	}
}

// QueryPeriods executes the workload query for every target and every
// period of r, with at most workload.Workers queries in flight. Rows are
// returned in period order, then target order, each prefixed with the period
// bounds (and the target when there are several).
func QueryPeriods(ctx context.Context, workload *models.Workload, dbConfig database.Config, r dt.Range, connect Connector) ExecutionResult {
	if connect == nil {
		connect = database.Connect
	}
	workers := workload.Workers
	if workers < 1 {
		workers = 1
	}

	var intervals []dt.Interval
	for iv := range r.Intervals() {
		intervals = append(intervals, iv)
	}

	errorCount := 0
	dbs := make(map[string]*gorm.DB, len(workload.Targets))
	for _, target := range workload.Targets {
		db, err := connect(TargetConfig(dbConfig, target))
		if err != nil {
			log.Printf("Error during processing: failed to connect to %s: %v", target, err)
			errorCount++
			continue
		}
		dbs[target] = db
	}
	defer func() {
		for target, db := range dbs {
			if err := database.Close(db); err != nil {
				log.Printf("Error closing database connection to %s: %v", target, err)
			}
		}
	}()

	var jobs []job
	for _, iv := range intervals {
		for _, target := range workload.Targets {
			if db, ok := dbs[target]; ok {
				jobs = append(jobs, job{target: target, db: db, interval: iv})
			}
		}
	}

	log.Printf("Querying %d target(s) over %d %s with %d worker(s)",
		len(dbs), len(intervals), r.Period.Plural(), workers)

	results := make([]*database.QueryResult, len(jobs))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)

	for i, j := range jobs {
		g.Go(func() error {
			result, err := database.ExecuteRawQuery(ctx, j.db, workload.Query, QueryArgs(r.Period, j.interval))
			if err != nil {
				log.Printf("Error during processing: query failed on %s for %s: %v",
					j.target, j.interval.Start.Format(dt.DateLayout), err)
				mu.Lock()
				errorCount++
				mu.Unlock()
				return nil
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	if errorCount > 0 {
		log.Printf("Warning: Encountered %d error(s) during parallel execution.", errorCount)
	}

	return aggregate(jobs, results, len(workload.Targets) > 1, errorCount)
}

func aggregate(jobs []job, results []*database.QueryResult, withTarget bool, errorCount int) ExecutionResult {
	var allRows [][]string
	var columns []string
	hasResults := false

	for i, result := range results {
		if result == nil {
			continue
		}
		if !hasResults && len(result.Columns) > 0 {
			columns = append(columns, PeriodColumns...)
			if withTarget {
				columns = append(columns, TargetColumn)
			}
			columns = append(columns, result.Columns...)
			hasResults = true
		}

		prefix := []string{
			jobs[i].interval.Start.Format(dt.DateLayout),
			jobs[i].interval.End.Format(dt.DateLayout),
		}
		if withTarget {
			prefix = append(prefix, jobs[i].target)
		}
		for _, row := range result.Rows {
			full := make([]string, 0, len(prefix)+len(row))
			full = append(full, prefix...)
			full = append(full, row...)
			allRows = append(allRows, full)
		}
	}

	return ExecutionResult{
		Rows:       allRows,
		Columns:    columns,
		ErrorCount: errorCount,
		HasResults: hasResults,
	}
}

// Describe summarises an execution for logs
func (r ExecutionResult) Describe() string {
	return fmt.Sprintf("%d row(s), %d error(s)", len(r.Rows), r.ErrorCount)
}
