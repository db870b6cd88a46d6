package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"apu/mysql"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NullValue is written for SQL NULLs in query results
const NullValue = "NULL"

// Config holds database configuration
type Config struct {
	Type     string // "mysql", "postgres" or "sqlite"
	Host     string
	Port     int
	User     string
	Password string
	Database string // Database name, or file path for sqlite
	SSLMode  string // For PostgreSQL
}

// Connection pool settings applied to every target. Each export holds one
// pool per target, so the pool stays small.
const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 3 * time.Minute
)

// QueryResult represents a query result set
type QueryResult struct {
	Columns []string
	Rows    [][]string
}

// Connect establishes a connection to the database using GORM
func Connect(config Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var dialector gorm.Dialector
	switch config.Type {
	case "mysql":
		dialector = gormmysql.Open(mysql.DSN(mysql.DBConfig{
			Host:     config.Host,
			Port:     config.Port,
			User:     config.User,
			Password: config.Password,
			Database: config.Database,
		}))

	case "postgres":
		sslMode := config.SSLMode
		if sslMode == "" {
			sslMode = "disable" // Default SSL mode
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
			config.Host, config.User, config.Password, config.Database, config.Port, sslMode)
		dialector = postgres.Open(dsn)

	case "sqlite":
		if config.Database == "" {
			return nil, fmt.Errorf("sqlite requires a database file path")
		}
		dialector = sqlite.Open(config.Database)

	default:
		return nil, fmt.Errorf("unsupported database type: %s (supported types: mysql, postgres, sqlite)", config.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("error opening database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error accessing underlying SQL DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return db, nil
}

// ExecuteRawQuery executes the given SQL query and returns the result with
// every value rendered as a string. Named arguments (@start) are bound from
// a map argument.
func ExecuteRawQuery(ctx context.Context, db *gorm.DB, query string, args ...interface{}) (*QueryResult, error) {
	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("error getting column names: %w", err)
	}

	result := &QueryResult{
		Columns: columns,
		Rows:    [][]string{},
	}

	columnCount := len(columns)
	values := make([]interface{}, columnCount)
	valuePtrs := make([]interface{}, columnCount)

	for rows.Next() {
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}

		rowStrings := make([]string, columnCount)
		for i, val := range values {
			rowStrings[i] = formatValue(val)
		}

		result.Rows = append(result.Rows, rowStrings)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	return result, nil
}

func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return NullValue
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Close releases the connection pool of db. A nil db is a no-op.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return sqlDB.Close()
}
