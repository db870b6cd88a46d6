// Package mysql builds MySQL connection strings for the database package.
package mysql

import (
	"net"
	"strconv"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
)

// DBConfig holds MySQL connection settings
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// DSN returns the driver connection string for config. Times are parsed into
// time.Time in the local zone.
func DSN(config DBConfig) string {
	cfg := gomysql.NewConfig()
	cfg.User = config.User
	cfg.Passwd = config.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	cfg.DBName = config.Database
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Timeout = 10 * time.Second
	return cfg.FormatDSN()
}
