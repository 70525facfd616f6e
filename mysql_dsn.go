package main

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Endpoint identifies one database for the duration of one operation.
type Endpoint struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// Addr returns the host:port pair for logging.
func (e Endpoint) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// dsn builds a go-sql-driver DSN with the read options the dump engine
// relies on: parsed times in UTC and interpolated parameters.
func (e Endpoint) dsn() string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = e.Addr()
	cfg.User = e.User
	cfg.Passwd = e.Password
	cfg.DBName = e.Database
	cfg.ParseTime = true
	cfg.InterpolateParams = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}
