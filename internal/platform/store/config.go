package store

import "time"

// Config selects and configures the backends Open connects
type Config struct {
	// AppName is reported to postgres as application_name
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig points at the rewrite table database
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	// LogSQL traces every statement; statements slower than SlowQuery log at warn
	LogSQL    bool
	SlowQuery time.Duration

	// ConnectRetries and PingTimeout bound the boot ping loop; zero picks 20 tries of 3s
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig points at the click event database
type CHConfig struct {
	Enabled bool
	URL     string
	Role    string // "api" or "cli", reported in client info
	Tag     string // build version, reported in client info
}
