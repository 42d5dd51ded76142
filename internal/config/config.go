package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	AppName    = "Noteful"
	AppVersion = "1.0.0"
)

type Config struct {
	Addr     string
	DBPath   string
	DataDir  string
	LogLevel string
	NodeID   int64
}

func Load() Config {
	addr := os.Getenv("NOTEFUL_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dataDir := os.Getenv("NOTEFUL_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	path := os.Getenv("NOTEFUL_DB_PATH")
	if path == "" {
		path = filepath.Join(dataDir, "noteful.db")
	}
	logLevel := os.Getenv("NOTEFUL_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	nodeID := int64(1)
	if raw := os.Getenv("NOTEFUL_NODE_ID"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			nodeID = parsed
		}
	}

	return Config{
		Addr:     addr,
		DBPath:   filepath.Clean(path),
		DataDir:  filepath.Clean(dataDir),
		LogLevel: logLevel,
		NodeID:   nodeID,
	}
}
