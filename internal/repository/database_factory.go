package repository

import (
	"fmt"
	"strings"
)

// DatabaseType represents different database backend options
type DatabaseType string

const (
	DatabaseTypeBadger DatabaseType = "badger"
	DatabaseTypeBolt   DatabaseType = "bolt"
)

// ParseDatabaseType converts a configuration value into a DatabaseType.
func ParseDatabaseType(value string) (DatabaseType, error) {
	switch DatabaseType(strings.ToLower(strings.TrimSpace(value))) {
	case DatabaseTypeBadger:
		return DatabaseTypeBadger, nil
	case DatabaseTypeBolt, "":
		return DatabaseTypeBolt, nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", value)
	}
}

// NewInventoryRepository creates a new repository with the specified database type
//
// Database Types:
// - badger: LSM-tree database in a directory, fast writes, large value logs
// - bolt: single-file B+ tree database, compact, suits a household dataset (default)
func NewInventoryRepository(dbPath string, dbType DatabaseType) (InventoryRepository, error) {
	switch dbType {
	case DatabaseTypeBolt:
		if !strings.HasSuffix(dbPath, ".bolt") {
			dbPath = dbPath + ".bolt"
		}
		return NewBoltInventoryRepository(dbPath)

	case DatabaseTypeBadger:
		return NewBadgerInventoryRepository(dbPath)

	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}
