package core

import (
	"fmt"
	"os"

	"librarycore/internal/infra/persistence/fs"
	"librarycore/internal/infra/persistence/memory"
	"librarycore/internal/infra/persistence/postgres"
	"librarycore/internal/infra/persistence/sqlite"
	"librarycore/pkg/domain"
)

// StorageDriver identifies a concrete durable backend implementation.
type StorageDriver string

const (
	StorageFS       StorageDriver = "fs"       // one JSON file per collection (default)
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenBackend selects a durable backend using environment variables.
// Defaults to the filesystem backend when unset.
//
//	LIBRARYCORE_STORAGE_DRIVER: fs|memory|sqlite|postgres (default fs)
//	LIBRARYCORE_DATA_DIR: directory for JSON snapshots when driver=fs (default ./data)
//	LIBRARYCORE_SQLITE_PATH: path to sqlite file (default ./librarycore.db)
//	LIBRARYCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenBackend() (domain.Backend, error) {
	driver := os.Getenv("LIBRARYCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageFS)
	}
	switch StorageDriver(driver) {
	case StorageFS:
		return fs.New(os.Getenv("LIBRARYCORE_DATA_DIR"))
	case StorageMemory:
		return memory.New(), nil
	case StorageSQLite:
		return sqlite.New(os.Getenv("LIBRARYCORE_SQLITE_PATH"))
	case StoragePostgres:
		return postgres.New(os.Getenv("LIBRARYCORE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
