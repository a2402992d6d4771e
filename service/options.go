package service

import (
	"log/slog"

	"github.com/wkalt/tileland/storage"
)

// KVBackend names the store holding merge records and coverage links.
type KVBackend string

const (
	// KVBackendSQLite keeps merge state in the service's sqlite database.
	KVBackendSQLite KVBackend = "sqlite"
	// KVBackendBolt keeps merge state in a separate bbolt file.
	KVBackendBolt KVBackend = "bolt"
	// KVBackendObject keeps merge state in the configured storage provider.
	KVBackendObject KVBackend = "object"
)

// TilelandOption is a functional option for the tileland service.
type TilelandOption func(*TilelandOptions)

// TilelandOptions contains options for the tileland service.
type TilelandOptions struct {
	Port            int
	LogLevel        slog.Level
	DatabasePath    string
	BoltPath        string
	KVBackend       KVBackend
	StorageProvider storage.Provider
	CacheSize       int
	AllowedOrigins  []string
	SharedKey       string
	LenientIDs      bool
}

// WithPort sets the port to listen on.
func WithPort(port int) TilelandOption {
	return func(opts *TilelandOptions) {
		opts.Port = port
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level slog.Level) TilelandOption {
	return func(opts *TilelandOptions) {
		opts.LogLevel = level
	}
}

// WithDatabasePath sets the path of the sqlite database holding tokens.
func WithDatabasePath(path string) TilelandOption {
	return func(opts *TilelandOptions) {
		opts.DatabasePath = path
	}
}

// WithBoltPath sets the path of the bbolt file used by the bolt backend.
func WithBoltPath(path string) TilelandOption {
	return func(opts *TilelandOptions) {
		opts.BoltPath = path
	}
}

// WithKVBackend selects the store for merge records and coverage links.
func WithKVBackend(backend KVBackend) TilelandOption {
	return func(opts *TilelandOptions) {
		opts.KVBackend = backend
	}
}

// WithStorageProvider sets the storage provider used by the object backend.
func WithStorageProvider(provider storage.Provider) TilelandOption {
	return func(opts *TilelandOptions) {
		opts.StorageProvider = provider
	}
}

// WithCacheSize sets the number of merge values cached by the object backend.
func WithCacheSize(n int) TilelandOption {
	return func(opts *TilelandOptions) {
		opts.CacheSize = n
	}
}

// WithAllowedOrigins sets the allowed origins for CORS requests.
func WithAllowedOrigins(origins []string) TilelandOption {
	return func(opts *TilelandOptions) {
		opts.AllowedOrigins = origins
	}
}

// WithSharedKey sets a bearer token required on every request.
func WithSharedKey(key string) TilelandOption {
	return func(opts *TilelandOptions) {
		opts.SharedKey = key
	}
}

// WithLenientIDs maps malformed identifiers on lookups to the origin tile
// instead of rejecting them.
func WithLenientIDs(lenient bool) TilelandOption {
	return func(opts *TilelandOptions) {
		opts.LenientIDs = lenient
	}
}
