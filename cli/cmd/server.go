package cmd

import (
	"context"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"
	"github.com/wkalt/tileland/service"
	"github.com/wkalt/tileland/storage"
)

var (
	serverPort      int
	serverCacheSize int
	serverLogLevel  string
	serverDBPath    string
	serverBoltPath  string
	serverKVBackend string
	serverLenient   bool
	allowedOrigins  []string
	serverSharedKey string

	// Directory storage provider options
	serverDataDir string

	// S3 storage provider options
	serverS3Endpoint  string
	serverS3AccessKey string
	serverS3SecretKey string
	serverS3Bucket    string
	serverS3UseTLS    bool
	serverS3Region    string
)

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		bailf("invalid log level: %s", s)
	}
	return slog.LevelInfo
}

func storageProvider() storage.Provider {
	s3requested := serverS3Endpoint != "" ||
		serverS3AccessKey != "" ||
		serverS3SecretKey != "" ||
		serverS3Bucket != ""
	if serverDataDir != "" && s3requested {
		bailf("cannot specify both --data-dir and S3 options")
	}
	if s3requested {
		mc, err := minio.New(serverS3Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(serverS3AccessKey, serverS3SecretKey, ""),
			Secure: serverS3UseTLS,
			Region: serverS3Region,
		})
		if err != nil {
			bailf("error creating S3 client: %s", err)
		}
		return storage.NewS3Store(mc, serverS3Bucket)
	}
	if serverDataDir != "" {
		store, err := storage.NewDirectoryStore(serverDataDir)
		if err != nil {
			bailf("error creating directory store: %s", err)
		}
		return store
	}
	return nil
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the tileland server",
	Run: func(*cobra.Command, []string) {
		ctx := context.Background()
		svc := service.NewTilelandService()
		backend := service.KVBackend(serverKVBackend)
		store := storageProvider()
		if backend == service.KVBackendObject && store == nil {
			bailf("the object backend requires --data-dir or S3 options")
		}
		opts := []service.TilelandOption{
			service.WithPort(serverPort),
			service.WithCacheSize(serverCacheSize),
			service.WithLogLevel(parseLogLevel(serverLogLevel)),
			service.WithDatabasePath(serverDBPath),
			service.WithBoltPath(serverBoltPath),
			service.WithKVBackend(backend),
			service.WithSharedKey(serverSharedKey),
			service.WithLenientIDs(serverLenient),
		}
		if store != nil {
			opts = append(opts, service.WithStorageProvider(store))
		}
		if len(allowedOrigins) > 0 {
			opts = append(opts, service.WithAllowedOrigins(allowedOrigins))
		}
		if err := svc.Start(ctx, opts...); err != nil {
			bailf("Shutdown error: %s", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.PersistentFlags().IntVarP(&serverPort, "port", "p", 8089, "Port to listen on")
	serverCmd.PersistentFlags().IntVarP(&serverCacheSize, "cache-size", "c", 10000, "Merge values cached by the object backend")
	serverCmd.PersistentFlags().StringVarP(&serverDataDir, "data-dir", "d", "", "Data directory (for directory storage)")
	serverCmd.PersistentFlags().StringVarP(&serverDBPath, "db-path", "", "tileland.db", "token database location")
	serverCmd.PersistentFlags().StringVarP(&serverBoltPath, "bolt-path", "", "merges.bolt", "bolt database location (for the bolt backend)")
	serverCmd.PersistentFlags().StringVarP(&serverKVBackend, "kv-backend", "", "sqlite", "Merge store: sqlite, bolt or object")
	serverCmd.PersistentFlags().StringVarP(&serverLogLevel, "log-level", "l", "info", "Log level")
	serverCmd.PersistentFlags().StringVarP(&serverSharedKey, "shared-key", "", "", "shared authentication key")
	serverCmd.PersistentFlags().BoolVarP(&serverLenient, "lenient-ids", "", false, "Map malformed identifiers on lookups to the origin tile")

	serverCmd.PersistentFlags().StringSliceVarP(&allowedOrigins, "allowed-origins", "o", []string{}, "Allowed origins")

	serverCmd.PersistentFlags().StringVar(&serverS3Endpoint, "s3-endpoint", "", "S3 endpoint (for S3 storage)")
	serverCmd.PersistentFlags().StringVar(&serverS3AccessKey, "s3-access-key-id", "", "S3 access key ID (for S3 storage)")
	serverCmd.PersistentFlags().StringVar(&serverS3SecretKey, "s3-secret-key", "", "S3 secret key (for S3 storage)")
	serverCmd.PersistentFlags().StringVar(&serverS3Bucket, "s3-bucket", "", "S3 bucket (for S3 storage)")
	serverCmd.PersistentFlags().BoolVarP(&serverS3UseTLS, "s3-tls", "t", false, "Use TLS (for S3 storage)")
	serverCmd.PersistentFlags().StringVar(&serverS3Region, "s3-region", "", "S3 region")
}
