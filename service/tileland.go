package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/wkalt/tileland/kvstore"
	"github.com/wkalt/tileland/landmgr"
	"github.com/wkalt/tileland/routes"
	"github.com/wkalt/tileland/tokens"
	"github.com/wkalt/tileland/util"
	"github.com/wkalt/tileland/util/log"
	"go.etcd.io/bbolt"
	"golang.org/x/sync/errgroup"
)

/*
This file is the main entrypoint for tileland server startup.
*/

////////////////////////////////////////////////////////////////////////////////

const (
	recordsName = "merge_records"
	linksName   = "coverage_links"

	shutdownGracePeriod = 10 * time.Second
)

type Tileland struct{}

// NewTilelandService creates a new tileland service.
func NewTilelandService() *Tileland {
	return &Tileland{}
}

// Start starts the tileland service. It returns when ctx is canceled or the
// process receives SIGINT or SIGTERM, after draining open connections.
func (tl *Tileland) Start(ctx context.Context, options ...TilelandOption) error {
	opts, err := readOpts(options...)
	if err != nil {
		return fmt.Errorf("failed to read options: %w", err)
	}

	slog.SetLogLoggerLevel(opts.LogLevel)
	log.Debugf(ctx, "Debug logging enabled")
	if err := util.EnsureDirectoryExists(filepath.Dir(opts.DatabasePath)); err != nil {
		return fmt.Errorf("failed to ensure database directory exists: %w", err)
	}
	dbpath := opts.DatabasePath + "?_journal=WAL&mode=rwc"
	log.Infof(ctx, "Opening database at %s", dbpath)
	db, err := sql.Open("sqlite3", dbpath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err = db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database at %s: %w", dbpath, err)
	}

	registry, err := tokens.NewSQLRegistry(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to open token registry: %w", err)
	}
	records, links, closer, err := openStores(ctx, db, opts)
	if err != nil {
		return err
	}
	defer closer()

	var lmopts []landmgr.Option
	if opts.LenientIDs {
		lmopts = append(lmopts, landmgr.WithLenientIDs())
	}
	lm := landmgr.NewLandManager(registry, records, links, lmopts...)

	log.Infof(ctx, "Building routes with allowed origins %+v", opts.AllowedOrigins)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           routes.MakeRoutes(lm, opts.AllowedOrigins, opts.SharedKey),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigctx)
	g.Go(func() error {
		log.Infow(ctx, "Starting server", "port", opts.Port, "kv", opts.KVBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infof(ctx, "Allowing %s for existing connections to close", shutdownGracePeriod)
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGracePeriod)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		log.Infof(ctx, "Server stopped")
		return nil
	})
	return g.Wait()
}

func openStores(
	ctx context.Context,
	db *sql.DB,
	opts *TilelandOptions,
) (records kvstore.Store, links kvstore.Store, closer func(), err error) {
	closer = func() {}
	switch opts.KVBackend {
	case KVBackendSQLite:
		if records, err = kvstore.NewSQLStore(ctx, db, recordsName); err != nil {
			return nil, nil, nil, err
		}
		if links, err = kvstore.NewSQLStore(ctx, db, linksName); err != nil {
			return nil, nil, nil, err
		}
	case KVBackendBolt:
		log.Infof(ctx, "Opening bolt database at %s", opts.BoltPath)
		bdb, err := bbolt.Open(opts.BoltPath, 0600, &bbolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open bolt database: %w", err)
		}
		closer = func() {
			if err := bdb.Close(); err != nil {
				log.Errorf(ctx, "failed to close bolt database: %s", err)
			}
		}
		if records, err = kvstore.NewBoltStore(bdb, recordsName); err != nil {
			closer()
			return nil, nil, nil, err
		}
		if links, err = kvstore.NewBoltStore(bdb, linksName); err != nil {
			closer()
			return nil, nil, nil, err
		}
	case KVBackendObject:
		log.Infof(ctx, "Storing merges in %s", opts.StorageProvider)
		records = kvstore.NewObjectStore(opts.StorageProvider, recordsName, opts.CacheSize)
		links = kvstore.NewObjectStore(opts.StorageProvider, linksName, opts.CacheSize)
	default:
		return nil, nil, nil, fmt.Errorf("unknown kv backend %q", opts.KVBackend)
	}
	return records, links, closer, nil
}

func readOpts(opts ...TilelandOption) (*TilelandOptions, error) {
	options := TilelandOptions{
		Port:         8089,
		LogLevel:     slog.LevelInfo,
		DatabasePath: "tileland.db",
		BoltPath:     "merges.bolt",
		KVBackend:    KVBackendSQLite,
		CacheSize:    10000,
		AllowedOrigins: []string{
			"http://localhost:5174",
			"http://localhost:5173",
			"http://localhost:8080",
		},
		SharedKey: "",
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.KVBackend == KVBackendObject && options.StorageProvider == nil {
		return nil, errors.New("storage provider is required for the object backend")
	}
	return &options, nil
}
