package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"vend-sync/core/config"
	"vend-sync/core/database"
	"vend-sync/core/logger"
	"vend-sync/core/storage"
	"vend-sync/core/vend"
	"vend-sync/core/xref"
	"vend-sync/feature/catalog"
	"vend-sync/feature/orders"

	"go.uber.org/zap"
)

// services bundles the dependencies shared by the commands.
type services struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *vend.Client
	refs    *xref.Store
	archive *storage.Archive
}

// bootstrap loads configuration and connects to Vend. The reference store
// and the archive are optional: a failed database connection is logged and
// the archive is only built when storage is enabled.
func bootstrap(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := vend.NewClient(cfg.Vend, l)
	if err != nil {
		return nil, err
	}

	rt := &services{cfg: cfg, logger: l, client: client}

	if db, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Optional database connection failed, external references disabled", zap.Error(err))
	} else {
		store := xref.NewStore(db)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		rt.refs = store
		l.Info("Connected to reference database", zap.String("driver", cfg.Database.Driver))
	}

	if cfg.Storage.Enabled {
		sc, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		rt.archive = storage.NewArchive(sc, cfg.Storage)
		l.Info("Archiving consignments", zap.String("bucket", cfg.Storage.Bucket))
	}

	return rt, nil
}

// The accessors below keep a missing store or archive a nil interface.

func (rt *services) transferRefs() orders.TransferReferences {
	if rt.refs == nil {
		return nil
	}
	return rt.refs
}

func (rt *services) productRefs() catalog.References {
	if rt.refs == nil {
		return nil
	}
	return rt.refs
}

func (rt *services) archiver() orders.Archiver {
	if rt.archive == nil {
		return nil
	}
	return rt.archive
}

func (rt *services) close() {
	_ = rt.logger.Sync()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
