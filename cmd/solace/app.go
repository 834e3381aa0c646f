package main

import (
	"context"
	"fmt"

	pkgdb "github.com/unowned-ai/solace/pkg/db"
	"github.com/unowned-ai/solace/pkg/session"
	"github.com/unowned-ai/solace/pkg/storage"
	"github.com/unowned-ai/solace/pkg/utils"
)

// openSession opens the configured database, brings its schema up to date
// and loads a session from it. The returned close func waits for pending
// chat replies before closing the database.
func openSession(ctx context.Context, opts ...session.Option) (*session.Session, string, func(), error) {
	path, err := utils.ResolveAndEnsureDBPath(cfg.DB)
	if err != nil {
		return nil, "", nil, err
	}

	conn, err := pkgdb.Open(ctx, pkgdb.Options{Path: path, WAL: cfg.WAL, Sync: cfg.Sync})
	if err != nil {
		return nil, "", nil, err
	}
	if err := pkgdb.Migrate(ctx, conn, logger); err != nil {
		conn.Close()
		return nil, "", nil, fmt.Errorf("failed to migrate database %s: %w", path, err)
	}

	opts = append([]session.Option{
		session.WithLogger(logger),
		session.WithReplyDelay(cfg.ReplyDelay),
	}, opts...)

	sess, err := session.Open(ctx, storage.NewSQLiteStore(conn), opts...)
	if err != nil {
		conn.Close()
		return nil, "", nil, err
	}

	closeFn := func() {
		sess.Close()
		if cfg.WAL {
			if err := pkgdb.Checkpoint(context.Background(), conn); err != nil {
				logger.Warn("wal checkpoint failed during close", "error", err)
			}
		}
		if err := conn.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
	return sess, path, closeFn, nil
}
