// Package pg connects to the PostgreSQL database backing the user
// directory. It wraps pgx/v5 pool setup with retries, applies goose
// migrations from an fs.FS and exposes a readiness probe.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if cfg.AutoMigrate {
//	    if err := pg.Migrate(ctx, pool, directory.Migrations, cfg, log); err != nil {
//	        return err
//	    }
//	}
package pg
