// Package database handles the optional SQL connection used to persist sync history.
//
// It wraps GORM and configures either a MySQL connection (production) or a sqlite file or
// in-memory database (tests, single-node deployments). The membership roster itself is never
// persisted; only audit rows describing each sync run are written.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
