package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Backend names accepted by Open.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Options selects and configures a slot backend.
type Options struct {
	Backend     string
	Prefix      string
	SQLitePath  string
	DatabaseURL string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
}

// Open returns the SlotStore described by opts.
func Open(ctx context.Context, opts Options) (SlotStore, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite, "":
		gdb, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return gormStore(gdb, opts.Prefix)
	case BackendPostgres:
		gdb, err := OpenPostgres(opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return gormStore(gdb, opts.Prefix)
	case BackendMongo:
		client, err := ConnectMongo(ctx, opts.MongoURI)
		if err != nil {
			return nil, err
		}
		dbName := opts.MongoDB
		if dbName == "" {
			dbName = "fleet"
		}
		coll := client.Database(dbName).Collection("slots")
		return &MongoSlotStore{Collection: coll, Prefix: opts.Prefix}, nil
	case BackendRedis:
		client, err := ConnectRedis(ctx, opts.RedisAddr, opts.RedisPass, opts.RedisDB)
		if err != nil {
			return nil, err
		}
		return &RedisSlotStore{Client: client, Prefix: opts.Prefix}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

func gormStore(gdb *gorm.DB, prefix string) (SlotStore, error) {
	store, err := NewGormSlotStore(gdb, prefix)
	if err != nil {
		return nil, err
	}
	return store, nil
}
