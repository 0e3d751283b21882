package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DatabaseOptions tunes the client the reports share for the process lifetime
type DatabaseOptions struct {
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
}

// Database represents the database connection
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewDatabase creates a new database connection
func NewDatabase(ctx context.Context, mongoURL, dbName string, opts DatabaseOptions) (*Database, error) {
	if opts.MaxPoolSize == 0 {
		opts.MaxPoolSize = 4
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 10 * time.Second
	}

	// Reports only read, so secondaries are acceptable
	clientOptions := options.Client().
		ApplyURI(mongoURL).
		SetMaxPoolSize(opts.MaxPoolSize).
		SetMaxConnIdleTime(5 * time.Minute).
		SetConnectTimeout(opts.ConnectTimeout).
		SetServerSelectionTimeout(opts.ConnectTimeout).
		SetReadPreference(readpref.PrimaryPreferred()).
		SetAppName("reviewstats")

	// Connect to MongoDB
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	db := client.Database(dbName)

	return &Database{
		Client: client,
		DB:     db,
	}, nil
}

// Close closes the database connection
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// Health pings the primary or a secondary
func (d *Database) Health(ctx context.Context) error {
	return d.Client.Ping(ctx, readpref.PrimaryPreferred())
}

// CollectionStats summarizes one collection's size
type CollectionStats struct {
	Name        string  `json:"name"`
	Documents   int64   `json:"documents"`
	DataSize    float64 `json:"data_size_mb"`
	StorageSize float64 `json:"storage_size_mb"`
	IndexSize   float64 `json:"index_size_mb"`
	AvgDocSize  float64 `json:"avg_doc_size_bytes"`
}

// CollectionStats runs collStats for one collection
func (d *Database) CollectionStats(ctx context.Context, name string) (*CollectionStats, error) {
	var raw bson.M
	err := d.DB.RunCommand(ctx, bson.D{{Key: "collStats", Value: name}}).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection stats for %s: %w", name, err)
	}
	return CollectionStatsFromCommand(name, raw), nil
}

// CollectionStatsFromCommand converts a collStats reply. Sizes are reported in MB.
func CollectionStatsFromCommand(name string, raw bson.M) *CollectionStats {
	stats := &CollectionStats{
		Name:        name,
		Documents:   toInt64(raw["count"]),
		DataSize:    megabytes(raw["size"]),
		StorageSize: megabytes(raw["storageSize"]),
		IndexSize:   megabytes(raw["totalIndexSize"]),
	}
	if stats.Documents > 0 {
		stats.AvgDocSize = float64(toInt64(raw["size"])) / float64(stats.Documents)
	}
	return stats
}

// toInt64 accepts whichever numeric width the server chose
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func megabytes(v interface{}) float64 {
	return float64(toInt64(v)) / 1024 / 1024
}
