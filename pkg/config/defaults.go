package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "evently"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultTokenTTL = 24 * time.Hour

	DefaultKafkaTopic = "evently.domain-events"

	DefaultRequestTimeout = 15 * time.Second
	DefaultMaxRequestSize = 1 << 20 // 1 MiB

	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 20 * time.Second

	DefaultOpReadTimeout  = 5 * time.Second
	DefaultOpWriteTimeout = 5 * time.Second

	DefaultLogLevel = "info"
)
