package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect dials MongoDB, verifies the deployment answers a ping and keeps
// the client on the config for the life of the process.
func (c *Config) Connect(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(c.MongoURI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping mongo: %w", err)
	}

	c.MongoClient = client
	return nil
}

// Database returns the configured database on the connected client.
func (c *Config) Database() *mongo.Database {
	return c.MongoClient.Database(c.DBName)
}

func (c *Config) Disconnect(ctx context.Context) error {
	if c.MongoClient == nil {
		return nil
	}
	return c.MongoClient.Disconnect(ctx)
}
