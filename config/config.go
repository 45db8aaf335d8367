package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrMissingMongoURI is returned by Load when MONGO_URI is not set.
var ErrMissingMongoURI = errors.New("MONGO_URI is not set")

// fallbackDBName is used when neither DB_NAME nor the URI names a database.
const fallbackDBName = "test"

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	Port            uint   `envconfig:"PORT" default:"5000"`
	MongoURI        string `envconfig:"MONGO_URI"`
	DBName          string `envconfig:"DB_NAME"`
	DBTimeoutSec    uint   `envconfig:"DB_TIMEOUT_SEC" default:"5"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Cloudinary image hosting, enabled when all three credentials are set
	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `envconfig:"CLOUDINARY_FOLDER" default:"campaigns"`

	MongoClient *mongo.Client `ignored:"true"`
}

// Load reads .env (when present) and the process environment. It fails
// before anything is dialed if the connection string is missing.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	// an empty numeric entry such as "PORT=" means "use the default"
	unsetBlank("PORT", "DB_TIMEOUT_SEC", "READ_TIMEOUT_SEC", "WRITE_TIMEOUT_SEC")

	c := new(Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.MongoURI == "" {
		return nil, ErrMissingMongoURI
	}

	if c.DBName == "" {
		c.DBName = dbNameFromURI(c.MongoURI)
	}

	if c.Port == 0 {
		c.Port = 5000
	}

	if c.DBTimeoutSec == 0 {
		c.DBTimeoutSec = 5
	}

	return c, nil
}

func unsetBlank(keys ...string) {
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) == "" {
			_ = os.Unsetenv(k)
		}
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c *Config) DBTimeout() time.Duration {
	return time.Duration(c.DBTimeoutSec) * time.Second
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSec) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSec) * time.Second
}

// dbNameFromURI reads the database segment of a mongodb:// or mongodb+srv://
// URI without resolving SRV records.
func dbNameFromURI(uri string) string {
	_, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return fallbackDBName
	}
	rest, _, _ = strings.Cut(rest, "?")
	_, path, ok := strings.Cut(rest, "/")
	if !ok || path == "" {
		return fallbackDBName
	}
	name, err := url.PathUnescape(path)
	if err != nil || name == "" {
		return fallbackDBName
	}
	return name
}
