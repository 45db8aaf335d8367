package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"ENVIRONMENT", "PORT", "MONGO_URI", "DB_NAME", "DB_TIMEOUT_SEC",
	"READ_TIMEOUT_SEC", "WRITE_TIMEOUT_SEC",
	"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET", "CLOUDINARY_FOLDER",
}

// clearEnv unsets every variable Load reads and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
		os.Unsetenv(k)
	}
}

func TestLoad_MissingMongoURI(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingMongoURI)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint(5000), cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "test", cfg.DBName)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout())
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout())
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout())
	assert.Equal(t, "campaigns", cfg.CloudinaryFolder)
	assert.False(t, cfg.CloudinaryEnabled())
	assert.False(t, cfg.IsProduction())
	assert.Nil(t, cfg.MongoClient)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb+srv://u:p@cluster0.example.net/charity?retryWrites=true")
	t.Setenv("PORT", "8081")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint(8081), cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "charity", cfg.DBName)
	assert.True(t, cfg.CloudinaryEnabled())
}

func TestLoad_ExplicitDBNameWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/fromuri")
	t.Setenv("DB_NAME", "explicit")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.DBName)
}

func TestLoad_BlankNumericValuesUseDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("PORT", "")
	t.Setenv("DB_TIMEOUT_SEC", " ")
	t.Setenv("READ_TIMEOUT_SEC", "")
	t.Setenv("WRITE_TIMEOUT_SEC", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint(5000), cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout())
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout())
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout())
}

func TestLoad_BadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBNameFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017", "test"},
		{"mongodb://localhost:27017/", "test"},
		{"mongodb://localhost:27017/campaigns_db", "campaigns_db"},
		{"mongodb://a:27017,b:27017/replica?replicaSet=rs0", "replica"},
		{"mongodb://localhost:27017?authSource=admin", "test"},
		{"not a uri", "test"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dbNameFromURI(tt.uri), tt.uri)
	}
}
