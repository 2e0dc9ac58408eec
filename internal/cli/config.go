package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mcoot/jumpbble/internal/factory"
	redisstorage "github.com/mcoot/jumpbble/internal/storage/redis"
)

// Config holds CLI configuration
type Config struct {
	ConfigDir  string
	Dictionary string
	Storage    string
	RedisURL   string
	Seed       uint64
	Size       int
	Output     string
	Verbose    bool

	// Server is the API base URL; when set, play talks to a running server
	// instead of an in-process game
	Server string

	seedSet bool
}

// DefaultConfig returns a Config with values from JUMPBBLE_* environment
// variables, falling back to built-in defaults
func DefaultConfig() *Config {
	c := &Config{
		ConfigDir:  os.Getenv("JUMPBBLE_CONFIG_DIR"),
		Dictionary: os.Getenv("JUMPBBLE_DICTIONARY"),
		Storage:    getEnvOrDefault("JUMPBBLE_STORAGE", factory.StorageTypeMemory),
		RedisURL:   getEnvOrDefault("JUMPBBLE_REDIS_URL", redisstorage.DefaultConfig().URL),
		Server:     os.Getenv("JUMPBBLE_SERVER"),
		Output:     "text",
	}
	if seed, err := strconv.ParseUint(os.Getenv("JUMPBBLE_SEED"), 10, 64); err == nil {
		c.Seed = seed
		c.seedSet = true
	}
	return c
}

// SeedPtr returns the seed when one was given by flag or environment
func (c *Config) SeedPtr() *uint64 {
	if !c.seedSet {
		return nil
	}
	seed := c.Seed
	return &seed
}

// Validate checks flag values that cobra cannot
func (c *Config) Validate() error {
	if c.Output != "text" && c.Output != "json" {
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
	if c.Size < 0 {
		return fmt.Errorf("invalid size %d", c.Size)
	}
	return nil
}

// FactoryConfig builds the application config for in-process commands
func (c *Config) FactoryConfig() factory.Config {
	fc := factory.Config{
		ConfigDir:      c.ConfigDir,
		DictionaryPath: c.Dictionary,
		GridSize:       c.Size,
		Seed:           c.SeedPtr(),
		StorageType:    c.Storage,
	}
	if c.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	}
	return fc
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
