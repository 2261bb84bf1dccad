package config

import (
	"os"
	"strconv"

	"ledger-core/chaincfg"
)

// Config holds the configuration of the genesis tooling
type Config struct {
	// Network
	Network     string
	GenesisFile string

	// Logging
	LogLevel string
	LogFile  string

	// Database
	DataDir        string
	PersistGenesis bool

	// Key derivation
	CoinType int
	Account  int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Network:     getEnv("NETWORK", "main"),
		GenesisFile: getEnv("GENESIS_FILE", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		DataDir:        getEnv("DATA_DIR", "."),
		PersistGenesis: getEnvBool("PERSIST_GENESIS", false),

		CoinType: getEnvInt("COIN_TYPE", 1),
		Account:  getEnvInt("ACCOUNT", 0),
	}
}

// Params returns the chain parameters selected by the configuration.  A
// genesis file, when set, replaces the genesis of the network it names.
func (c *Config) Params() (*chaincfg.Params, error) {
	if c.GenesisFile != "" {
		return chaincfg.LoadGenesisFile(c.GenesisFile)
	}
	return chaincfg.ParamsForNetwork(c.Network)
}

// getEnv gets an environment variable or returns default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as int or returns default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as bool or returns default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
