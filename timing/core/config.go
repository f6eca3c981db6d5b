package core

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/fetchsim/timing/icache"
)

// Config holds the front-end configuration.
type Config struct {
	// ResetVector is the address instruction fetch restarts at on reset.
	// It must be 4-byte aligned. Default: 0x1000.
	ResetVector uint32 `json:"reset_vector"`

	// ICacheEnabled turns on instruction-cache statistics on the fetch
	// path. The cache never delays a line; it affects reporting only.
	ICacheEnabled bool `json:"icache_enabled"`

	// ICacheSize is the instruction cache capacity in bytes.
	ICacheSize int `json:"icache_size"`

	// ICacheAssociativity is the number of ways.
	ICacheAssociativity int `json:"icache_associativity"`

	// ICacheBlockSize is the cache line size in bytes.
	ICacheBlockSize int `json:"icache_block_size"`
}

// DefaultConfig returns a Config with the default reset vector and L1I
// geometry.
func DefaultConfig() *Config {
	ic := icache.DefaultL1IConfig()
	return &Config{
		ResetVector:         0x1000,
		ICacheEnabled:       false,
		ICacheSize:          ic.Size,
		ICacheAssociativity: ic.Associativity,
		ICacheBlockSize:     ic.BlockSize,
	}
}

// LoadConfig loads a Config from a JSON file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read front-end config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse front-end config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize front-end config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write front-end config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration is consistent.
func (c *Config) Validate() error {
	if c.ResetVector%4 != 0 {
		return fmt.Errorf("reset_vector must be 4-byte aligned")
	}
	if !c.ICacheEnabled {
		return nil
	}
	if c.ICacheSize <= 0 || c.ICacheAssociativity <= 0 || c.ICacheBlockSize <= 0 {
		return fmt.Errorf("icache geometry must be positive")
	}
	if c.ICacheBlockSize%16 != 0 {
		return fmt.Errorf("icache_block_size must be a multiple of the 16-byte fetch line")
	}
	if c.ICacheSize%(c.ICacheAssociativity*c.ICacheBlockSize) != 0 {
		return fmt.Errorf("icache_size must be divisible by associativity * block size")
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ICacheConfig returns the instruction cache geometry.
func (c *Config) ICacheConfig() icache.Config {
	return icache.Config{
		Size:          c.ICacheSize,
		Associativity: c.ICacheAssociativity,
		BlockSize:     c.ICacheBlockSize,
	}
}
