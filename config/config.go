package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/utils"
)

// Config represents the main configuration structure
type Config struct {
	Fuzzing  FuzzingConfig           `yaml:"fuzzing"`
	Corpus   CorpusConfig            `yaml:"corpus"`
	Output   OutputConfig            `yaml:"output"`
	Log      LogConfig               `yaml:"log"`
	Mutation mutation.MutationConfig `yaml:"mutation"`
}

// FuzzingConfig holds fuzzing-related configuration
type FuzzingConfig struct {
	Enabled       bool  `yaml:"enabled"`
	MaxIterations int   `yaml:"max_iterations"` // per worker
	Threads       int   `yaml:"threads"`
	Seed          int64 `yaml:"seed"` // 0 means use current time
}

// CorpusConfig points at the seed test cases
type CorpusConfig struct {
	Directory string `yaml:"directory"`
}

// OutputConfig holds output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Prefix    string `yaml:"prefix"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Directory string `yaml:"directory"`
	Level     string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Fuzzing: FuzzingConfig{
			Enabled:       true,
			MaxIterations: 1000,
			Threads:       runtime.NumCPU(),
		},
		Corpus:   CorpusConfig{Directory: "corpus"},
		Output:   OutputConfig{Directory: "out", Prefix: "Mut"},
		Log:      LogConfig{Directory: "logs", Level: "info"},
		Mutation: *mutation.DefaultMutationConfig(),
	}
}

// LoadConfig loads configuration from the specified YAML file. Fields
// missing from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Fuzzing.MaxIterations <= 0 {
		return fmt.Errorf("fuzzing.max_iterations must be positive, got %d", c.Fuzzing.MaxIterations)
	}
	if c.Fuzzing.Threads < 1 {
		return fmt.Errorf("fuzzing.threads must be at least 1, got %d", c.Fuzzing.Threads)
	}
	if c.Output.Directory == "" {
		return fmt.Errorf("output.directory must be set")
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if err := c.Mutation.Validate(); err != nil {
		return fmt.Errorf("mutation: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() (utils.Level, error) {
	return utils.ParseLevel(c.Log.Level)
}

// GetCorpusPath returns the seed corpus directory
func (c *Config) GetCorpusPath() string {
	return c.Corpus.Directory
}

// GetOutputPath returns the full output directory path
func (c *Config) GetOutputPath() string {
	return c.Output.Directory
}

// GetLogPath returns the log directory path
func (c *Config) GetLogPath() string {
	return c.Log.Directory
}

// IsFuzzingEnabled returns whether fuzzing is enabled
func (c *Config) IsFuzzingEnabled() bool {
	return c.Fuzzing.Enabled && c.Mutation.Enabled
}

// PrintConfig prints the current configuration (for debugging)
func (c *Config) PrintConfig() {
	fmt.Println("=== mutkit Configuration ===")
	fmt.Printf("Fuzzing Enabled: %t\n", c.IsFuzzingEnabled())
	fmt.Printf("Max Iterations: %d\n", c.Fuzzing.MaxIterations)
	fmt.Printf("Threads: %d\n", c.Fuzzing.Threads)
	fmt.Printf("Seed: %d\n", c.Fuzzing.Seed)
	fmt.Printf("Corpus Directory: %s\n", c.GetCorpusPath())
	fmt.Printf("Output Directory: %s\n", c.GetOutputPath())
	fmt.Printf("Log Directory: %s (%s)\n", c.GetLogPath(), c.Log.Level)
	if len(c.Mutation.Strategies) == 0 {
		fmt.Println("Strategies: all")
	} else {
		fmt.Printf("Strategies: %v\n", c.Mutation.Strategies)
	}
	fmt.Printf("Max Mutation Size: %d\n", c.Mutation.MaxMutationSize)
	fmt.Println("============================")
}
