// Package config provides configuration management for gntol.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - Build: data_dir, tree_file, annotations_file, picked_names_file,
//     picked_nodes_file, aux_file
//   - Query: root_name, default_limit, max_limit
//   - General: jobs_number
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNTOL_ prefix with underscores for nesting:
//
//	GNTOL_DATABASE_HOST=localhost
//	GNTOL_DATABASE_PORT=5432
//	GNTOL_LOG_LEVEL=info
//	GNTOL_BUILD_TREE_FILE=/data/otol/labelled_supertree_ottnames.tre
//	GNTOL_QUERY_ROOT_NAME="cellular organisms"
//	GNTOL_JOBS_NUMBER=8
package config

import (
	"path/filepath"
	"runtime"
)

// Config represents the complete gntol configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Log contains settings of application logs.
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Build contains locations of release and collaborator files.
	Build BuildConfig `mapstructure:"build" yaml:"build"`

	// Query contains settings of the query engine.
	Query QueryConfig `mapstructure:"query" yaml:"query"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows sent to the database at once
	// during bulk writes.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// BuildConfig describes input files of the build phases. Relative
// paths are resolved against DataDir.
type BuildConfig struct {
	// DataDir contains input files. If empty, the cache directory
	// is used.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// TreeFile is the Newick dump of the labelled supertree.
	TreeFile string `mapstructure:"tree_file" yaml:"tree_file"`

	// AnnotationsFile is the JSON document with support data.
	AnnotationsFile string `mapstructure:"annotations_file" yaml:"annotations_file"`

	// PickedNamesFile resolves names shared by several nodes
	// ('name|ottID' per line). It is optional.
	PickedNamesFile string `mapstructure:"picked_names_file" yaml:"picked_names_file"`

	// PickedNodesFile lists names of nodes for the picked view, one
	// per line.
	PickedNodesFile string `mapstructure:"picked_nodes_file" yaml:"picked_nodes_file"`

	// AuxFile is the SQLite database made by ingestion collaborators
	// with alternative names, descriptions, images, IUCN statuses and
	// popularity.
	AuxFile string `mapstructure:"aux_file" yaml:"aux_file"`
}

// QueryConfig contains settings of the query engine.
type QueryConfig struct {
	// RootName is used when a request has no name.
	RootName string `mapstructure:"root_name" yaml:"root_name"`

	// DefaultLimit is the number of suggestions if a request
	// does not set it.
	DefaultLimit int `mapstructure:"default_limit" yaml:"default_limit"`

	// MaxLimit is the largest allowed number of suggestions.
	MaxLimit int `mapstructure:"max_limit" yaml:"max_limit"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gntol",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		Build: BuildConfig{
			TreeFile:        "labelled_supertree_ottnames.tre",
			AnnotationsFile: "annotations.json",
			PickedNamesFile: "picked_otol_names.txt",
			PickedNodesFile: "picked_nodes.txt",
			AuxFile:         "data.db",
		},
		Query: QueryConfig{
			RootName:     "cellular organisms",
			DefaultLimit: 5,
			MaxLimit:     50,
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// BuildPath resolves a build file against the data directory.
func (c *Config) BuildPath(file string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	dir := c.Build.DataDir
	if dir == "" {
		dir = CacheDir(c.HomeDir)
	}
	return filepath.Join(dir, file)
}
