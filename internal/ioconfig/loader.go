// Package ioconfig loads configuration from config.yaml and
// environment variables.
package ioconfig

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/gnames/gntol/internal/iofs"
	"github.com/gnames/gntol/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables.
const EnvPrefix = "GNTOL"

// envKeys are config keys that can be set by environment variables.
// They match the fields returned by config.ToOptions().
var envKeys = []string{
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.database",
	"database.ssl_mode",
	"database.batch_size",

	"log.level",
	"log.format",
	"log.destination",

	"build.data_dir",
	"build.tree_file",
	"build.annotations_file",
	"build.picked_names_file",
	"build.picked_nodes_file",
	"build.aux_file",

	"query.root_name",
	"query.default_limit",
	"query.max_limit",

	"jobs_number",
}

// Load reads the config file at path and applies environment
// overrides. An empty path means environment variables and defaults
// only. Values that do not pass validation keep their defaults.
func Load(path string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	bindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, iofs.ReadFileError(path, err)
			}
		}
	}

	var res config.Config
	if err := v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	cfg := config.New()
	cfg.Update(res.ToOptions())
	return cfg, nil
}

// EnvVars returns names of supported environment variables.
func EnvVars() []string {
	res := make([]string, len(envKeys))
	for i, k := range envKeys {
		res[i] = envName(k)
	}
	return res
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func bindEnv(v *viper.Viper) {
	// Environment variables are bound one by one so it is clear
	// which of them are allowed.
	for _, k := range envKeys {
		_ = v.BindEnv(k, envName(k))
	}
}
