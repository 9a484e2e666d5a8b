package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
	if c.Query.DefaultLimit > c.Query.MaxLimit {
		gn.Warn(
			"<em>Query Default Limit</em> %d exceeds max limit %d, using max",
			c.Query.DefaultLimit, c.Query.MaxLimit,
		)
		c.Query.DefaultLimit = c.Query.MaxLimit
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Used for round-tripping config.yaml <-> Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	str := func(s string, opt func(string) Option) {
		if s != "" {
			res = append(res, opt(s))
		}
	}
	num := func(i int, opt func(int) Option) {
		if i > 0 {
			res = append(res, opt(i))
		}
	}

	str(c.Database.Host, OptDatabaseHost)
	num(c.Database.Port, OptDatabasePort)
	str(c.Database.User, OptDatabaseUser)
	str(c.Database.Password, OptDatabasePassword)
	str(c.Database.Database, OptDatabaseDatabase)
	str(c.Database.SSLMode, OptDatabaseSSLMode)
	num(c.Database.BatchSize, OptDatabaseBatchSize)

	str(c.Log.Format, OptLogFormat)
	str(c.Log.Level, OptLogLevel)
	str(c.Log.Destination, OptLogDestination)

	str(c.Build.DataDir, OptBuildDataDir)
	str(c.Build.TreeFile, OptBuildTreeFile)
	str(c.Build.AnnotationsFile, OptBuildAnnotationsFile)
	str(c.Build.PickedNamesFile, OptBuildPickedNamesFile)
	str(c.Build.PickedNodesFile, OptBuildPickedNodesFile)
	str(c.Build.AuxFile, OptBuildAuxFile)

	str(c.Query.RootName, OptQueryRootName)
	num(c.Query.DefaultLimit, OptQueryDefaultLimit)
	num(c.Query.MaxLimit, OptQueryMaxLimit)

	num(c.JobsNumber, OptJobsNumber)
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}

	vals := slices.Sorted(maps.Keys(data[name]))
	lines := make([]string, 0, len(vals))
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
