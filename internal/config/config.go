// Package config resolves tim's run configuration from the environment.
package config

import (
	"os"
	"strconv"
)

const (
	// RunsEnvVar overrides the number of runs.
	RunsEnvVar = "RUNS"

	// DefaultRuns is used when RUNS is unset or not a valid run count.
	DefaultRuns uint16 = 16
)

// Source records where a setting came from.
type Source string

const (
	SourceDefault     Source = "default"
	SourceEnvironment Source = "environment"
	// SourceInvalid means the variable was set but could not be parsed, so the default applies.
	SourceInvalid Source = "invalid"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Config is resolved once at startup and never modified.
type Config struct {
	Runs       uint16
	RunsSource Source
	// RawRuns is the unparsed RUNS value, empty when unset
	RawRuns string
}

// Load resolves the configuration using lookup.
// A RUNS value that is not an unsigned 16-bit decimal integer is ignored silently.
func Load(lookup LookupFunc) Config {
	cfg := Config{Runs: DefaultRuns, RunsSource: SourceDefault}

	raw, ok := lookup(RunsEnvVar)
	if !ok {
		return cfg
	}
	cfg.RawRuns = raw

	n, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		cfg.RunsSource = SourceInvalid
		return cfg
	}

	cfg.Runs = uint16(n)
	cfg.RunsSource = SourceEnvironment
	return cfg
}

// FromEnvironment resolves the configuration from the process environment.
func FromEnvironment() Config {
	return Load(os.LookupEnv)
}
