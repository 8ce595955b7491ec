// Package config resolves named string options for the slicedist CLI.
//
// Every option resolves with the same precedence:
//
//	explicit value > SLICEDIST_* environment variable > ini file > default
//
// The ini file is searched at ./slicedist.ini and /etc/slicedist.ini; the
// first one found wins. A missing file is not an error, the chain simply
// skips that level.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-ini/ini"
)

// EnvPrefix is prepended to upper-cased option names to form environment
// variable names: "prior-file" resolves through SLICEDIST_PRIOR_FILE.
const EnvPrefix = "SLICEDIST_"

// DefaultPaths lists the ini file locations probed by Load, in order.
var DefaultPaths = []string{
	"slicedist.ini",
	"/etc/slicedist.ini",
}

// Resolver resolves option names to string values.
type Resolver struct {
	explicit map[string]string
	file     *ini.File
	env      func(string) string
}

// Options configures Load.
type Options struct {
	// Path pins the ini file instead of probing DefaultPaths.
	Path string
	// Env overrides environment lookup, for tests. Defaults to os.Getenv.
	Env func(string) string
}

// Load builds a Resolver, locating and parsing the ini settings file if one
// exists.
func Load(optFns ...func(*Options)) (*Resolver, error) {
	opts := Options{Env: os.Getenv}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Env == nil {
		opts.Env = os.Getenv
	}

	r := &Resolver{
		explicit: make(map[string]string),
		env:      opts.Env,
	}

	paths := DefaultPaths
	if opts.Path != "" {
		paths = []string{opts.Path}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		file, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load settings file %s: %w", path, err)
		}
		r.file = file
		break
	}

	return r, nil
}

// Set records an explicit value, the highest-precedence level. Empty values
// are ignored so unset CLI flags fall through the chain.
func (r *Resolver) Set(name, value string) {
	if value != "" {
		r.explicit[name] = value
	}
}

// Resolve returns the value for name, falling back to def when no level
// provides one.
func (r *Resolver) Resolve(name, def string) string {
	if v, ok := r.explicit[name]; ok {
		return v
	}
	if v := r.env(EnvName(name)); v != "" {
		return v
	}
	if r.file != nil {
		if key, err := r.file.Section("").GetKey(iniName(name)); err == nil {
			if v := key.String(); v != "" {
				return v
			}
		}
	}
	return def
}

// Require resolves name and fails with a MissingOptionError when the whole
// chain comes up empty.
func (r *Resolver) Require(name string) (string, error) {
	if v := r.Resolve(name, ""); v != "" {
		return v, nil
	}
	return "", &MissingOptionError{Name: name}
}

// EnvName returns the environment variable consulted for an option name.
func EnvName(name string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func iniName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// MissingOptionError reports a required option no configuration level
// provided.
type MissingOptionError struct {
	Name string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("required option %q not set (flag, %s, or settings file)", e.Name, EnvName(e.Name))
}
