package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// GlobalDefaults holds the subset of flags a user can pin in a
// `.dano.yaml` file in their home directory, so that routine invocations
// don't need to repeat them. CLI flags always take precedence over these.
type GlobalDefaults struct {
	HashAlgo      string `yaml:"hash_algo"`
	NumThreads    int    `yaml:"num_threads"`
	Xattr         bool   `yaml:"xattr"`
	DisableFilter bool   `yaml:"disable_filter"`
}

// LoadGlobalDefaults reads and parses a global defaults file. A missing file
// is not an error; it simply yields zero-valued defaults.
func LoadGlobalDefaults(path string) (GlobalDefaults, error) {
	var defaults GlobalDefaults
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, errors.Wrapf(err, "reading global defaults file %s", path)
	}
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return defaults, errors.Wrapf(err, "parsing global defaults file %s", path)
	}
	return defaults, nil
}

// ApplyGlobalDefaults fills in zero-valued Options fields from defaults,
// leaving anything the user already set on the command line untouched.
func ApplyGlobalDefaults(opts Options, defaults GlobalDefaults) Options {
	if opts.HashAlgoName == "" {
		opts.HashAlgoName = defaults.HashAlgo
	}
	if opts.NumThreads == 0 {
		opts.NumThreads = defaults.NumThreads
	}
	if !opts.Xattr {
		opts.Xattr = defaults.Xattr
	}
	if !opts.DisableFilter {
		opts.DisableFilter = defaults.DisableFilter
	}
	return opts
}
