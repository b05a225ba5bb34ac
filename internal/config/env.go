package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory if one exists,
// before the options are resolved, so DANO_XATTR_WRITES and similar ambient settings
// can be pinned per-project. Absence of a .env file is not an error.
func LoadEnv(pwd string) {
	_ = godotenv.Load(filepath.Join(pwd, ".env"))
}

// XattrWritesEnabled reports whether the DANO_XATTR_WRITES environment
// variable is set to any non-empty value, which forces xattr mirroring on
// regardless of the --xattr flag.
func XattrWritesEnabled() bool {
	return os.Getenv("DANO_XATTR_WRITES") != ""
}
