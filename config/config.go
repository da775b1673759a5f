package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	AppName     = "storepilot"
	EnvFileName = "config.env"
)

// LoadEnvFile loads environment variables from .env in the working directory
// and from the config file in the user's config directory. Errors are
// ignored since neither file has to exist.
func LoadEnvFile() {
	_ = godotenv.Load()

	configBase, err := os.UserConfigDir()
	if err != nil {
		return
	}
	_ = godotenv.Load(filepath.Join(configBase, AppName, EnvFileName))
}
