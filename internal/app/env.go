package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read at startup.
const (
	EnvOutputFile       = "MVNGRAPH_OUTPUT_FILE"
	EnvLegacyOutputFile = "MAVEN_OUTPUT_FILE"
	EnvLogLevel         = "MVNGRAPH_LOG_LEVEL"
	EnvLogFormat        = "MVNGRAPH_LOG_FORMAT"
)

// Environment holds settings taken from environment variables.
type Environment struct {
	OutputFile string
	LogLevel   string
	LogFormat  string
}

// LoadEnvironment loads dotenvPath into the process environment, without
// overriding variables that are already set, and reads the settings. A
// missing .env file is not an error.
func LoadEnvironment(dotenvPath string) (Environment, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Environment{}, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}
	return environmentFrom(os.Getenv), nil
}

func environmentFrom(getenv func(string) string) Environment {
	return Environment{
		OutputFile: firstNonEmpty(getenv(EnvOutputFile), getenv(EnvLegacyOutputFile)),
		LogLevel:   getenv(EnvLogLevel),
		LogFormat:  getenv(EnvLogFormat),
	}
}
