package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// InitEnv loads variables from the given .env files (default ".env"). A missing file is not an error.
func InitEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Println("no .env file, using process environment")
			return nil
		}
		return fmt.Errorf("load env: %w", err)
	}
	log.Println("Successfully loaded environment variables")
	return nil
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}
	return b, nil
}

// EnvOr returns the variable or def when it is unset.
func EnvOr(v, def string) string {
	if s, err := GetEnvVariable(v); err == nil {
		return s
	}
	return def
}

// EnvIntOr parses an integer variable, falling back to def when unset or malformed.
func EnvIntOr(v string, def int64) int64 {
	s, err := GetEnvVariable(v)
	if err != nil {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Printf("env %s=%q is not an integer, using %d", v, s, def)
		return def
	}
	return n
}

// ServerEnv is the environment the arena server runs with.
type ServerEnv struct {
	Addr      string
	ConfigDir string
	Seed      int64
	TickHz    int
}

func LoadServerEnv() ServerEnv {
	return ServerEnv{
		Addr:      EnvOr("ARENA_ADDR", ":8080"),
		ConfigDir: EnvOr("ARENA_CONFIG_DIR", "assets"),
		Seed:      EnvIntOr("ARENA_SEED", 0),
		TickHz:    int(EnvIntOr("ARENA_TICK_HZ", 60)),
	}
}
