package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads, normalizes, defaults and validates the configuration at path.
// Relative paths inside the file resolve against the file's directory.
func Load(path string) (*Config, error) {
	baseDir := filepath.Dir(path)
	loadEnvFiles(baseDir)

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, ferrors.NotFoundError("configuration file not found").
				WithContext("path", path).
				WithContext("hint", "run `sitecfg init` or pass -c").
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read configuration file").
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.baseDir = baseDir
	return cfg, nil
}

// Parse decodes configuration bytes (environment references are expanded
// first) and runs normalization, defaults and validation. Unknown keys are
// rejected so a misspelled option fails early instead of being ignored.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to decode configuration").Build()
	}

	for _, w := range Normalize(&cfg) {
		slog.Warn("config normalization", "warning", w)
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	cfg.baseDir = "."
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.baseDir = "."
	return cfg
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist. Any other load error is returned.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, true, nil
	}
	if ferrors.HasCategory(err, ferrors.CategoryNotFound) {
		return Default(), false, nil
	}
	return nil, false, err
}

// loadEnvFiles loads .env then .env.local from dir. Variables already set in
// the process environment are kept.
func loadEnvFiles(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(p), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment file", logfields.Path(p))
	}
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists").
			WithContext("path", path).
			WithContext("hint", "use --force to overwrite").
			Build()
	}

	example := Example()
	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "marshal example configuration").Build()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create config directory").WithContext("path", dir).Build()
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write configuration file").WithContext("path", path).Build()
	}
	slog.Info("Configuration file created", logfields.Path(path))
	return nil
}

// Example is the configuration Init writes: the defaults made explicit.
func Example() *Config {
	cfg := Default()
	cfg.Watch.RecheckSchedule = "*/15 * * * *"
	return cfg
}
