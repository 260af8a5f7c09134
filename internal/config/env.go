package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Environment keys
const (
	KeyAPIURL         = "api_url"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
	KeyPollInterval   = "poll_interval"
	KeyRequestTimeout = "request_timeout"
	KeyCombosFile     = "combos_file"
	KeyAssetsDir      = "assets_dir"
	KeyEnvLanguage    = "language"
)

// Environment defaults
const (
	EnvPrefix             = "SIMURG"
	DefaultPollInterval   = 5 * time.Second
	DefaultRequestTimeout = time.Duration(0) // no per-call timeout
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// ErrMissingAPIURL is returned when no API base URL is configured
var ErrMissingAPIURL = errors.New("API URL not defined in environment variables")

// Env is the process-level configuration: where the API lives and how the
// client behaves. It comes from the environment and an optional config file.
type Env struct {
	APIURL         string
	LogLevel       string
	LogFormat      string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	CombosFile     string
	AssetsDir      string
	Language       string
}

// Loader reads Env through viper and can watch the config file for changes
type Loader struct {
	v    *viper.Viper
	path string
	mu   sync.Mutex
}

// NewLoader creates a loader; path may be empty when only the environment is used
func NewLoader(path string) *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// The plotting frontends read a bare API_URL; keep honouring it.
	_ = v.BindEnv(KeyAPIURL, EnvPrefix+"_API_URL", "API_URL")

	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyPollInterval, DefaultPollInterval)
	v.SetDefault(KeyRequestTimeout, DefaultRequestTimeout)
	v.SetDefault(KeyEnvLanguage, DefaultLanguage)

	if path != "" {
		v.SetConfigFile(path)
	}

	return &Loader{v: v, path: path}
}

// LoadEnv is a shortcut for NewLoader(path).Load()
func LoadEnv(path string) (Env, error) {
	return NewLoader(path).Load()
}

// Set overrides a key, typically from a command-line flag
func (l *Loader) Set(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.v.Set(key, value)
}

// Load reads the config file (if any) and returns the validated Env
func (l *Loader) Load() (Env, error) {
	env, err := l.Read()
	if err != nil {
		return Env{}, err
	}
	if err := env.Validate(); err != nil {
		return Env{}, err
	}
	return env, nil
}

// Read returns the Env without validating it, for commands that never call the API
func (l *Loader) Read() (Env, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path != "" {
		if err := l.v.ReadInConfig(); err != nil {
			return Env{}, fmt.Errorf("read config %s: %w", l.path, err)
		}
	}

	env := Env{
		APIURL:         strings.TrimSpace(l.v.GetString(KeyAPIURL)),
		LogLevel:       l.v.GetString(KeyLogLevel),
		LogFormat:      l.v.GetString(KeyLogFormat),
		PollInterval:   l.v.GetDuration(KeyPollInterval),
		RequestTimeout: l.v.GetDuration(KeyRequestTimeout),
		CombosFile:     l.v.GetString(KeyCombosFile),
		AssetsDir:      l.v.GetString(KeyAssetsDir),
		Language:       l.v.GetString(KeyEnvLanguage),
	}
	if env.PollInterval < 0 {
		return Env{}, fmt.Errorf("poll_interval must not be negative: %s", env.PollInterval)
	}
	applyEnvDefaults(&env)
	return env, nil
}

// Watch re-reads the config file whenever it changes and passes the new Env
// to callback. Invalid reloads are reported through onError and otherwise ignored.
func (l *Loader) Watch(callback func(Env), onError func(error)) {
	if l.path == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		env, err := l.Load()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		callback(env)
	})
	l.v.WatchConfig()
}

// Validate checks that the API URL is present and absolute
func (env Env) Validate() error {
	if env.APIURL == "" {
		return ErrMissingAPIURL
	}
	parsed, err := url.Parse(env.APIURL)
	if err != nil {
		return fmt.Errorf("parse api url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api url must start with http:// or https://: %q", env.APIURL)
	}
	return nil
}

func applyEnvDefaults(env *Env) {
	if env.PollInterval == 0 {
		env.PollInterval = DefaultPollInterval
	}
	if env.LogLevel == "" {
		env.LogLevel = DefaultLogLevel
	}
	if env.LogFormat == "" {
		env.LogFormat = DefaultLogFormat
	}
	if env.Language == "" {
		env.Language = DefaultLanguage
	}
}
