package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig  `mapstructure:"paths"`
	G2P      G2PConfig    `mapstructure:"g2p"`
	Server   ServerConfig `mapstructure:"server"`
	LogLevel string       `mapstructure:"log_level"`
}

type PathsConfig struct {
	// DictPath is a CMU pronouncing dictionary file. Empty uses the embedded
	// core dictionary.
	DictPath string `mapstructure:"dict_path"`
	// SymbolsPath is a vocabulary file, one symbol per line. Empty uses the
	// built-in v2 vocabulary.
	SymbolsPath string `mapstructure:"symbols_path"`
}

type G2PConfig struct {
	CacheSize       int      `mapstructure:"cache_size"`
	MaxEditDistance int      `mapstructure:"max_edit_distance"`
	JapaneseBackend string   `mapstructure:"japanese_backend"`
	JapaneseCommand string   `mapstructure:"japanese_command"`
	JapaneseArgs    []string `mapstructure:"japanese_args"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	Workers         int    `mapstructure:"workers"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			DictPath:    "",
			SymbolsPath: "",
		},
		G2P: G2PConfig{
			CacheSize:       1024,
			MaxEditDistance: 1,
			JapaneseBackend: JapaneseNone,
			JapaneseCommand: "",
			JapaneseArgs:    nil,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         4,
			MaxTextBytes:    4096,
			RequestTimeout:  30,
			ShutdownTimeout: 30,
		},
		LogLevel: "info",
	}
}

// flagKeys maps each CLI flag to its configuration key.
var flagKeys = map[string]string{
	"paths-dict-path":       "paths.dict_path",
	"paths-symbols-path":    "paths.symbols_path",
	"g2p-cache-size":        "g2p.cache_size",
	"g2p-max-edit-distance": "g2p.max_edit_distance",
	"japanese-backend":      "g2p.japanese_backend",
	"japanese-command":      "g2p.japanese_command",
	"japanese-arg":          "g2p.japanese_args",
	"server-listen-addr":    "server.listen_addr",
	"workers":               "server.workers",
	"max-text-bytes":        "server.max_text_bytes",
	"request-timeout":       "server.request_timeout",
	"shutdown-timeout":      "server.shutdown_timeout",
	"log-level":             "log_level",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-dict-path", defaults.Paths.DictPath, "CMU pronouncing dictionary file (empty uses the embedded core dictionary)")
	fs.String("paths-symbols-path", defaults.Paths.SymbolsPath, "Symbol vocabulary file, one symbol per line (empty uses built-in v2)")
	fs.Int("g2p-cache-size", defaults.G2P.CacheSize, "English phonemizer LRU cache capacity (0 disables)")
	fs.Int("g2p-max-edit-distance", defaults.G2P.MaxEditDistance, "Max edit distance when matching unknown English words (0 spells them)")
	fs.String("japanese-backend", defaults.G2P.JapaneseBackend, "Japanese phonemizer backend (none|command)")
	fs.String("japanese-command", defaults.G2P.JapaneseCommand, "Executable that reads Japanese text on stdin and prints phones")
	fs.StringSlice("japanese-arg", defaults.G2P.JapaneseArgs, "Argument passed to the Japanese phonemizer command (repeatable)")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent conversions in the HTTP server (0 disables the limit)")
	fs.Int("max-text-bytes", defaults.Server.MaxTextBytes, "Max request text size in bytes")
	fs.Int("request-timeout", defaults.Server.RequestTimeout, "Per-request timeout in seconds")
	fs.Int("shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("GENIETTS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("genietts")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	backend, err := NormalizeJapaneseBackend(cfg.G2P.JapaneseBackend)
	if err != nil {
		return Config{}, err
	}
	cfg.G2P.JapaneseBackend = backend

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.dict_path", c.Paths.DictPath)
	v.SetDefault("paths.symbols_path", c.Paths.SymbolsPath)
	v.SetDefault("g2p.cache_size", c.G2P.CacheSize)
	v.SetDefault("g2p.max_edit_distance", c.G2P.MaxEditDistance)
	v.SetDefault("g2p.japanese_backend", c.G2P.JapaneseBackend)
	v.SetDefault("g2p.japanese_command", c.G2P.JapaneseCommand)
	v.SetDefault("g2p.japanese_args", c.G2P.JapaneseArgs)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds every registered config flag to its key. A bound flag only
// overrides file and env values when it was set on the command line.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind %s: %w", name, err)
		}
	}
	return nil
}
