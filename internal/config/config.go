package config

import (
	"errors"
	"strings"

	"simpleclaw-keeper/internal/env"

	"github.com/spf13/viper"
)

/**
 * Server configuration parameters
 * @property {string} address - TCP listening address (e.g. "127.0.0.1:18790")
 * @property {string} socket - Unix socket path, empty disables it
 * @property {string} mode - Gin mode (debug/release/test)
 */
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Socket  string `mapstructure:"socket"`
	Mode    string `mapstructure:"mode"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// InstallConfig locates the installation directory holding generated artifacts.
type InstallConfig struct {
	Dir string `mapstructure:"dir"`
}

/**
 * Deploy phase tuning
 * @property {int} settle_seconds - Pause after `compose up` before post-start calls
 */
type DeployConfig struct {
	SettleSeconds int `mapstructure:"settle_seconds"`
}

type RemoteConfig struct {
	BackendURL  string `mapstructure:"backend_url"`
	TelegramAPI string `mapstructure:"telegram_api"`
}

type DockerConfig struct {
	Binary string `mapstructure:"binary"`
}

type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Install InstallConfig `mapstructure:"install"`
	Deploy  DeployConfig  `mapstructure:"deploy"`
	Remote  RemoteConfig  `mapstructure:"remote"`
	Docker  DockerConfig  `mapstructure:"docker"`
}

var Config AppConfig

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "127.0.0.1:18790")
	v.SetDefault("server.socket", env.GetSocketPath())
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.path", "")
	v.SetDefault("install.dir", env.GetInstallDir())
	v.SetDefault("deploy.settle_seconds", 10)
	v.SetDefault("remote.backend_url", "https://install-openclow.ru/api")
	v.SetDefault("remote.telegram_api", "https://api.telegram.org")
	v.SetDefault("docker.binary", "docker")
}

/**
 * Load application configuration from YAML file
 * @param {string} file - Explicit config file, empty searches the keeper directory and "."
 * @returns {(*AppConfig, error)} Returns loaded configuration; a missing file is not an error
 * @description
 * - Registers defaults for every key
 * - Reads keeper.yaml when present
 * - Environment variables prefixed SIMPLECLAW_ override file values
 */
func LoadConfig(file string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("keeper")
		v.SetConfigType("yaml")
		v.AddConfigPath(env.KeeperDir)
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("SIMPLECLAW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return collectConfig(&cfg), nil
}

func collectConfig(cfg *AppConfig) *AppConfig {
	if cfg.Install.Dir == "" {
		cfg.Install.Dir = env.GetInstallDir()
	}
	if cfg.Deploy.SettleSeconds < 0 {
		cfg.Deploy.SettleSeconds = 0
	}
	if cfg.Docker.Binary == "" {
		cfg.Docker.Binary = "docker"
	}
	cfg.Remote.BackendURL = strings.TrimRight(cfg.Remote.BackendURL, "/")
	cfg.Remote.TelegramAPI = strings.TrimRight(cfg.Remote.TelegramAPI, "/")
	return cfg
}

// Init loads the configuration into the package-level Config.
func Init(file string) error {
	cfg, err := LoadConfig(file)
	if err != nil {
		return err
	}
	Config = *cfg
	return nil
}

// App returns the loaded configuration.
func App() *AppConfig {
	return &Config
}
