// config package holds the global runtime flags along with the panel & client
// configuration, read from an optional config file, environment variables and flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Global configuration.
var (
	Verbose bool
)

// Configuration keys.
const (
	KeyServerHost     = "server.host"
	KeyServerPort     = "server.port"
	KeyServerScheme   = "server.scheme"
	KeyServerCA       = "server.trusted_ca"
	KeyServerCert     = "server.certificate"
	KeyServerKey      = "server.key"
	KeyServerTimeout  = "server.timeout"
	KeyStatusInterval = "panel.status_interval"
	KeyFrameInterval  = "panel.frame_interval"
	KeyPtzRelease     = "panel.ptz_release"
	KeyLogFile        = "panel.log_file"
	KeyOpenCommand    = "panel.open_command"
	KeyPtzIdleTimeout = "ptz.idle_timeout"
	KeyTelegramToken  = "telegram.token"
)

// ServerEndpointConfig describes how to reach a running camdeck server.
type ServerEndpointConfig struct {
	Host      string
	Port      uint
	Scheme    string
	TrustedCA string
	CertPath  string
	KeyPath   string
	Timeout   time.Duration
}

// Endpoint returns the host:port pair.
func (c ServerEndpointConfig) Endpoint() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PanelConfig is the resolved configuration of the control panel.
type PanelConfig struct {
	Server         ServerEndpointConfig
	StatusInterval time.Duration
	FrameInterval  time.Duration
	PtzRelease     time.Duration
	PtzIdleTimeout time.Duration
	LogFile        string
	OpenCommand    string
	TelegramToken  string
}

// SetDefaults registers the default value of every known key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerHost, "localhost")
	v.SetDefault(KeyServerPort, 3000)
	v.SetDefault(KeyServerScheme, "http")
	v.SetDefault(KeyServerTimeout, 5*time.Second)
	v.SetDefault(KeyStatusInterval, 30*time.Second)
	v.SetDefault(KeyFrameInterval, 1*time.Second)
	v.SetDefault(KeyPtzRelease, 300*time.Millisecond)
	v.SetDefault(KeyPtzIdleTimeout, 1*time.Minute)
	v.SetDefault(KeyLogFile, "camdeck-panel.log")
}

// InitConfig reads in the config file and environment variables if set.
// A missing config file is not an error, every key has a default.
// It returns an error reflecting a malformed config file.
func InitConfig(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".camdeck")
	}

	v.SetEnvPrefix("CAMDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Kept for parity with the bot's historical .env variable.
	if err := v.BindEnv(KeyTelegramToken, "CAMDECK_TELEGRAM_TOKEN", "TELEGRAM_TOKEN"); err != nil {
		return fmt.Errorf("failed to bind telegram token env: %v", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %v", err)
	}

	return nil
}

// NewPanelConfig resolves a PanelConfig from the given viper instance.
func NewPanelConfig(v *viper.Viper) PanelConfig {
	return PanelConfig{
		Server: ServerEndpointConfig{
			Host:      v.GetString(KeyServerHost),
			Port:      v.GetUint(KeyServerPort),
			Scheme:    v.GetString(KeyServerScheme),
			TrustedCA: v.GetString(KeyServerCA),
			CertPath:  v.GetString(KeyServerCert),
			KeyPath:   v.GetString(KeyServerKey),
			Timeout:   v.GetDuration(KeyServerTimeout),
		},
		StatusInterval: v.GetDuration(KeyStatusInterval),
		FrameInterval:  v.GetDuration(KeyFrameInterval),
		PtzRelease:     v.GetDuration(KeyPtzRelease),
		PtzIdleTimeout: v.GetDuration(KeyPtzIdleTimeout),
		LogFile:        v.GetString(KeyLogFile),
		OpenCommand:    v.GetString(KeyOpenCommand),
		TelegramToken:  v.GetString(KeyTelegramToken),
	}
}
