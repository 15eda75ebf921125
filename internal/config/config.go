package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"grove-cli/internal/ghost"
)

// Init wires defaults, the optional config file (<dir>/config.yaml), and
// GROVE_* env overrides. A missing config file is fine; a malformed one is
// ignored rather than fatal (the defaults still work).
func Init(dir string) {
	viper.SetDefault("api.url", ghost.DefaultURL)
	viper.SetDefault("author.label", "you")
	viper.SetDefault("demo.enabled", true)
	viper.SetDefault("log.file", "")

	viper.SetEnvPrefix("GROVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if strings.TrimSpace(dir) != "" {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(filepath.Clean(dir))
		_ = viper.ReadInConfig()
	}
}

// APIURL is the remote reply endpoint.
func APIURL() string { return viper.GetString("api.url") }

// AuthorLabel is the fixed local-user label stamped on thread messages. There
// is no identity system; this is a display placeholder.
func AuthorLabel() string { return viper.GetString("author.label") }

// DemoEnabled controls whether an empty grove gets demo seeds planted on open.
func DemoEnabled() bool { return viper.GetBool("demo.enabled") }

// LogFile is the debug log path; empty disables logging entirely.
func LogFile() string { return viper.GetString("log.file") }
