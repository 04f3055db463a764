package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-mclib/invui/internal/termhost"
	"github.com/spf13/viper"
)

const (
	configFileName = "invui"
	configFileType = "yaml"
	envPrefix      = "INVUI"

	cfgKeySize       = "inventory.size"
	cfgKeyFill       = "inventory.fill"
	cfgKeyBackground = "inventory.background"
	cfgKeyViewers    = "viewers"
	cfgKeyTitle      = "window.title"
	cfgKeyRetain     = "window.retain"
	cfgKeyCloseable  = "window.closeable"
	cfgKeyMaxLogs    = "log.max_lines"
)

// newConfig returns a viper instance with defaults, environment binding and,
// when present, the config file. path overrides the file search.
func newConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeySize, 27)
	v.SetDefault(cfgKeyFill, []string{
		"minecraft:stone",
		"minecraft:oak_log",
		"minecraft:iron_ingot",
		"minecraft:diamond",
	})
	v.SetDefault(cfgKeyBackground, "minecraft:gray_stained_glass_pane")
	v.SetDefault(cfgKeyViewers, []string{"alice", "bob"})
	v.SetDefault(cfgKeyTitle, "§6Shared Chest")
	v.SetDefault(cfgKeyRetain, true)
	v.SetDefault(cfgKeyCloseable, true)
	v.SetDefault(cfgKeyMaxLogs, 500)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			// running without a config file is fine
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// sessionConfig converts the loaded configuration.
func sessionConfig(v *viper.Viper) termhost.SessionConfig {
	return termhost.SessionConfig{
		Size:       v.GetInt(cfgKeySize),
		Fill:       v.GetStringSlice(cfgKeyFill),
		Background: v.GetString(cfgKeyBackground),
		Viewers:    v.GetStringSlice(cfgKeyViewers),
		Title:      v.GetString(cfgKeyTitle),
		Retain:     v.GetBool(cfgKeyRetain),
		Closeable:  v.GetBool(cfgKeyCloseable),
	}
}
