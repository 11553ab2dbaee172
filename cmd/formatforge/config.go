// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/formatforge/internal/history"
	"github.com/pdiddy/formatforge/internal/render"
	"github.com/pdiddy/formatforge/pkg/types"
)

// envKeyReplacer maps nested keys to env names: render.backend becomes
// FORMATFORGE_RENDER_BACKEND.
var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults(v *viper.Viper) {
	v.SetDefault("conversion.output_dir", "")
	v.SetDefault("conversion.jpeg_quality", 95)
	v.SetDefault("render.backend", string(types.RenderChrome))
	v.SetDefault("render.browser_bin", "")
	v.SetDefault("render.timeout", 60*time.Second)
	v.SetDefault("render.container_image", render.DefaultContainerImage)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.dir", defaultHistoryDir())
	v.SetDefault("history.max_results", 20)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.allowed_origins", []string{})
}

func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".formatforge"
	}
	return filepath.Join(home, ".local", "share", "formatforge")
}

// loadConfig builds a Config from v.
func loadConfig(v *viper.Viper) types.Config {
	return types.Config{
		Conversion: types.ConversionConfig{
			OutputDir:   v.GetString("conversion.output_dir"),
			JPEGQuality: v.GetInt("conversion.jpeg_quality"),
		},
		Render: types.RenderConfig{
			Backend:        types.RenderBackend(v.GetString("render.backend")),
			BrowserBin:     v.GetString("render.browser_bin"),
			Timeout:        v.GetDuration("render.timeout"),
			ContainerImage: v.GetString("render.container_image"),
		},
		History: types.HistoryConfig{
			Enabled:    v.GetBool("history.enabled"),
			Dir:        v.GetString("history.dir"),
			MaxResults: v.GetInt("history.max_results"),
		},
		Server: types.ServerConfig{
			Addr:           v.GetString("server.addr"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
		},
	}
}

// openHistory opens the ledger, or returns nil when it is disabled.
func openHistory(cfg types.HistoryConfig) (*history.Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return store, nil
}

// resolveOutputDir picks the output directory for input: the flag, then the
// configured default, then the input's own directory.
func resolveOutputDir(flag, configured, input string) string {
	switch {
	case flag != "":
		return flag
	case configured != "":
		return configured
	default:
		return filepath.Dir(input)
	}
}
