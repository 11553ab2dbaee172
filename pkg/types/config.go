package types

import "time"

// ConversionConfig holds settings for the conversion pipelines.
type ConversionConfig struct {
	// OutputDir is the default output directory. Empty means the input
	// file's own directory.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// JPEGQuality is the encoder quality for jpg/jpeg targets (default 95).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`
}

// RenderBackend identifies the HTML-to-PDF renderer.
type RenderBackend string

const (
	RenderChrome    RenderBackend = "chrome"
	RenderContainer RenderBackend = "container"
)

// RenderConfig holds settings for HTML-to-PDF rendering.
type RenderConfig struct {
	// Backend selects the renderer: chrome or container.
	Backend RenderBackend `json:"backend" yaml:"backend"`

	// BrowserBin is an optional Chrome/Chromium binary. Empty lets the
	// launcher find or download one.
	BrowserBin string `json:"browser_bin,omitempty" yaml:"browser_bin,omitempty"`

	// Timeout bounds a single render (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// ContainerImage is the wkhtmltopdf image used by the container backend.
	ContainerImage string `json:"container_image" yaml:"container_image"`
}

// HistoryConfig holds settings for the job ledger.
type HistoryConfig struct {
	// Enabled turns ledger recording on (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the ledger database and exports.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default number of jobs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the HTTP shell.
type ServerConfig struct {
	// Addr is the listen address (default "127.0.0.1:8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins lists origins allowed to call the API from a browser.
	// Empty refuses every cross-origin request.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// Config groups every formatforge setting.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Render     RenderConfig     `json:"render" yaml:"render"`
	History    HistoryConfig    `json:"history" yaml:"history"`
	Server     ServerConfig     `json:"server" yaml:"server"`
}
