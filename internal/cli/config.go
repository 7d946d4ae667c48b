package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtext/pkg/radial"
)

// Config is the optional TOML config file.
//
//	[settings]
//	font_size = 24
//	rotation = -90
//	bg_color = "#FFFFFF"
//
//	[output]
//	format = "jpg"
//	quality = 90
//
//	[server]
//	addr = ":8080"
//	redis_addr = "localhost:6379"
//	blob_ttl = "10m"
type Config struct {
	Settings radial.Settings `toml:"settings"`
	Output   OutputConfig    `toml:"output"`
	Server   ServerConfig    `toml:"server"`
}

// OutputConfig holds export defaults.
type OutputConfig struct {
	Format  string        `toml:"format"`
	Quality radial.Number `toml:"quality"`
	Path    string        `toml:"path"`
}

// ServerConfig holds serve defaults.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	RedisAddr string `toml:"redis_addr"`
	BlobDir   string `toml:"blob_dir"`
	BlobTTL   string `toml:"blob_ttl"`
	Timeout   string `toml:"timeout"`
}

// loadConfig decodes the config file at path. A missing default config
// is not an error; a missing explicit one is.
func loadConfig(path string, explicit bool) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %s", path, undecoded[0])
	}
	return &cfg, nil
}

// flagValues maps flag names to the values the config sets for them.
func (cfg *Config) flagValues() map[string]string {
	s := cfg.Settings
	v := map[string]string{
		"text":        s.TextLines,
		"font-size":   string(s.FontSize),
		"font-weight": s.FontWeight,
		"font-style":  s.FontStyle,
		"line-height": string(s.LineHeight),
		"radius":      string(s.CentricCircleRadius),
		"rotation":    string(s.Rotation),
		"color":       s.Color,
		"bg-color":    s.BgColor,
		"format":      cfg.Output.Format,
		"quality":     string(cfg.Output.Quality),
		"output":      cfg.Output.Path,
		"addr":        cfg.Server.Addr,
		"redis-addr":  cfg.Server.RedisAddr,
		"blob-dir":    cfg.Server.BlobDir,
		"blob-ttl":    cfg.Server.BlobTTL,
		"timeout":     cfg.Server.Timeout,
	}
	if s.IgnoreEmpty != nil {
		v["keep-empty"] = strconv.FormatBool(!*s.IgnoreEmpty)
	}
	if s.IsZoomedIn {
		v["zoomed-in"] = "true"
	}
	return v
}

// applyConfig loads the config file and sets every flag of cmd that the
// command line left unset and the config provides. Configured text is
// skipped when args name an input file.
func (c *CLI) applyConfig(cmd *cobra.Command, args []string) error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		path = defaultConfigPath()
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	for name, value := range cfg.flagValues() {
		if value == "" || flags.Lookup(name) == nil || flags.Changed(name) {
			continue
		}
		if name == "text" && len(args) > 0 {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("config %s: %s: %w", path, name, err)
		}
	}
	return nil
}
