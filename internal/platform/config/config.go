package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries every tunable the kiosk reads at startup. Values come from
// built-in defaults, then an optional YAML file, then PHOTOBOOTH_* environment
// variables (a .env file is honored when present).
type Config struct {
	PhotosDir     string `yaml:"photos_dir"`
	TemplatesPath string `yaml:"templates_path"`
	PluginsDir    string `yaml:"plugins_dir"`
	DBPath        string `yaml:"db_path"`
	PrinterPrefs  string `yaml:"printer_prefs"`

	CanvasWidth  int `yaml:"canvas_width"`
	CanvasHeight int `yaml:"canvas_height"`

	CountdownSeconds  int     `yaml:"countdown_seconds"`
	InactivitySeconds int     `yaml:"inactivity_seconds"`
	QuickReviewSecs   float64 `yaml:"quick_review_seconds"`
	PostPrintDelaySec float64 `yaml:"post_print_delay_seconds"`
	PreviewFPS        int     `yaml:"preview_fps"`

	PrintOptions []string `yaml:"print_options"`
	ListenAddr   string   `yaml:"listen_addr"`

	// CameraBackend selects the still/preview source: "rpicam" for the
	// real camera stack or "stub" for development without hardware.
	CameraBackend string `yaml:"camera_backend"`
}

func defaults() Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, "photobooth", "data")
	return Config{
		PhotosDir:         filepath.Join(dataDir, "photos"),
		TemplatesPath:     filepath.Join(dataDir, "templates", "index.json"),
		PluginsDir:        filepath.Join(dataDir, "plugins"),
		DBPath:            filepath.Join(dataDir, "journal.db"),
		PrinterPrefs:      filepath.Join(dataDir, "printer.json"),
		CanvasWidth:       2480,
		CanvasHeight:      3508,
		CountdownSeconds:  10,
		InactivitySeconds: 90,
		QuickReviewSecs:   1.2,
		PostPrintDelaySec: 3,
		PreviewFPS:        20,
		PrintOptions:      []string{"media=A4.Borderless", "fit-to-page=false"},
		ListenAddr:        "127.0.0.1:8000",
		CameraBackend:     "rpicam",
	}
}

// Load builds the effective configuration. A missing YAML file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path != "" {
		payload, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(payload, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.PhotosDir, "PHOTOBOOTH_PHOTOS_DIR")
	setString(&cfg.TemplatesPath, "PHOTOBOOTH_TEMPLATES_PATH")
	setString(&cfg.PluginsDir, "PHOTOBOOTH_PLUGINS_DIR")
	setString(&cfg.DBPath, "PHOTOBOOTH_DB_PATH")
	setString(&cfg.PrinterPrefs, "PHOTOBOOTH_PRINTER_PREFS")
	setString(&cfg.ListenAddr, "PHOTOBOOTH_ADDR")
	setString(&cfg.CameraBackend, "PHOTOBOOTH_CAMERA_BACKEND")
	setInt(&cfg.CountdownSeconds, "PHOTOBOOTH_COUNTDOWN_SECONDS")
	setInt(&cfg.InactivitySeconds, "PHOTOBOOTH_INACTIVITY_SECONDS")
	setInt(&cfg.PreviewFPS, "PHOTOBOOTH_PREVIEW_FPS")
	setFloat(&cfg.QuickReviewSecs, "PHOTOBOOTH_QUICK_REVIEW_SECONDS")
	setFloat(&cfg.PostPrintDelaySec, "PHOTOBOOTH_POST_PRINT_DELAY_SECONDS")
}

func (c Config) Validate() error {
	if c.PhotosDir == "" {
		return fmt.Errorf("photos dir is required")
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas dimensions must be positive, got %dx%d", c.CanvasWidth, c.CanvasHeight)
	}
	if c.CountdownSeconds <= 0 {
		return fmt.Errorf("countdown seconds must be positive")
	}
	if c.InactivitySeconds <= 0 {
		return fmt.Errorf("inactivity seconds must be positive")
	}
	if c.QuickReviewSecs <= 0 {
		return fmt.Errorf("quick review seconds must be positive")
	}
	if c.CameraBackend != "rpicam" && c.CameraBackend != "stub" {
		return fmt.Errorf("camera backend must be rpicam or stub, got %q", c.CameraBackend)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
