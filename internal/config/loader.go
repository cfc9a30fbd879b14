package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name (without extension) viper searches for.
	ConfigFileName = "expediente"
	// EnvPrefix namespaces environment-variable overrides, e.g.
	// EXPEDIENTE_FUSION_AUTO_PROCESS_THRESHOLD.
	EnvPrefix = "EXPEDIENTE"
)

// Loader wraps a *viper.Viper configured with expediente-core's search paths,
// environment binding, and defaults, mirroring the shape of a conventional
// viper-backed configuration loader: construct, optionally point at an
// explicit file, then Load.
type Loader struct {
	v *viper.Viper
}

// NewLoader builds a Loader with search paths, env bindings, and defaults
// already wired in.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")

	l := &Loader{v: v}
	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()
	return l
}

// Load reads the configuration (if a config file is found; a missing file is
// not an error, defaults and env vars still apply), unmarshals it, and
// validates the result.
func (l *Loader) Load() (*Config, error) {
	return l.load(true)
}

// LoadWithoutValidation is Load without the final Validate call, useful for
// tests that intentionally exercise out-of-range values.
func (l *Loader) LoadWithoutValidation() (*Config, error) {
	return l.load(false)
}

// LoadWithFile loads configuration from an explicit path instead of the
// search-path discovery used by Load.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	l.v.SetConfigFile(configFile)
	return l.load(true)
}

// LoadWithFileWithoutValidation is LoadWithFile without the final Validate
// call.
func (l *Loader) LoadWithFileWithoutValidation(configFile string) (*Config, error) {
	l.v.SetConfigFile(configFile)
	return l.load(false)
}

func (l *Loader) load(validate bool) (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}

	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// addConfigPaths registers the directories viper searches, in precedence
// order: the working directory, the user's home directory, /etc, and the
// XDG config directory.
func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", ConfigFileName))
	}
	l.v.AddConfigPath(filepath.Join("/etc", ConfigFileName))
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		l.v.AddConfigPath(filepath.Join(xdg, ConfigFileName))
	}
}

// setupEnvironmentVariables binds EXPEDIENTE_-prefixed environment variables
// over dotted/dashed viper keys, e.g. EXPEDIENTE_OCR_LANGUAGE overrides
// ocr.language.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	l.v.AutomaticEnv()
}

// setDefaults seeds viper with every default from DefaultConfig so that
// partial config files and env-var-only overrides still produce a complete,
// valid Config.
func (l *Loader) setDefaults() {
	d := DefaultConfig()

	l.v.SetDefault("fusion.base_reliability_xml", d.Fusion.BaseReliabilityXML)
	l.v.SetDefault("fusion.base_reliability_pdf", d.Fusion.BaseReliabilityPDF)
	l.v.SetDefault("fusion.base_reliability_docx", d.Fusion.BaseReliabilityDOCX)
	l.v.SetDefault("fusion.weight_ocr", d.Fusion.WeightOCR)
	l.v.SetDefault("fusion.weight_image", d.Fusion.WeightImage)
	l.v.SetDefault("fusion.weight_extraction", d.Fusion.WeightExtraction)
	l.v.SetDefault("fusion.mean_confidence_exponent", d.Fusion.MeanConfidenceExponent)
	l.v.SetDefault("fusion.low_confidence_penalty_weight", d.Fusion.LowConfidencePenaltyWeight)
	l.v.SetDefault("fusion.pattern_match_boost", d.Fusion.PatternMatchBoost)
	l.v.SetDefault("fusion.catalog_validation_boost", d.Fusion.CatalogValidationBoost)
	l.v.SetDefault("fusion.fuzzy_match_threshold", d.Fusion.FuzzyMatchThreshold)
	l.v.SetDefault("fusion.fuzzy_match_confidence_penalty", d.Fusion.FuzzyMatchConfidencePenalty)
	l.v.SetDefault("fusion.conflict_margin", d.Fusion.ConflictMargin)
	l.v.SetDefault("fusion.required_fields_weight", d.Fusion.RequiredFieldsWeight)
	l.v.SetDefault("fusion.optional_fields_weight", d.Fusion.OptionalFieldsWeight)
	l.v.SetDefault("fusion.auto_process_threshold", d.Fusion.AutoProcessThreshold)
	l.v.SetDefault("fusion.manual_review_threshold", d.Fusion.ManualReviewThreshold)
	l.v.SetDefault("fusion.best_effort_confidence_floor", d.Fusion.BestEffortConfidenceFloor)

	l.v.SetDefault("ocr.language", d.OCR.Language)
	l.v.SetDefault("ocr.fallback_language", d.OCR.FallbackLanguage)
	l.v.SetDefault("ocr.psm", d.OCR.PageSegMode)
	l.v.SetDefault("ocr.oem", d.OCR.EngineMode)
	l.v.SetDefault("ocr.confidence_threshold", d.OCR.ConfidenceThreshold)

	l.v.SetDefault("polynomial.coefficients_file", d.Polynomial.CoefficientsFile)
	l.v.SetDefault("polynomial.contrast_min", d.Polynomial.ContrastMin)
	l.v.SetDefault("polynomial.contrast_max", d.Polynomial.ContrastMax)
	l.v.SetDefault("polynomial.brightness_min", d.Polynomial.BrightnessMin)
	l.v.SetDefault("polynomial.brightness_max", d.Polynomial.BrightnessMax)
	l.v.SetDefault("polynomial.sharpness_min", d.Polynomial.SharpnessMin)
	l.v.SetDefault("polynomial.sharpness_max", d.Polynomial.SharpnessMax)
	l.v.SetDefault("polynomial.unsharp_radius_min", d.Polynomial.UnsharpRadiusMin)
	l.v.SetDefault("polynomial.unsharp_radius_max", d.Polynomial.UnsharpRadiusMax)
	l.v.SetDefault("polynomial.unsharp_percent_min", d.Polynomial.UnsharpPercentMin)
	l.v.SetDefault("polynomial.unsharp_percent_max", d.Polynomial.UnsharpPercentMax)

	l.v.SetDefault("pipeline.max_concurrent_expedientes", d.Pipeline.MaxConcurrentExpedientes)
	l.v.SetDefault("pipeline.extraction_timeout_seconds", d.Pipeline.ExtractionTimeoutSeconds)
	l.v.SetDefault("pipeline.ocr_timeout_seconds", d.Pipeline.OCRTimeoutSeconds)

	l.v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	l.v.SetDefault("metrics.namespace", d.Metrics.Namespace)
}

// GetViper exposes the underlying viper instance for callers that need
// lower-level access (e.g. binding additional flags before Load).
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// GetConfigFileUsed returns the path of the config file viper actually read,
// or "" if none was found.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// WriteConfigToFile marshals the given Config as YAML and writes it to path,
// creating parent directories as needed. Useful for GenerateDefaultConfigFile
// and for operators snapshotting a resolved configuration.
func (l *Loader) WriteConfigToFile(cfg *Config, path string) error {
	l.v.Set("fusion", cfg.Fusion)
	l.v.Set("ocr", cfg.OCR)
	l.v.Set("polynomial", cfg.Polynomial)
	l.v.Set("pipeline", cfg.Pipeline)
	l.v.Set("metrics", cfg.Metrics)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: creating directory %s: %w", dir, err)
		}
	}
	return l.v.WriteConfigAs(path)
}

// GenerateDefaultConfigFile writes DefaultConfig to filename as YAML.
func (l *Loader) GenerateDefaultConfigFile(filename string) error {
	return l.WriteConfigToFile(DefaultConfig(), filename)
}

// GetConfigSearchPaths reports the paths viper will search, for diagnostics.
func (l *Loader) GetConfigSearchPaths() []string {
	home, _ := os.UserHomeDir()
	paths := []string{"."}
	if home != "" {
		paths = append(paths, home, filepath.Join(home, ".config", ConfigFileName))
	}
	paths = append(paths, filepath.Join("/etc", ConfigFileName))
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, ConfigFileName))
	}
	return paths
}
