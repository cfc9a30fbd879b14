// Package config loads and validates expediente-core's runtime configuration:
// fusion coefficients, OCR defaults, and the polynomial filter-selection
// coefficient table, plus the ambient paths and limits the pipeline needs at
// startup.
package config

import (
	"fmt"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// PolynomialConfig points at the frozen coefficient table consumed by the
// Polynomial filter-selection strategy (spec.md §4.2, §6). The table itself
// is deserialized separately by internal/filterselect, which clamps each
// prediction to the range stored for that target in the table. This carries
// the path, plus clamp-range fields that are loaded and defaulted with the
// rest of the config but are not read by the Polynomial strategy.
type PolynomialConfig struct {
	CoefficientsFile string `mapstructure:"coefficients_file" yaml:"coefficients_file" json:"coefficients_file"`

	ContrastMin float64 `mapstructure:"contrast_min" yaml:"contrast_min" json:"contrast_min"`
	ContrastMax float64 `mapstructure:"contrast_max" yaml:"contrast_max" json:"contrast_max"`

	BrightnessMin float64 `mapstructure:"brightness_min" yaml:"brightness_min" json:"brightness_min"`
	BrightnessMax float64 `mapstructure:"brightness_max" yaml:"brightness_max" json:"brightness_max"`

	SharpnessMin float64 `mapstructure:"sharpness_min" yaml:"sharpness_min" json:"sharpness_min"`
	SharpnessMax float64 `mapstructure:"sharpness_max" yaml:"sharpness_max" json:"sharpness_max"`

	UnsharpRadiusMin float64 `mapstructure:"unsharp_radius_min" yaml:"unsharp_radius_min" json:"unsharp_radius_min"`
	UnsharpRadiusMax float64 `mapstructure:"unsharp_radius_max" yaml:"unsharp_radius_max" json:"unsharp_radius_max"`

	UnsharpPercentMin float64 `mapstructure:"unsharp_percent_min" yaml:"unsharp_percent_min" json:"unsharp_percent_min"`
	UnsharpPercentMax float64 `mapstructure:"unsharp_percent_max" yaml:"unsharp_percent_max" json:"unsharp_percent_max"`
}

// DefaultPolynomialConfig mirrors the example coefficient-table ranges
// recorded in DESIGN.md's Open Question decisions.
func DefaultPolynomialConfig() PolynomialConfig {
	return PolynomialConfig{
		CoefficientsFile: "configs/polynomial_coefficients.yaml",

		ContrastMin: 0.8,
		ContrastMax: 2.0,

		BrightnessMin: 0.8,
		BrightnessMax: 1.5,

		SharpnessMin: 0.5,
		SharpnessMax: 3.0,

		UnsharpRadiusMin: 0.5,
		UnsharpRadiusMax: 4.0,

		UnsharpPercentMin: 50,
		UnsharpPercentMax: 200,
	}
}

// PipelineConfig bundles pipeline-wide concurrency and timeout settings
// (spec.md §5).
type PipelineConfig struct {
	MaxConcurrentExpedientes int `mapstructure:"max_concurrent_expedientes" yaml:"max_concurrent_expedientes" json:"max_concurrent_expedientes"`
	ExtractionTimeoutSeconds int `mapstructure:"extraction_timeout_seconds" yaml:"extraction_timeout_seconds" json:"extraction_timeout_seconds"`
	OCRTimeoutSeconds        int `mapstructure:"ocr_timeout_seconds"        yaml:"ocr_timeout_seconds"        json:"ocr_timeout_seconds"`
}

// DefaultPipelineConfig returns conservative defaults sized for the
// per-Expediente fixed-slot fan-out described in spec.md §5.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		MaxConcurrentExpedientes: 8,
		ExtractionTimeoutSeconds: 30,
		OCRTimeoutSeconds:        20,
	}
}

// MetricsConfig controls the optional Prometheus registration (spec.md §4.11).
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"   yaml:"enabled"   json:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace" json:"namespace"`
}

// DefaultMetricsConfig enables metrics under the project's own namespace.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{Enabled: true, Namespace: "expediente"}
}

// Config is the complete, resolved configuration for a pipeline run.
type Config struct {
	Fusion     domain.FusionCoefficients `mapstructure:"fusion"     yaml:"fusion"     json:"fusion"`
	OCR        domain.OcrConfig          `mapstructure:"ocr"        yaml:"ocr"        json:"ocr"`
	Polynomial PolynomialConfig          `mapstructure:"polynomial" yaml:"polynomial" json:"polynomial"`
	Pipeline   PipelineConfig            `mapstructure:"pipeline"   yaml:"pipeline"   json:"pipeline"`
	Metrics    MetricsConfig             `mapstructure:"metrics"    yaml:"metrics"    json:"metrics"`
}

// DefaultConfig returns the full set of defaults documented in spec.md §6.
func DefaultConfig() *Config {
	return &Config{
		Fusion:     domain.DefaultFusionCoefficients(),
		OCR:        domain.DefaultOcrConfig(),
		Polynomial: DefaultPolynomialConfig(),
		Pipeline:   DefaultPipelineConfig(),
		Metrics:    DefaultMetricsConfig(),
	}
}

// Validate checks invariants that setDefaults alone cannot guarantee, such as
// weights that must sum close to one and thresholds that must stay ordered.
func (c *Config) Validate() error {
	f := c.Fusion
	if sum := f.WeightOCR + f.WeightImage + f.WeightExtraction; sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("config: fusion weights must sum to ~1.0, got %.4f", sum)
	}
	if f.RequiredFieldsWeight+f.OptionalFieldsWeight < 0.99 || f.RequiredFieldsWeight+f.OptionalFieldsWeight > 1.01 {
		return fmt.Errorf("config: required/optional field weights must sum to ~1.0")
	}
	if f.AutoProcessThreshold <= f.ManualReviewThreshold {
		return fmt.Errorf("config: auto_process_threshold (%.2f) must exceed manual_review_threshold (%.2f)",
			f.AutoProcessThreshold, f.ManualReviewThreshold)
	}
	if c.Pipeline.MaxConcurrentExpedientes <= 0 {
		return fmt.Errorf("config: pipeline.max_concurrent_expedientes must be positive")
	}
	if c.OCR.Language == "" {
		return fmt.Errorf("config: ocr.language must not be empty")
	}
	return nil
}
