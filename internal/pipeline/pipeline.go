package pipeline

import (
	"time"

	"github.com/cnbv-expediente/expediente-core/internal/config"
	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/cnbv-expediente/expediente-core/internal/enhance"
	"github.com/cnbv-expediente/expediente-core/internal/extract/docx"
	"github.com/cnbv-expediente/expediente-core/internal/filterselect"
	"github.com/cnbv-expediente/expediente-core/internal/fusion"
	"github.com/cnbv-expediente/expediente-core/internal/ocr"
	"github.com/cnbv-expediente/expediente-core/internal/quality"
)

// Config holds the pipeline's component configuration and tunables
// (spec.md §4.11, §6).
type Config struct {
	OCR      domain.OcrConfig
	Fusion   domain.FusionCoefficients
	DocxMode docx.Mode

	ExtractionTimeout time.Duration
	OCRTimeout        time.Duration

	MetricsNamespace string
	MetricsEnabled   bool
}

// DefaultConfig mirrors internal/config.DefaultConfig's pipeline/OCR/fusion
// defaults.
func DefaultConfig() Config {
	return Config{
		OCR:               domain.DefaultOcrConfig(),
		Fusion:            domain.DefaultFusionCoefficients(),
		DocxMode:          docx.BestStrategy,
		ExtractionTimeout: 30 * time.Second,
		OCRTimeout:        20 * time.Second,
		MetricsNamespace:  "expediente",
		MetricsEnabled:    true,
	}
}

// Pipeline is the fully wired set of stage components for one process.
type Pipeline struct {
	cfg Config

	analyzer  quality.Analyzer
	strategy  filterselect.Strategy
	filter    enhance.Filter
	executor  ocr.Executor
	comparator ocr.Comparator
	ocrLoop   *ocr.Loop

	docxOrchestrator *docx.Orchestrator
	fusionEngine     *fusion.Engine
	metrics          *PipelineMetrics
}

// Builder constructs a Pipeline with fluent configuration, mirroring the
// teacher's internal/pipeline.Builder.
type Builder struct {
	cfg      Config
	strategy filterselect.Strategy
	executor ocr.Executor
}

// NewBuilder creates a new pipeline builder with defaults: the Analytical
// filter-selection strategy and the gosseract production OCR executor.
func NewBuilder() *Builder {
	return &Builder{
		cfg:      DefaultConfig(),
		strategy: filterselect.NewAnalyticalStrategy(),
		executor: ocr.NewGosseractExecutor(),
	}
}

// NewBuilderFromConfig seeds a Builder from a loaded config.Config,
// including a Polynomial filter-selection strategy when its coefficient
// table loads successfully (falling back silently to Analytical otherwise,
// since filter selection degrading to the simpler strategy is never fatal).
func NewBuilderFromConfig(cfg *config.Config) *Builder {
	b := NewBuilder().
		WithOCRConfig(cfg.OCR).
		WithFusionCoefficients(cfg.Fusion).
		WithTimeouts(
			time.Duration(cfg.Pipeline.ExtractionTimeoutSeconds)*time.Second,
			time.Duration(cfg.Pipeline.OCRTimeoutSeconds)*time.Second,
		).
		WithMetrics(cfg.Metrics.Enabled, cfg.Metrics.Namespace)

	if table, err := filterselect.LoadCoefficientTable(cfg.Polynomial.CoefficientsFile); err == nil {
		b.WithFilterStrategy(filterselect.NewPolynomialStrategy(table))
	}
	return b
}

// WithOCRConfig overrides the OCR configuration.
func (b *Builder) WithOCRConfig(cfg domain.OcrConfig) *Builder {
	b.cfg.OCR = cfg
	return b
}

// WithFusionCoefficients overrides the fusion coefficients.
func (b *Builder) WithFusionCoefficients(coeffs domain.FusionCoefficients) *Builder {
	b.cfg.Fusion = coeffs
	return b
}

// WithDocxMode overrides the DOCX orchestrator mode.
func (b *Builder) WithDocxMode(mode docx.Mode) *Builder {
	b.cfg.DocxMode = mode
	return b
}

// WithFilterStrategy overrides the filter-selection strategy (e.g. the
// Polynomial strategy loaded from a coefficient table).
func (b *Builder) WithFilterStrategy(strategy filterselect.Strategy) *Builder {
	b.strategy = strategy
	return b
}

// WithExecutor overrides the OCR executor (e.g. the FakeExecutor for tests).
func (b *Builder) WithExecutor(executor ocr.Executor) *Builder {
	b.executor = executor
	return b
}

// WithTimeouts overrides the per-stage timeouts.
func (b *Builder) WithTimeouts(extraction, ocrTimeout time.Duration) *Builder {
	if extraction > 0 {
		b.cfg.ExtractionTimeout = extraction
	}
	if ocrTimeout > 0 {
		b.cfg.OCRTimeout = ocrTimeout
	}
	return b
}

// WithMetrics toggles Prometheus metrics and sets their namespace.
func (b *Builder) WithMetrics(enabled bool, namespace string) *Builder {
	b.cfg.MetricsEnabled = enabled
	if namespace != "" {
		b.cfg.MetricsNamespace = namespace
	}
	return b
}

// Build assembles the Pipeline from the builder's configuration.
func (b *Builder) Build() *Pipeline {
	p := &Pipeline{
		cfg:              b.cfg,
		analyzer:         quality.NewAnalyzer(),
		strategy:         b.strategy,
		filter:           enhance.NewFilter(),
		executor:         b.executor,
		comparator:       ocr.ProductionComparator{},
		docxOrchestrator: docx.NewOrchestrator(),
		fusionEngine:     fusion.NewEngine(b.cfg.Fusion),
	}
	p.ocrLoop = ocr.NewLoop(p.analyzer, p.strategy, p.filter, p.executor, p.comparator)
	if b.cfg.MetricsEnabled {
		p.metrics = NewPipelineMetrics(b.cfg.MetricsNamespace)
	}
	return p
}

// Metrics exposes the pipeline's metrics registry, or nil if metrics are
// disabled.
func (p *Pipeline) Metrics() *PipelineMetrics {
	return p.metrics
}
