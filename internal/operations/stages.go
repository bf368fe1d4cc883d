package operations

import (
	"context"
	"io"
	"log/slog"

	"tradeconc/internal/classifier"
	"tradeconc/internal/config"
	"tradeconc/internal/figures"
	"tradeconc/internal/infrastructure"
)

// Step names
const (
	StageNameClassifier = "Classify and merge partners"
	StageNameFigures    = "Export figures"
)

// ClassifierStage runs the classifier as a pipeline Step
type ClassifierStage struct {
	BaseStage
	classifier *classifier.Classifier
	Result     *classifier.Result
}

// NewClassifierStage creates the classifier Step
func NewClassifierStage(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics, out io.Writer) *ClassifierStage {
	return &ClassifierStage{
		BaseStage:  NewBaseStage(config.ClassifierStep, StageNameClassifier, nil),
		classifier: classifier.New(cfg, logger, metrics, out),
	}
}

// Execute runs the classifier
func (s *ClassifierStage) Execute(ctx context.Context) error {
	result, err := s.classifier.Run(ctx)
	if err != nil {
		return err
	}
	s.Result = result
	return nil
}

// FiguresStage runs the figure exporter as a pipeline Step. It depends on
// the classifier Step.
type FiguresStage struct {
	BaseStage
	exporter *figures.Exporter
	Result   *figures.Result
}

// NewFiguresStage creates the figures Step
func NewFiguresStage(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics, out io.Writer) *FiguresStage {
	return &FiguresStage{
		BaseStage: NewBaseStage(config.FiguresStep, StageNameFigures, []string{config.ClassifierStep}),
		exporter:  figures.New(cfg, logger, metrics, out),
	}
}

// Execute runs the figure exporter. Result is set even when some charts
// failed.
func (s *FiguresStage) Execute(ctx context.Context) error {
	result, err := s.exporter.Export(ctx)
	s.Result = result
	return err
}

// NewPipeline registers the classifier and figures steps
func NewPipeline(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics, out io.Writer) (*Manager, error) {
	registry := NewRegistry()
	if err := registry.Register(NewClassifierStage(cfg, logger, metrics, out)); err != nil {
		return nil, err
	}
	if err := registry.Register(NewFiguresStage(cfg, logger, metrics, out)); err != nil {
		return nil, err
	}
	return NewManager(registry, logger), nil
}
