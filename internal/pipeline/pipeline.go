package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/inkmark/versemark/internal/config"
	"github.com/inkmark/versemark/internal/detection"
	"github.com/inkmark/versemark/internal/imaging"
	"github.com/inkmark/versemark/internal/ocr"
	"github.com/inkmark/versemark/internal/verse"
)

// Pipeline runs the full underline-to-verse flow over page photographs.
// Stages run synchronously and each consumes the previous stage's
// complete output; the only internal concurrency is the bounded OCR
// worker pool inside the extraction stage. A Pipeline holds no state
// between runs beyond the image cache.
type Pipeline struct {
	cfg       *config.Config
	log       *zap.Logger
	cache     *imaging.ImageCache
	pre       *imaging.Preprocessor
	locator   *detection.Locator
	extractor *ocr.Extractor
	assembler *verse.Assembler
}

// New wires a pipeline around the given OCR binder. A nil config uses
// the defaults; a nil logger disables logging.
func New(cfg *config.Config, binder ocr.Binder, log *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	scorer := verse.NewScorer(cfg.Score)
	return &Pipeline{
		cfg:       cfg,
		log:       log,
		cache:     imaging.NewImageCache(),
		pre:       imaging.NewPreprocessor(cfg.Preprocess),
		locator:   detection.NewLocator(cfg.Detect, log),
		extractor: ocr.NewExtractor(cfg.Extract, binder, log),
		assembler: verse.NewAssembler(cfg.Assemble, scorer, log),
	}
}

// ProcessImage runs the pipeline over one page photograph. Failures that
// make the run meaningless (unreadable image, empty ink mask) and
// recoverable zero-result stages both return Success=false with an
// error naming the stage; per-underline extraction failures degrade to
// empty text and never abort the run.
func (p *Pipeline) ProcessImage(ctx context.Context, path string) *Result {
	p.log.Info("processing page", zap.String("path", path))

	img, err := p.cache.Load(path)
	if err != nil {
		return failure(stageErr(StageLoad, err))
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	p.log.Info("loaded image", zap.Int("width", width), zap.Int("height", height))

	mask := p.pre.InkMask(img)
	if mask.Count() == 0 {
		return failure(stageErr(StagePreprocess, ErrEmptyMask))
	}

	diag := &Diagnostics{mask: mask}

	segments := p.locator.Detect(mask)
	if len(segments) == 0 {
		return failureWithDiag(stageErr(StageDetect, ErrNoUnderlines), diag)
	}
	filtered := p.locator.Filter(segments, width, height, mask)
	if len(filtered) == 0 {
		return failureWithDiag(stageErr(StageDetect, ErrNoUnderlines), diag)
	}
	underlines := p.locator.Merge(filtered)
	diag.underlines = underlines

	binding, err := p.extractor.ExtractAll(ctx, path, img, underlines)
	if err != nil {
		return failureWithDiag(stageErr(StageExtract, err), diag)
	}
	diag.binding = binding
	if binding.NonEmpty() == 0 {
		return failureWithDiag(stageErr(StageExtract, ErrNoText), diag)
	}

	blocks := p.assembler.DetectBlocks(binding, underlines)
	if len(blocks) == 0 {
		return failureWithDiag(stageErr(StageAssemble, ErrNoVerses), diag)
	}
	grouped := p.assembler.GroupRelated(blocks)

	analysis := verse.AnalyzeQuality(grouped)
	p.log.Info("run complete",
		zap.Int("underlines", len(underlines)),
		zap.Int("verses", len(grouped)),
		zap.Float64("average_confidence", analysis.AverageConfidence))

	return &Result{
		Success:     true,
		Underlines:  len(underlines),
		TextRegions: binding.NonEmpty(),
		Verses:      grouped,
		Analysis:    analysis,
		diag:        diag,
	}
}

// Evict drops a processed page from the image cache.
func (p *Pipeline) Evict(path string) {
	p.cache.Evict(path)
}

func failure(err *StageError) *Result {
	return &Result{Success: false, Error: err.Error()}
}

func failureWithDiag(err *StageError, diag *Diagnostics) *Result {
	return &Result{Success: false, Error: err.Error(), diag: diag}
}
