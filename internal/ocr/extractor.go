package ocr

import (
	"context"
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inkmark/versemark/internal/config"
	"github.com/inkmark/versemark/internal/detection"
)

// Extractor binds every underline to the text printed above it.
//
// Regions are independent of each other, so they are dispatched to a
// bounded worker pool; the bound keeps a batch of regions from
// overwhelming the OCR engine. Results are keyed by underline index, not
// completion order, because downstream assembly depends on vertical page
// order. A region that fails or exceeds the per-region timeout degrades
// to empty text; it never fails the run.
type Extractor struct {
	cfg    config.ExtractConfig
	binder Binder
	log    *zap.Logger
	cache  *cache.Cache
}

// NewExtractor creates an extractor around the given binder.
// A nil logger disables logging.
func NewExtractor(cfg config.ExtractConfig, binder Binder, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	ttl := cfg.CacheTTL.Std()
	return &Extractor{
		cfg:    cfg,
		binder: binder,
		log:    log,
		cache:  cache.New(ttl, 2*ttl),
	}
}

// RegionFor computes the image region bound to an underline. With
// context expansion on, the span widens horizontally and the vertical
// window stretches above and below the mark so a verse is not cut at the
// crop edge.
func (e *Extractor) RegionFor(u detection.Underline, width, height int) Region {
	if !e.cfg.ExpandContext {
		return Region{
			X1: maxInt(0, u.X1),
			Y1: maxInt(0, u.Y()-e.cfg.SearchHeight),
			X2: minInt(width, u.X2),
			Y2: minInt(height, u.Y()),
		}
	}

	xExpand := int(float64(width) * e.cfg.ExpandXFrac)
	yExpand := int(float64(e.cfg.SearchHeight) * e.cfg.ExpandYFrac)

	return Region{
		X1: maxInt(0, u.X1-xExpand),
		Y1: maxInt(0, u.Y()-e.cfg.SearchHeight-yExpand),
		X2: minInt(width, u.X2+xExpand),
		Y2: minInt(height, u.Y()+yExpand),
	}
}

// ExtractAll binds text to every underline. pageKey identifies the
// source image for the region-result cache (normally its file path).
// The returned binding has exactly one entry per underline, sorted by
// underline index.
func (e *Extractor) ExtractAll(ctx context.Context, pageKey string, img image.Image, underlines []detection.Underline) (Binding, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	results := make([]RegionText, len(underlines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

	for i, u := range underlines {
		// Too close to the top margin: page-edge noise, never queried.
		if u.Y() < e.cfg.TopMargin {
			e.log.Debug("skipping underline near top margin",
				zap.Int("index", u.Index), zap.Int("y", u.Y()))
			results[i] = RegionText{Index: u.Index, Text: ""}
			continue
		}

		i, u := i, u
		g.Go(func() error {
			region := e.RegionFor(u, width, height)
			text := e.extractOne(gctx, pageKey, img, region, u.Index)
			results[i] = RegionText{Index: u.Index, Text: text}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	binding := Binding(results)
	sort.Slice(binding, func(i, j int) bool {
		return binding[i].Index < binding[j].Index
	})

	e.log.Info("text extraction completed",
		zap.Int("regions", len(binding)),
		zap.Int("with_text", binding.NonEmpty()))
	return binding, nil
}

// extractOne runs a single region through the binder with the configured
// timeout. Any failure degrades to empty text.
func (e *Extractor) extractOne(ctx context.Context, pageKey string, img image.Image, region Region, index int) string {
	key := fmt.Sprintf("%s:%d:%d:%d:%d", pageKey, region.X1, region.Y1, region.X2, region.Y2)
	if cached, ok := e.cache.Get(key); ok {
		return cached.(string)
	}

	callCtx := ctx
	cancel := func() {}
	if timeout := e.cfg.Timeout.Std(); timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := e.binder.ExtractRegion(callCtx, img, region)
		done <- outcome{text: text, err: err}
	}()

	var text string
	select {
	case <-callCtx.Done():
		e.log.Warn("region extraction timed out",
			zap.Int("index", index), zap.Duration("timeout", e.cfg.Timeout.Std()))
	case out := <-done:
		if out.err != nil {
			e.log.Warn("region extraction failed",
				zap.Int("index", index), zap.Error(out.err))
		} else {
			text = CleanText(strings.TrimSpace(out.text))
			if text != "" {
				e.log.Debug("extracted region text",
					zap.Int("index", index), zap.String("text", text))
			}
		}
	}

	e.cache.Set(key, text, cache.DefaultExpiration)
	return text
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
