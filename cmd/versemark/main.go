package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/inkmark/versemark/internal/config"
	"github.com/inkmark/versemark/internal/debug"
	"github.com/inkmark/versemark/internal/imaging"
	"github.com/inkmark/versemark/internal/ocr"
	"github.com/inkmark/versemark/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	args := os.Args[1:]

	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Printf("versemark %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}

	var configPath, debugDir string
	paths := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			i++
			if i < len(args) {
				configPath = args[i]
			}
		case "--debug-dir":
			i++
			if i < len(args) {
				debugDir = args[i]
			}
		default:
			paths = append(paths, args[i])
		}
	}

	if len(paths) == 0 {
		usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("config error: %v", err)
		}
		cfg = loaded
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	binder := ocr.NewTesseractBinder(cfg.Extract.Language)
	p := pipeline.New(cfg, binder, logger)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	exitCode := 0
	for _, path := range paths {
		result := p.ProcessImage(context.Background(), path)
		if err := encoder.Encode(result); err != nil {
			log.Fatalf("failed to encode result: %v", err)
		}
		if !result.Success {
			exitCode = 1
		}

		if debugDir != "" {
			if err := writeDebugImages(debugDir, path, p, result, cfg); err != nil {
				logger.Warn("failed to write debug images", zap.Error(err))
			}
		}
		p.Evict(path)
	}

	os.Exit(exitCode)
}

// writeDebugImages dumps the run's overlay images for inspection.
func writeDebugImages(dir, path string, p *pipeline.Pipeline, result *pipeline.Result, cfg *config.Config) error {
	diag := result.Diagnostics()
	if diag == nil {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	base := filepath.Base(path)
	cache := imaging.NewImageCache()
	img, err := cache.Load(path)
	if err != nil {
		return err
	}
	bounds := img.Bounds()

	if mask := diag.InkMask(); mask != nil {
		if err := writePNG(filepath.Join(dir, base+".mask.png"), mask.ToGray()); err != nil {
			return err
		}
	}

	underlines := diag.Underlines()
	if len(underlines) > 0 {
		overlay := debug.UnderlineOverlay(img, underlines)
		if err := writePNG(filepath.Join(dir, base+".underlines.png"), overlay); err != nil {
			return err
		}

		extractor := ocr.NewExtractor(cfg.Extract, nil, nil)
		regions := make([]ocr.Region, len(underlines))
		for i, u := range underlines {
			regions[i] = extractor.RegionFor(u, bounds.Dx(), bounds.Dy())
		}
		overlay = debug.RegionOverlay(img, underlines, regions, diag.Binding())
		if err := writePNG(filepath.Join(dir, base+".regions.png"), overlay); err != nil {
			return err
		}
	}

	if len(result.Verses) > 0 {
		overlay := debug.VerseOverlay(img, result.Verses, underlines)
		if err := writePNG(filepath.Join(dir, base+".verses.png"), overlay); err != nil {
			return err
		}
	}

	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func usage() {
	fmt.Println("versemark - locate underlined verses on photographed book pages")
	fmt.Println()
	fmt.Println("Usage: versemark [options] <image> [<image>...]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config <path>     YAML config overriding the tuned defaults")
	fmt.Println("  --debug-dir <path>  Write overlay images for each processed page")
	fmt.Println("  --version, -v       Print version information")
	fmt.Println("  --help, -h          Print this help message")
	fmt.Println()
	fmt.Println("Results are printed to stdout as JSON, one object per image.")
	fmt.Println("Requires Tesseract OCR and language data installed on the system.")
}
