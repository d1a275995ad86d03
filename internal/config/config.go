package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "20s" or "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	*d = Duration(n)
	return nil
}

// Std returns the standard library duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config collects every tunable threshold used by the pipeline.
//
// The detection and scoring heuristics were tuned against real page
// photographs; the defaults below reproduce that tuning. Load a YAML
// file to override individual values without code edits.
type Config struct {
	Preprocess PreprocessConfig `yaml:"preprocess"`
	Detect     DetectConfig     `yaml:"detect"`
	Extract    ExtractConfig    `yaml:"extract"`
	Assemble   AssembleConfig   `yaml:"assemble"`
	Score      ScoreConfig      `yaml:"score"`
}

// PreprocessConfig controls ink-mask construction.
type PreprocessConfig struct {
	// BilateralRadius is the half-width of the edge-preserving smoothing
	// window (radius 4 gives the 9x9 neighbourhood the tuning assumed).
	BilateralRadius int     `yaml:"bilateral_radius"`
	SigmaColor      float64 `yaml:"sigma_color"`
	SigmaSpace      float64 `yaml:"sigma_space"`

	// ThresholdWindow is the side of the local adaptive-threshold window.
	// Must be odd.
	ThresholdWindow int     `yaml:"threshold_window"`
	ThresholdOffset float64 `yaml:"threshold_offset"`

	// MorphKernel is the square kernel side for the close/open cleanup.
	MorphKernel int `yaml:"morph_kernel"`
}

// DetectConfig controls underline detection, filtering and merging.
type DetectConfig struct {
	// KernelDivisors scale the erosion-bank kernel widths relative to
	// image width. MinKernelWidths are the per-divisor floors.
	KernelDivisors  []int `yaml:"kernel_divisors"`
	MinKernelWidths []int `yaml:"min_kernel_widths"`
	KernelHeights   []int `yaml:"kernel_heights"`

	// CloseDivisor scales the horizontal closing kernel that bridges
	// gaps in a broken stroke.
	CloseDivisor  int `yaml:"close_divisor"`
	MinCloseWidth int `yaml:"min_close_width"`

	HoughThreshold int `yaml:"hough_threshold"`
	MinLineDivisor int `yaml:"min_line_divisor"`
	MinLineFloor   int `yaml:"min_line_floor"`
	MaxLineGap     int `yaml:"max_line_gap"`

	AngleTolerance float64 `yaml:"angle_tolerance"`
	MinLengthFrac  float64 `yaml:"min_length_frac"`
	MaxLengthFrac  float64 `yaml:"max_length_frac"`
	EdgeMargin     int     `yaml:"edge_margin"`

	// TextSearchHeight and TextDensityMin gate segments on ink evidence
	// in the band immediately above them.
	TextSearchHeight int     `yaml:"text_search_height"`
	TextDensityMin   float64 `yaml:"text_density_min"`

	MergeYThreshold int `yaml:"merge_y_threshold"`
	MergeXGap       int `yaml:"merge_x_gap"`
}

// ExtractConfig controls the OCR region geometry and worker pool.
type ExtractConfig struct {
	SearchHeight  int     `yaml:"search_height"`
	ExpandContext bool    `yaml:"expand_context"`
	ExpandXFrac   float64 `yaml:"expand_x_frac"`
	ExpandYFrac   float64 `yaml:"expand_y_frac"`

	// TopMargin: underlines closer than this to the top of the page are
	// bound to empty text without querying OCR.
	TopMargin int `yaml:"top_margin"`

	Workers  int      `yaml:"workers"`
	Timeout  Duration `yaml:"timeout"`
	Language string   `yaml:"language"`
	CacheTTL Duration `yaml:"cache_ttl"`
}

// AssembleConfig controls verse block grouping.
type AssembleConfig struct {
	MaxYGap int `yaml:"max_y_gap"`
}

// ScoreConfig holds the confidence weights and the heuristic canonical
// bounds. The bounds are an approximation of real canons, not truth.
type ScoreConfig struct {
	MaxChapter     int `yaml:"max_chapter"`
	MaxVerse       int `yaml:"max_verse"`
	CommonVerseMax int `yaml:"common_verse_max"`

	LengthBonusLong    float64 `yaml:"length_bonus_long"`
	LengthBonusShort   float64 `yaml:"length_bonus_short"`
	ChapterVerseBonus  float64 `yaml:"chapter_verse_bonus"`
	BareNumberBonus    float64 `yaml:"bare_number_bonus"`
	BookNameBonus      float64 `yaml:"book_name_bonus"`
	ValidityBonus      float64 `yaml:"validity_bonus"`
	CommonVerseBonus   float64 `yaml:"common_verse_bonus"`
	InvalidPenalty     float64 `yaml:"invalid_penalty"`
	ShortPenalty       float64 `yaml:"short_penalty"`
	QualityWeight      float64 `yaml:"quality_weight"`
	BoundaryPenalty    float64 `yaml:"boundary_penalty"`
	ArtifactPenalty    float64 `yaml:"artifact_penalty"`
	QfBoundaryPenalty  float64 `yaml:"qf_boundary_penalty"`
	EntropyNormalizer  float64 `yaml:"entropy_normalizer"`
	EntropyWeight      float64 `yaml:"entropy_weight"`
	MaxCharFrequency   float64 `yaml:"max_char_frequency"`
	MaxSymbolRatio     float64 `yaml:"max_symbol_ratio"`
}

// Default returns the tuned configuration.
func Default() *Config {
	return &Config{
		Preprocess: PreprocessConfig{
			BilateralRadius: 4,
			SigmaColor:      75,
			SigmaSpace:      75,
			ThresholdWindow: 11,
			ThresholdOffset: 2,
			MorphKernel:     3,
		},
		Detect: DetectConfig{
			KernelDivisors:   []int{80, 60, 40},
			MinKernelWidths:  []int{10, 20, 30},
			KernelHeights:    []int{1, 2, 3},
			CloseDivisor:     50,
			MinCloseWidth:    20,
			HoughThreshold:   70,
			MinLineDivisor:   20,
			MinLineFloor:     50,
			MaxLineGap:       35,
			AngleTolerance:   10,
			MinLengthFrac:    0.05,
			MaxLengthFrac:    0.95,
			EdgeMargin:       80,
			TextSearchHeight: 15,
			TextDensityMin:   0.02,
			MergeYThreshold:  15,
			MergeXGap:        50,
		},
		Extract: ExtractConfig{
			SearchHeight:  50,
			ExpandContext: true,
			ExpandXFrac:   0.1,
			ExpandYFrac:   0.3,
			TopMargin:     100,
			Workers:       4,
			Timeout:       Duration(20 * time.Second),
			Language:      "eng",
			CacheTTL:      Duration(5 * time.Minute),
		},
		Assemble: AssembleConfig{
			MaxYGap: 100,
		},
		Score: ScoreConfig{
			MaxChapter:        150,
			MaxVerse:          176,
			CommonVerseMax:    50,
			LengthBonusLong:   0.3,
			LengthBonusShort:  0.2,
			ChapterVerseBonus: 0.4,
			BareNumberBonus:   0.3,
			BookNameBonus:     0.5,
			ValidityBonus:     0.3,
			CommonVerseBonus:  0.1,
			InvalidPenalty:    0.8,
			ShortPenalty:      0.2,
			QualityWeight:     0.4,
			BoundaryPenalty:   0.5,
			ArtifactPenalty:   0.8,
			QfBoundaryPenalty: 0.6,
			EntropyNormalizer: 4.5,
			EntropyWeight:     0.2,
			MaxCharFrequency:  0.3,
			MaxSymbolRatio:    0.4,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the algorithms cannot work with.
func (c *Config) Validate() error {
	if c.Preprocess.ThresholdWindow%2 == 0 || c.Preprocess.ThresholdWindow < 3 {
		return fmt.Errorf("threshold_window must be odd and >= 3, got %d", c.Preprocess.ThresholdWindow)
	}
	if len(c.Detect.KernelDivisors) == 0 {
		return fmt.Errorf("kernel_divisors must not be empty")
	}
	if len(c.Detect.MinKernelWidths) != len(c.Detect.KernelDivisors) {
		return fmt.Errorf("min_kernel_widths must match kernel_divisors in length")
	}
	if c.Extract.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Extract.Workers)
	}
	if c.Score.MaxChapter < 1 || c.Score.MaxVerse < 1 {
		return fmt.Errorf("verse bounds must be positive")
	}
	return nil
}
