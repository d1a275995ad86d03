package verse

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/inkmark/versemark/internal/config"
	"github.com/inkmark/versemark/internal/detection"
	"github.com/inkmark/versemark/internal/ocr"
)

// Block is one assembled verse: its identifier, the concatenated text of
// every underline that belongs to it, and a confidence in [0, 1].
//
// Blocks are value types. Merging two blocks produces a new block and
// discards the originals; UnderlineIndices is never empty and is sorted
// in detection order; Confidence is recomputed on every merge.
type Block struct {
	Text             string     `json:"text"`
	Identifier       Identifier `json:"identifier"`
	Content          string     `json:"content"`
	UnderlineIndices []int      `json:"underline_indices"`
	Confidence       float64    `json:"confidence"`
	Y                int        `json:"y_position"`
	Metrics          Metrics    `json:"metrics"`
}

// Assembler groups text-bound underlines into verse blocks.
type Assembler struct {
	cfg    config.AssembleConfig
	scorer *Scorer
	log    *zap.Logger
}

// NewAssembler creates an assembler. A nil logger disables logging.
func NewAssembler(cfg config.AssembleConfig, scorer *Scorer, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{cfg: cfg, scorer: scorer, log: log}
}

// DetectBlocks scans bound underlines in vertical order. An underline
// whose text yields an identifier starts a block; following underlines
// continue that block as long as they do not carry an identifier of
// their own, so one verse underlined across several printed lines
// assembles back into a single block. Underlines with empty text belong
// to no block. An empty result is normal, not an error.
func (a *Assembler) DetectBlocks(binding ocr.Binding, underlines []detection.Underline) []Block {
	positions := make(map[int]int, len(underlines))
	for _, u := range underlines {
		positions[u.Index] = u.Y()
	}

	blocks := make([]Block, 0)

	var texts []string
	var indices []int
	var current Identifier
	var currentY int
	open := false

	flush := func() {
		if !open {
			return
		}
		blocks = append(blocks, a.buildBlock(current, texts, indices, currentY))
		open = false
	}

	for _, rt := range binding {
		text := strings.TrimSpace(rt.Text)
		if text == "" {
			continue
		}

		id, found := ParseIdentifier(text)
		if found {
			flush()
			current = id
			currentY = positions[rt.Index]
			texts = []string{text}
			indices = []int{rt.Index}
			open = true
			continue
		}

		if open {
			texts = append(texts, text)
			indices = append(indices, rt.Index)
		}
		// An orphan continuation before any identifier joins no block.
	}
	flush()

	a.log.Info("assembled verse blocks", zap.Int("blocks", len(blocks)))
	return blocks
}

func (a *Assembler) buildBlock(id Identifier, texts []string, indices []int, y int) Block {
	combined := strings.Join(texts, " ")
	content := StripContent(combined, id.Raw)
	confidence, metrics := a.scorer.Score(content, id)

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)

	a.log.Debug("detected verse",
		zap.String("identifier", id.Raw),
		zap.Ints("underlines", sorted),
		zap.Float64("confidence", confidence))

	return Block{
		Text:             combined,
		Identifier:       id,
		Content:          content,
		UnderlineIndices: sorted,
		Confidence:       confidence,
		Y:                y,
		Metrics:          metrics,
	}
}

// GroupRelated re-clusters blocks by vertical proximity, merging verse
// fragments that ended up in separate blocks but sit close together on
// the page. A merged block concatenates text, unions underline indices,
// keeps the first block's identifier as canonical, and averages vertical
// position and confidence.
func (a *Assembler) GroupRelated(blocks []Block) []Block {
	if len(blocks) == 0 {
		return nil
	}

	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	grouped := make([]Block, 0, len(sorted))
	group := []Block{sorted[0]}

	for _, b := range sorted[1:] {
		if abs(b.Y-group[len(group)-1].Y) <= a.cfg.MaxYGap {
			group = append(group, b)
		} else {
			grouped = append(grouped, a.mergeGroup(group))
			group = []Block{b}
		}
	}
	grouped = append(grouped, a.mergeGroup(group))

	a.log.Info("grouped verse blocks",
		zap.Int("before", len(blocks)),
		zap.Int("after", len(grouped)))
	return grouped
}

func (a *Assembler) mergeGroup(group []Block) Block {
	if len(group) == 1 {
		return group[0]
	}

	texts := make([]string, len(group))
	indices := make([]int, 0)
	confidenceSum := 0.0
	ySum := 0
	for i, b := range group {
		texts[i] = b.Text
		indices = append(indices, b.UnderlineIndices...)
		confidenceSum += b.Confidence
		ySum += b.Y
	}
	sort.Ints(indices)

	first := group[0]

	// The averaged confidence keeps the two-stage scoring of formation
	// then grouping; the metrics breakdown is recomputed so diagnostics
	// never go stale.
	_, metrics := a.scorer.Score(first.Content, first.Identifier)

	return Block{
		Text:             strings.Join(texts, " "),
		Identifier:       first.Identifier,
		Content:          first.Content,
		UnderlineIndices: indices,
		Confidence:       confidenceSum / float64(len(group)),
		Y:                ySum / len(group),
		Metrics:          metrics,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
