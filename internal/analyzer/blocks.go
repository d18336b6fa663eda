package analyzer

// Block is a contiguous run of non-zero projection entries, inclusive on both ends
type Block struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
	Size  int `yaml:"size"`
}

func newBlock(start, end int) Block {
	return Block{Start: start, End: end, Size: end - start + 1}
}

// BlockOptions controls the post-processing applied by DetectBlocksWith
type BlockOptions struct {
	GapTolerance  int // Blocks separated by at most this many empty entries are merged
	MinBlockWidth int // Blocks narrower than this are dropped after merging
}

// DetectBlocks scans counts left to right and returns every maximal non-zero run.
// A block still open at the last index is closed there.
func DetectBlocks(counts []int) []Block {
	blocks := []Block{}
	inBlock := false
	start := 0
	last := len(counts) - 1

	for i, v := range counts {
		empty := v == 0
		if !empty && !inBlock {
			inBlock = true
			start = i
		}
		if (empty || i == last) && inBlock {
			end := i
			if empty {
				end = i - 1
			}
			blocks = append(blocks, newBlock(start, end))
			inBlock = false
		}
	}

	return blocks
}

// MergeBlocks joins consecutive blocks whose gap is at most gapTolerance.
// The input is not modified.
func MergeBlocks(blocks []Block, gapTolerance int) []Block {
	if gapTolerance <= 0 || len(blocks) < 2 {
		return append([]Block(nil), blocks...)
	}

	merged := make([]Block, 0, len(blocks))
	cur := blocks[0]
	for _, b := range blocks[1:] {
		gap := b.Start - cur.End - 1
		if gap <= gapTolerance {
			cur = newBlock(cur.Start, b.End)
			continue
		}
		merged = append(merged, cur)
		cur = b
	}
	merged = append(merged, cur)

	return merged
}

// FilterBlocks drops blocks whose size is below minWidth
func FilterBlocks(blocks []Block, minWidth int) []Block {
	kept := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Size < minWidth {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// DetectBlocksWith runs DetectBlocks followed by gap merging and size filtering
func DetectBlocksWith(counts []int, opts BlockOptions) []Block {
	blocks := DetectBlocks(counts)
	blocks = MergeBlocks(blocks, opts.GapTolerance)
	return FilterBlocks(blocks, opts.MinBlockWidth)
}
