package editor

import (
	"strings"

	"go.lsp.dev/protocol"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// ChangedRange locates the span of to that differs from from, as a
// line/character range into to. ok is false when the texts are equal.
func ChangedRange(from, to string) (r protocol.Range, ok bool) {
	if from == to {
		return protocol.Range{}, false
	}
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := diffCfg.DiffMain(from, to, doMultiLine)

	// Offsets into to. Deletions occupy no space there, so a pure
	// deletion collapses to a point at the cut.
	off := 0
	start, end := -1, -1
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffEqual:
			off += len(diff.Text)
		case diffpatch.DiffInsert:
			if start < 0 {
				start = off
			}
			off += len(diff.Text)
			end = off
		case diffpatch.DiffDelete:
			if start < 0 {
				start = off
			}
			if end < off {
				end = off
			}
		}
	}
	if start < 0 {
		return protocol.Range{}, false
	}
	return protocol.Range{
		Start: position(to, start),
		End:   position(to, end),
	}, true
}

func position(text string, off int) protocol.Position {
	line, col := 0, 0
	for i := 0; i < off && i < len(text); i++ {
		if text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return protocol.Position{Line: uint32(line), Character: uint32(col)}
}
