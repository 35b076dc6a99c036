package highlight

import (
	"bytes"
	"context"
	"html"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// span is a single capture's byte range and the dotted highlight name
// that produced it.
type span struct {
	start, end uint32
	name       string
}

// render parses code with cfg's language, runs its query over the
// resulting tree, and emits HTML with `<span class='...'>` wrappers
// around each flattened, non-overlapping capture. Any failure (parse,
// non-UTF8 output) falls back to the plain escaped-code rendering.
func render(cfg *HighlighterConfig, code []byte) string {
	parser := sitter.NewParser()
	parser.SetLanguage(cfg.language)
	tree, err := parser.ParseCtx(context.Background(), nil, code)
	if err != nil || tree == nil {
		return escapeCode(code)
	}

	cursor := sitter.NewQueryCursor()
	cursor.Exec(cfg.query, tree.RootNode())

	spans := make([]span, 0, 64)
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			spans = append(spans, span{
				start: c.Node.StartByte(),
				end:   c.Node.EndByte(),
				name:  cfg.query.CaptureNameForId(c.Index),
			})
		}
	}

	flattened := flattenSpans(spans)

	var buf bytes.Buffer
	pos := uint32(0)
	for _, s := range flattened {
		if s.start > uint32(len(code)) || s.end > uint32(len(code)) || s.start > s.end {
			return escapeCode(code)
		}
		if s.start < pos {
			continue
		}
		buf.WriteString(html.EscapeString(string(code[pos:s.start])))
		classes := strings.ReplaceAll(s.name, ".", " ")
		buf.WriteString("<span class='")
		buf.WriteString(classes)
		buf.WriteString("'>")
		buf.WriteString(html.EscapeString(string(code[s.start:s.end])))
		buf.WriteString("</span>")
		pos = s.end
	}
	buf.WriteString(html.EscapeString(string(code[pos:])))

	if !bufferIsValidUTF8(buf.Bytes()) {
		return escapeCode(code)
	}
	return buf.String()
}

// flattenSpans sorts captures by start position (widest first on ties)
// and keeps only the outermost, non-overlapping span in each region —
// nested captures within an already-opened span are dropped rather than
// producing nested <span> tags, which the renderer does not emit.
func flattenSpans(spans []span) []span {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	out := make([]span, 0, len(spans))
	var lastEnd uint32
	for _, s := range spans {
		if len(out) > 0 && s.start < lastEnd {
			continue
		}
		out = append(out, s)
		lastEnd = s.end
	}
	return out
}

func escapeCode(code []byte) string {
	return html.EscapeString(string(code))
}

func bufferIsValidUTF8(b []byte) bool {
	return strings.ToValidUTF8(string(b), "") == string(b)
}
