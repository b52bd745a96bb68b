package service

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/repository"
)

// InstagramCaptionLimit is the maximum caption length Instagram accepts.
const InstagramCaptionLimit = 2200

const (
	sectionMain     = "Main Content"
	sectionHashtags = "Hashtags"
	sectionCTA      = "Call to Action"
)

var markdown = goldmark.New()

// section is a level 1 or 2 heading and the byte range of its body.
type section struct {
	title string
	start int
	end   int
}

// ParseContent extracts the main, hashtags and call to action sections.
// Level 1 and 2 headings end a section; text under any other heading is
// dropped.
func ParseContent(src string) models.ContentDocument {
	source := []byte(src)
	sections := splitSections(source)

	var doc models.ContentDocument
	for _, sec := range sections {
		body := trimBlankLines(string(source[sec.start:sec.end]))
		switch {
		case strings.HasPrefix(sec.title, sectionMain):
			doc.Main = appendPart(doc.Main, body)
		case strings.HasPrefix(sec.title, sectionHashtags):
			doc.Hashtags = appendPart(doc.Hashtags, body)
		case strings.HasPrefix(sec.title, sectionCTA):
			doc.CTA = appendPart(doc.CTA, body)
		}
	}
	return doc
}

// FormatPost joins the non-empty parts as main, call to action, hashtags.
func FormatPost(doc models.ContentDocument) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{doc.Main, doc.CTA, doc.Hashtags} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}

// LoadPostContent reads <platform>-content.md from dir, falling back to
// content.md. It returns the parsed document and the file that was used.
func LoadPostContent(dir, platform string) (models.ContentDocument, string, error) {
	candidates := []string{
		filepath.Join(dir, platform+"-content.md"),
		filepath.Join(dir, "content.md"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return models.ContentDocument{}, path, err
		}
		return ParseContent(string(data)), path, nil
	}

	return models.ContentDocument{}, "", &repository.NotFoundError{Path: candidates[1], Err: os.ErrNotExist}
}

// ExtractTitle returns the text of the first level 1 heading, or "".
func ExtractTitle(src string) string {
	source := []byte(src)
	root := markdown.Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(headingText(h, source))
			if title != "" {
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	return title
}

// ManualPost is a formatted post ready to be pasted by hand.
type ManualPost struct {
	Text    string
	Length  int
	TooLong bool
}

func NewManualPost(doc models.ContentDocument) *ManualPost {
	text := FormatPost(doc)
	n := utf8.RuneCountInString(text)
	return &ManualPost{Text: text, Length: n, TooLong: n > InstagramCaptionLimit}
}

func splitSections(source []byte) []section {
	root := markdown.Parser().Parse(text.NewReader(source))

	var sections []section
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > 2 || h.Lines().Len() == 0 {
			continue
		}

		first := h.Lines().At(0)
		last := h.Lines().At(h.Lines().Len() - 1)
		lineStart := bytes.LastIndexByte(source[:first.Start], '\n') + 1
		bodyStart := last.Stop
		if bodyStart == 0 || source[bodyStart-1] != '\n' {
			bodyStart = lineEnd(source, bodyStart)
		}
		if !isATXHeading(source[lineStart:]) {
			// skip the setext underline
			bodyStart = lineEnd(source, bodyStart)
		}

		if len(sections) > 0 {
			sections[len(sections)-1].end = lineStart
		}
		sections = append(sections, section{
			title: strings.TrimSpace(headingText(h, source)),
			start: bodyStart,
			end:   len(source),
		})
	}
	return sections
}

func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		seg := lines.At(i)
		b.Write(bytes.TrimSpace(seg.Value(source)))
	}
	return b.String()
}

// lineEnd returns the offset just past the newline that ends the line
// containing pos.
func lineEnd(source []byte, pos int) int {
	if pos >= len(source) {
		return len(source)
	}
	i := bytes.IndexByte(source[pos:], '\n')
	if i < 0 {
		return len(source)
	}
	return pos + i + 1
}

func isATXHeading(line []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(line, " "), []byte("#"))
}

func trimBlankLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	out := lines[start:end]
	for i, l := range out {
		out[i] = strings.TrimRight(l, " \t")
	}
	return strings.Join(out, "\n")
}

func appendPart(existing, part string) string {
	switch {
	case part == "":
		return existing
	case existing == "":
		return part
	}
	return existing + "\n\n" + part
}
