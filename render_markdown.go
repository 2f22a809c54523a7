// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// defaultTitle is used when neither the schema nor the caller provides a title.
	defaultTitle = "Schema"
	// defaultWrapWidth wraps plain description paragraphs at this width.
	defaultWrapWidth = 80
	// defaultListMarker is used when caller does not provide list marker style.
	defaultListMarker = "*"
)

// MarkdownOptions configures Markdown output.
type MarkdownOptions struct {
	// Title is the root heading when the schema has no lifted title.
	Title string
	// WrapWidth wraps description paragraphs; zero selects 80, negative disables wrapping.
	WrapWidth int
	// ListMarker is "*" or "-".
	ListMarker string
	// HeadingLevel is the root heading level, 1 to 6.
	HeadingLevel int
}

// normalized fills defaults.
func (o MarkdownOptions) normalized() MarkdownOptions {
	if strings.TrimSpace(o.Title) == "" {
		o.Title = defaultTitle
	}

	if o.WrapWidth == 0 {
		o.WrapWidth = defaultWrapWidth
	}

	o.ListMarker = normalizeListMarker(o.ListMarker)
	if o.HeadingLevel < 1 || o.HeadingLevel > 6 {
		o.HeadingLevel = 1
	}

	return o
}

// DefaultTitle derives heading text from source name: "app-config.schema.json" gives "App Config".
func DefaultTitle(source string) string {
	name := filepath.Base(strings.TrimSpace(source))
	for _, suffix := range []string{".json", ".yaml", ".yml"} {
		name = strings.TrimSuffix(name, suffix)
	}

	name = strings.TrimSuffix(name, ".schema")
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	if len(words) == 0 || name == "." || name == "-" {
		return defaultTitle
	}

	return cases.Title(language.English).String(strings.Join(words, " "))
}

// Markdown renders document tree as CommonMark with attribute anchors.
// Sections become headings with {#id}, tables nested definition lists,
// literal blocks fenced code, references links and warnings block quotes.
func Markdown(root *Node, opt MarkdownOptions) string {
	if root == nil {
		return ""
	}

	w := markdownWriter{opt: opt.normalized()}

	var lines []string
	if root.Kind == KindSection {
		lines = w.section(root, w.opt.HeadingLevel, true)
	} else {
		lines = w.block(root)
	}

	return ensureTrailingNewline(normalizeMarkdownOutput(strings.Join(lines, "\n")))
}

// markdownWriter converts nodes into markdown lines.
type markdownWriter struct {
	opt MarkdownOptions
}

// section renders heading and child blocks; nested sections go one level deeper.
func (w *markdownWriter) section(n *Node, level int, root bool) []string {
	title := n.Title
	if title == "" && root {
		title = w.opt.Title
	}

	var lines []string
	if title != "" {
		heading := strings.Repeat("#", min(level, 6)) + " " + singleLine(title)
		if n.Target != "" {
			heading += " {#" + n.Target + "}"
		}

		lines = append(lines, heading, "")
	} else if n.Target != "" {
		lines = append(lines, spanAnchor(n.Target), "")
	}

	for _, child := range n.Children {
		if child.Kind == KindSection {
			lines = append(lines, w.section(child, level+1, false)...)
		} else {
			lines = append(lines, w.block(child)...)
		}

		lines = append(lines, "")
	}

	return lines
}

// block renders one block-level node.
func (w *markdownWriter) block(n *Node) []string {
	switch n.Kind {
	case KindSection:
		return w.section(n, 2, false)
	case KindParagraph:
		if n.Text != "" {
			return w.description(n.Text)
		}
	case KindLiteralBlock:
		return fencedBlock(n.Title, n.Text)
	case KindTable:
		return w.table(n)
	case KindRow:
		return w.row(n)
	case KindList:
		return w.list(n)
	case KindItem:
		return w.list(&Node{Kind: KindList, Children: []*Node{n}})
	case KindWarning:
		return []string{"> **Warning:** " + singleLine(n.Text)}
	}

	if text, ok := w.inline(n); ok {
		return []string{text}
	}

	return nil
}

// inline renders node that fits on one line; ok is false for block content.
func (w *markdownWriter) inline(n *Node) (string, bool) {
	switch n.Kind {
	case KindText:
		return singleLine(n.Text), true
	case KindLiteral:
		if strings.Contains(n.Text, "\n") {
			return "", false
		}

		return codeSpan(n.Text), true
	case KindReference:
		if n.Target == "" {
			return codeSpan(n.Text), true
		}

		return "[" + codeSpan(n.Text) + "](#" + n.Target + ")", true
	case KindParagraph:
		if n.Text != "" || len(n.Children) == 0 {
			return "", false
		}

		var out strings.Builder
		for _, child := range n.Children {
			if child.Kind == KindText {
				out.WriteString(collapseSpace(child.Text))
				continue
			}

			text, ok := w.inline(child)
			if !ok {
				return "", false
			}

			out.WriteString(text)
		}

		return strings.TrimSpace(out.String()), true
	default:
		return "", false
	}
}

// table renders caption, description and one list item per row.
func (w *markdownWriter) table(n *Node) []string {
	var lines []string

	caption := ""
	if n.Target != "" {
		caption = spanAnchor(n.Target)
	}

	if n.Title != "" {
		caption = strings.TrimSpace(caption + " **" + escapeEmphasis(singleLine(n.Title)) + "**")
	}

	if caption != "" {
		lines = append(lines, caption, "")
	}

	if n.Text != "" {
		lines = append(lines, w.description(n.Text)...)
		lines = append(lines, "")
	}

	for _, child := range n.Children {
		lines = append(lines, w.block(child)...)
	}

	return lines
}

// row renders "* **key** _(annotation)_: inline" followed by indented nested blocks.
func (w *markdownWriter) row(n *Node) []string {
	head := w.opt.ListMarker + " **" + escapeEmphasis(singleLine(n.Title)) + "**"
	if n.Text != "" {
		head += " _(" + n.Text + ")_"
	}

	inline, nested := w.itemContent(n.Children)
	if inline != "" {
		head += ": " + inline
	}

	return append([]string{head}, indentLines(nested, "  ")...)
}

// list renders items with bullet or number markers.
func (w *markdownWriter) list(n *Node) []string {
	var lines []string
	for i, item := range n.Children {
		marker := w.opt.ListMarker
		if n.Ordered {
			marker = strconv.Itoa(i+1) + "."
		}

		children := item.Children
		if item.Kind != KindItem {
			children = []*Node{item}
		}

		head := marker
		if item.Kind == KindItem && item.Title != "" {
			head += " **" + escapeEmphasis(singleLine(item.Title)) + "**:"
		}

		inline, nested := w.itemContent(children)
		if inline != "" {
			head += " " + inline
		}

		lines = append(lines, head)
		lines = append(lines, indentLines(nested, strings.Repeat(" ", len(marker)+1))...)
	}

	return lines
}

// itemContent joins leading inline children and renders the rest as blocks.
func (w *markdownWriter) itemContent(children []*Node) (string, []string) {
	parts := make([]string, 0, len(children))
	index := 0
	for ; index < len(children); index++ {
		text, ok := w.inline(children[index])
		if !ok {
			break
		}

		parts = append(parts, text)
	}

	var nested []string
	for _, child := range children[index:] {
		block := w.block(child)
		if len(block) == 0 {
			continue
		}

		if !isPlainList(child) {
			nested = append(nested, "")
		}

		nested = append(nested, block...)
	}

	return strings.Join(parts, " "), nested
}

// description formats free text paragraphs with wrapping.
func (w *markdownWriter) description(text string) []string {
	formatted := formatDescriptionMarkdown(text, w.opt.WrapWidth, w.opt.ListMarker)
	if formatted == "" {
		return nil
	}

	return strings.Split(formatted, "\n")
}

// isPlainList reports whether node renders as bare list lines without caption.
func isPlainList(n *Node) bool {
	switch n.Kind {
	case KindList, KindRow:
		return true
	case KindTable:
		return n.Title == "" && n.Text == "" && n.Target == ""
	default:
		return false
	}
}

// fencedBlock renders fenced code block longer than any backtick run in text.
func fencedBlock(language, text string) []string {
	fence := strings.Repeat("`", max(3, longestRun(text, '`')+1))
	lines := []string{fence + language}
	lines = append(lines, strings.Split(normalizeLineEndings(text), "\n")...)
	return append(lines, fence)
}

// codeSpan renders inline code with delimiter longer than any backtick run in text.
func codeSpan(text string) string {
	text = singleLine(text)
	if text == "" {
		return "` `"
	}

	delimiter := strings.Repeat("`", longestRun(text, '`')+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		text = " " + text + " "
	}

	return delimiter + text + delimiter
}

// longestRun returns length of the longest run of r in text.
func longestRun(text string, r byte) int {
	longest, current := 0, 0
	for i := 0; i < len(text); i++ {
		if text[i] != r {
			current = 0
			continue
		}

		current++
		longest = max(longest, current)
	}

	return longest
}

// spanAnchor renders empty span carrying an identifier attribute.
func spanAnchor(id string) string {
	return "[]{#" + id + "}"
}

// markdownEscaper escapes characters that start emphasis or links in labels.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
)

// escapeEmphasis escapes markdown emphasis and link syntax.
func escapeEmphasis(text string) string {
	return markdownEscaper.Replace(text)
}

// singleLine squashes line breaks and repeated whitespace.
func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// collapseSpace folds whitespace runs into single spaces, keeping edge spaces.
func collapseSpace(text string) string {
	var out strings.Builder
	out.Grow(len(text))

	space := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !space {
				out.WriteByte(' ')
			}

			space = true
			continue
		}

		out.WriteRune(r)
		space = false
	}

	return out.String()
}

// indentLines prefixes non-blank lines.
func indentLines(lines []string, prefix string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line != "" {
			line = prefix + line
		}

		out[i] = line
	}

	return out
}

// normalizeListMarker validates list marker and falls back to default.
func normalizeListMarker(value string) string {
	switch strings.TrimSpace(value) {
	case "*":
		return "*"
	case "-":
		return "-"
	default:
		return defaultListMarker
	}
}

// formatDescriptionMarkdown wraps plain paragraphs and preserves markdown structures.
func formatDescriptionMarkdown(text string, wrapWidth int, listMarker string) string {
	text = normalizeLineEndings(text)
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	listMarker = normalizeListMarker(listMarker)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	paragraph := make([]string, 0, 4)
	inFence := false

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}

		joined := strings.Join(paragraph, " ")
		out = append(out, wrapParagraph(joined, wrapWidth)...)
		paragraph = paragraph[:0]
	}

	appendBlank := func() {
		if len(out) == 0 || out[len(out)-1] == "" {
			return
		}

		out = append(out, "")
	}

	for _, rawLine := range lines {
		line := strings.TrimRight(rawLine, " \t")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			flushParagraph()
			out = append(out, line)
			inFence = !inFence
			continue
		}

		if inFence {
			out = append(out, line)
			continue
		}

		if trimmed == "" {
			flushParagraph()
			appendBlank()
			continue
		}

		if isMarkdownStructuredLine(line) {
			flushParagraph()
			normalized := normalizeMarkdownStructuredLine(line, listMarker)
			if shouldInsertBlankBeforeList(normalized, out) {
				appendBlank()
			}

			out = append(out, normalized)
			continue
		}

		paragraph = append(paragraph, trimmed)
	}

	flushParagraph()
	return strings.Join(out, "\n")
}

// shouldInsertBlankBeforeList reports whether list line needs a blank separator from previous paragraph line.
func shouldInsertBlankBeforeList(line string, out []string) bool {
	if !isListLine(line) {
		return false
	}

	if len(out) == 0 {
		return false
	}

	previous := out[len(out)-1]
	trimmedPrevious := strings.TrimSpace(previous)
	if trimmedPrevious == "" {
		return false
	}

	if isListLine(previous) {
		return false
	}

	return !isMarkdownStructuredLine(previous)
}

// isListLine reports whether line is unordered or ordered markdown list item.
func isListLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	prefixes := []string{"- ", "* ", "+ "}
	for _, prefix := range prefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	return hasOrderedListPrefix(trimmed)
}

// isMarkdownStructuredLine reports whether line must bypass normal paragraph wrapping.
func isMarkdownStructuredLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	if isIndentedCodeLine(line) {
		return true
	}

	prefixes := []string{
		"#",
		">",
		"- ",
		"* ",
		"+ ",
		"|",
		"```",
		"---",
		"***",
		"___",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	return hasOrderedListPrefix(trimmed)
}

// isIndentedCodeLine reports whether line starts with markdown code indentation.
func isIndentedCodeLine(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

// normalizeMarkdownStructuredLine normalizes list markers and indentation while preserving other structures.
func normalizeMarkdownStructuredLine(line, listMarker string) string {
	if isIndentedCodeLine(line) {
		return line
	}

	if normalized, ok := normalizeUnorderedListLine(line, listMarker); ok {
		return normalized
	}

	if normalized, ok := normalizeOrderedListLine(line); ok {
		return normalized
	}

	return line
}

// normalizeUnorderedListLine normalizes markdown unordered list marker and indentation.
func normalizeUnorderedListLine(line, listMarker string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 {
		return "", false
	}

	marker := trimmed[0]
	if marker != '-' && marker != '*' && marker != '+' {
		return "", false
	}

	if !strings.HasPrefix(trimmed[1:], " ") && !strings.HasPrefix(trimmed[1:], "\t") {
		return "", false
	}

	content := strings.TrimSpace(trimmed[1:])
	indentLevel := listIndentLevel(leadingIndentColumns(line))
	normalized := strings.Repeat("  ", indentLevel) + listMarker
	if content != "" {
		normalized += " " + content
	}

	return normalized, true
}

// normalizeOrderedListLine normalizes markdown ordered list indentation.
func normalizeOrderedListLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	index := 0
	for index < len(trimmed) && trimmed[index] >= '0' && trimmed[index] <= '9' {
		index++
	}

	if index == 0 || index+1 >= len(trimmed) {
		return "", false
	}

	marker := trimmed[index]
	if marker != '.' && marker != ')' {
		return "", false
	}

	if trimmed[index+1] != ' ' && trimmed[index+1] != '\t' {
		return "", false
	}

	content := strings.TrimSpace(trimmed[index+1:])
	indentLevel := listIndentLevel(leadingIndentColumns(line))
	normalized := strings.Repeat("  ", indentLevel) + trimmed[:index+1]
	if content != "" {
		normalized += " " + content
	}

	return normalized, true
}

// leadingIndentColumns returns visual indentation width for leading spaces and tabs.
func leadingIndentColumns(line string) int {
	columns := 0
	for _, r := range line {
		switch r {
		case ' ':
			columns++
		case '\t':
			columns += 4
		default:
			return columns
		}
	}

	return columns
}

// listIndentLevel maps raw indentation width to normalized markdown list nesting level.
func listIndentLevel(columns int) int {
	if columns <= 1 {
		return 0
	}

	return columns / 2
}

// hasOrderedListPrefix reports whether line starts with ordered list marker.
func hasOrderedListPrefix(line string) bool {
	index := 0
	for index < len(line) && line[index] >= '0' && line[index] <= '9' {
		index++
	}

	if index == 0 || index+1 >= len(line) {
		return false
	}

	marker := line[index]
	if marker != '.' && marker != ')' {
		return false
	}

	return line[index+1] == ' '
}

// wrapParagraph wraps one plain paragraph to max rune width.
func wrapParagraph(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	out := make([]string, 0, 2)
	current := words[0]
	currentLen := utf8.RuneCountInString(current)

	for _, word := range words[1:] {
		wordLen := utf8.RuneCountInString(word)
		if currentLen+1+wordLen <= width {
			current += " " + word
			currentLen += 1 + wordLen
			continue
		}

		out = append(out, current)
		current = word
		currentLen = wordLen
	}

	out = append(out, current)
	return out
}

// normalizeLineEndings converts CRLF/CR to LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}

// normalizeMarkdownOutput collapses extra blank lines outside fenced blocks.
func normalizeMarkdownOutput(text string) string {
	text = normalizeLineEndings(text)
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	inFence := false
	blankCount := 0
	for _, rawLine := range lines {
		line := strings.TrimRight(rawLine, " \t")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			out = append(out, line)
			blankCount = 0
			continue
		}

		if !inFence && trimmed == "" {
			if blankCount == 0 {
				out = append(out, "")
			}

			blankCount++
			continue
		}

		blankCount = 0
		out = append(out, line)
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// ensureTrailingNewline guarantees exactly one trailing newline in output.
func ensureTrailingNewline(value string) string {
	value = strings.TrimRight(value, "\n")
	return value + "\n"
}
