// Package speechtext prepares model reply text for speech synthesis.
// Markup, contact identifiers, and symbol noise read terribly when spoken,
// so they are stripped and the sentence fragments left behind are repaired.
package speechtext

import (
	"regexp"
	"strings"
)

// rewrite is a single ordered transform. Later rules assume earlier ones
// already ran, so the slice order is load-bearing.
type rewrite struct {
	re   *regexp.Regexp
	repl string
}

var rewrites = []rewrite{
	// Markdown emphasis: **text**, *text*, __text__, _text_.
	{regexp.MustCompile(`\*{1,3}(.+?)\*{1,3}`), "$1"},
	{regexp.MustCompile(`_{1,3}(.+?)_{1,3}`), "$1"},

	// Heading markers at line starts.
	{regexp.MustCompile(`(?m)^#{1,6}\s*`), ""},

	// Links collapse to their label.
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},

	// Inline code markers.
	{regexp.MustCompile("`([^`]+)`"), "$1"},

	// Bullet and numbered list markers.
	{regexp.MustCompile(`(?m)^\s*[-*•]\s+`), ""},
	{regexp.MustCompile(`(?m)^\s*\d+\.\s+`), ""},

	// Horizontal rules.
	{regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`), ""},

	// Emails and URLs are never spoken.
	{regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), ""},
	{regexp.MustCompile(`https?://[^\s]+`), ""},

	// "CRM/ERP" reads as "CRM or ERP".
	{regexp.MustCompile(`(\w)/(\w)`), "$1 or $2"},

	// Box-drawing divider glyphs.
	{regexp.MustCompile(`[━═╌│┃┌┐└┘├┤┬┴┼]`), ""},

	// Remaining symbols, keeping the punctuation that creates natural
	// pauses: period, comma, question mark, exclamation, colon,
	// apostrophe, hyphen.
	{regexp.MustCompile("[*#~^`|\\\\/@$%&+={}\\[\\]<>\";]"), ""},

	// Repair fragments left dangling after email/URL removal.
	{regexp.MustCompile(`(?m)\b(?:at|to)\s+or\s+(?:visit|call)?\s*$`), "."},
	{regexp.MustCompile(`reach us at\s*or\s*`), "reach us. "},
	{regexp.MustCompile(`reach us at\s*\.`), "reach us."},
	{regexp.MustCompile(`reach us\s+\.`), "reach us."},
	{regexp.MustCompile(`(?m)\bat\s*\.\s*$`), "."},
	{regexp.MustCompile(`(?m)\bvisit\s*\.\s*$`), "."},
	{regexp.MustCompile(`(?m)You can reach us\s+or\s*$`), "You can reach us."},
	{regexp.MustCompile(`(?m)\bor\s+visit\s*\.?\s*$`), "."},
	{regexp.MustCompile(`(?m)\bat\s*$`), "."},

	// Symbol stripping also ate the "+" off phone numbers; restore it for
	// country-code-shaped sequences.
	{regexp.MustCompile(`\b(91-\d)`), "+$1"},

	// Whitespace collapse.
	{regexp.MustCompile(`  +`), " "},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// Normalize transforms reply text into a form suitable for speech
// synthesis. It is pure and total: any input produces some output.
func Normalize(text string) string {
	for _, rw := range rewrites {
		text = rw.re.ReplaceAllString(text, rw.repl)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
