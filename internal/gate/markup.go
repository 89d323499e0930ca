package gate

import (
	"regexp"
	"strings"
)

// Section content must be plain text. These patterns detect the markup
// families the glossary forbids. The structural validator applies them as
// a hard failure; the semantic checker re-applies them as a
// defense-in-depth sweep.
var (
	fencedCodeRe = regexp.MustCompile("```")
	inlineCodeRe = regexp.MustCompile("`[^`]+`")
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	boldRe       = regexp.MustCompile(`\*\*[^*]+\*\*`)
	italicStarRe = regexp.MustCompile(`\*[^*\s][^*]*\*`)
	// Underscore italic requires surrounding boundaries so snake_case
	// identifiers in plain text do not trip it.
	italicUndRe = regexp.MustCompile(`(?:^|[\s(])_[^_\s][^_]*_(?:[\s).,;:!?]|$)`)
	headingRe   = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s`)
)

// detectMarkup returns the names of markup constructs found in content,
// in a stable order. An empty result means the content is plain text.
func detectMarkup(content string) []string {
	var found []string

	if fencedCodeRe.MatchString(content) {
		found = append(found, "fenced code")
		// Strip fences so their backticks do not also trip the inline
		// code pattern.
		content = fencedCodeRe.ReplaceAllString(content, "")
	}
	if inlineCodeRe.MatchString(content) {
		found = append(found, "inline code")
	}
	if imageRe.MatchString(content) {
		found = append(found, "image")
		content = imageRe.ReplaceAllString(content, "")
	}
	if linkRe.MatchString(content) {
		found = append(found, "link")
	}
	if boldRe.MatchString(content) {
		found = append(found, "bold")
		// Bold markers contain the italic marker; strip them before the
		// italic check.
		content = boldRe.ReplaceAllString(content, "")
	}
	if italicStarRe.MatchString(content) || italicUndRe.MatchString(content) {
		found = append(found, "italic")
	}
	if headingRe.MatchString(content) {
		found = append(found, "heading")
	}

	return found
}

// markupMessage renders the detected construct list for an issue message.
func markupMessage(found []string) string {
	return "content contains markup (" + strings.Join(found, ", ") + "); sections must be plain text"
}
