package lead

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vmkdlabs/leadgate/pkg/core/types"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Optional country code, optional separators, 3-5 digit groups.
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3,5}\)?[-.\s]?\d{3,5}[-.\s]?\d{3,5}`)

	// Name phrases in priority order. The Tamil rule matches "en peyar X"
	// style introductions (பெயர் / பேர் = name).
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:my\s+)?name\s+(?:is\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`(?i)(?:i\s+am|i'm)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`(?:\x{0BAA}\x{0BC6}\x{0BAF}\x{0BB0}\x{0BCD}|\x{0BAA}\x{0BC7}\x{0BB0}\x{0BCD})\s+(.+?)(?:[,.\s]|$)`),
	}

	// Field-label words are not part of a name; anything from the first such
	// word onward is dropped from the capture, and a capture that is nothing
	// but a label word (the "is" in "name is A" when the one-letter name
	// fails to match) is discarded outright.
	nameTrailerPattern = regexp.MustCompile(`(?i)\s+(and|my|mobile|email|phone|number|is).*$`)
	nameLabelPattern   = regexp.MustCompile(`(?i)^(?:and|my|mobile|email|phone|number|is)$`)

	// Requirement phrases in priority order. The Tamil rule matches
	// "X vendum" (வேண்டும் = want/need) statements.
	requirementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:i\s+)?(?:need|want|require|looking\s+for|interested\s+in)\s+(.+?)(?:\.|$)`),
		regexp.MustCompile(`(.+?)\s+\x{0BB5}\x{0BC7}\x{0BA3}\x{0BCD}\x{0B9F}\x{0BC1}\x{0BAE}\x{0BCD}`),
	}
)

const (
	minNameRunes        = 2
	minRequirementRunes = 5
	maxFallbackRunes    = 200
)

// FromConversation scans every user-authored turn plus the current message
// for an email, a phone number, a name, and a requirement. The fields
// resolve in that order and the first three gate the result: if any of them
// is missing the whole strategy fails. The requirement always has a
// fallback (the first user turn, truncated), so a conversation with
// email+phone+name never fails on the requirement alone.
func (e *Extractor) FromConversation(currentMessage string, history []types.Turn) *types.Lead {
	userTexts := make([]string, 0, len(history)+1)
	for _, turn := range history {
		if turn.Role == types.RoleUser && turn.Content != "" {
			userTexts = append(userTexts, turn.Content)
		}
	}
	userTexts = append(userTexts, currentMessage)

	combined := strings.Join(userTexts, " ")

	email := emailPattern.FindString(combined)
	if email == "" {
		return nil
	}

	phone := strings.TrimSpace(phonePattern.FindString(combined))
	if phone == "" {
		return nil
	}

	name := findName(userTexts)
	if name == "" {
		return nil
	}

	requirement := findRequirement(userTexts)
	if requirement == "" {
		return nil
	}

	return &types.Lead{
		Name:        name,
		Mobile:      phone,
		Email:       email,
		Requirement: requirement,
	}
}

// findName tries each name pattern against every user turn. The outer loop
// is the pattern list, so pattern priority dominates turn order.
func findName(userTexts []string) string {
	for _, pattern := range namePatterns {
		for _, text := range userTexts {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			name := strings.TrimSpace(m[1])
			name = nameTrailerPattern.ReplaceAllString(name, "")
			if nameLabelPattern.MatchString(name) {
				continue
			}
			if utf8.RuneCountInString(name) >= minNameRunes {
				return name
			}
		}
	}
	return ""
}

func findRequirement(userTexts []string) string {
	for _, pattern := range requirementPatterns {
		for _, text := range userTexts {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			requirement := strings.TrimSpace(m[1])
			if utf8.RuneCountInString(requirement) >= minRequirementRunes {
				return requirement
			}
		}
	}

	// No intent phrase anywhere: fall back to the first user turn as the
	// requirement, truncated.
	if len(userTexts) > 0 {
		return truncateRunes(userTexts[0], maxFallbackRunes)
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
