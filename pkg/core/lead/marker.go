// Package lead extracts sales-lead contact records from model replies and
// conversation transcripts. Extraction is best-effort: it either produces a
// fully populated record or nothing, and it never fails the request that
// invoked it.
package lead

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/vmkdlabs/leadgate/pkg/core/types"
)

// The model signals a captured lead by appending a delimited JSON block to
// its reply. The block appears at most once per reply.
const (
	MarkerOpen  = "|||LEAD_DATA|||"
	MarkerClose = "|||END_LEAD_DATA|||"
)

var markerPattern = regexp.MustCompile(`(?s)\|\|\|LEAD_DATA\|\|\|\s*(\{.*?\})\s*\|\|\|END_LEAD_DATA\|\|\|`)

// Extractor pulls lead records out of replies and conversations. Malformed
// payloads are logged and discarded, never surfaced as errors.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an extractor. A nil logger falls back to slog.Default.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// FromReply parses the marker block embedded in a model reply. It returns
// nil when the block is absent, its JSON is malformed, or any of the four
// required fields is missing or empty.
func (e *Extractor) FromReply(reply string) *types.Lead {
	m := markerPattern.FindStringSubmatch(reply)
	if m == nil {
		return nil
	}

	var lead types.Lead
	if err := json.Unmarshal([]byte(m[1]), &lead); err != nil {
		e.logger.Error("failed to parse lead marker JSON", "error", err)
		return nil
	}
	if !lead.Complete() {
		e.logger.Warn("lead marker missing required fields",
			"has_name", lead.Name != "",
			"has_mobile", lead.Mobile != "",
			"has_email", lead.Email != "",
			"has_requirement", lead.Requirement != "")
		return nil
	}
	return &lead
}

// Strip removes the marker block, markers and payload included, from a
// reply and trims surrounding whitespace. Stripping already-clean text is a
// no-op, so Strip is idempotent.
func Strip(reply string) string {
	return strings.TrimSpace(markerPattern.ReplaceAllString(reply, ""))
}
