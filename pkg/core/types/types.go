// Package types defines the wire-level conversation and lead structures
// shared between the core components and the gateway handlers.
package types

// Language is one of the supported response languages.
type Language string

const (
	LangTamil   Language = "ta"
	LangEnglish Language = "en"
	LangHindi   Language = "hi"

	// LangAuto is a request-side hint only; detection always resolves it to
	// one of the three concrete languages above.
	LangAuto Language = "auto"
)

// Valid reports whether l is a concrete supported language.
func (l Language) Valid() bool {
	switch l {
	case LangTamil, LangEnglish, LangHindi:
		return true
	default:
		return false
	}
}

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single conversation turn. Turns are caller-supplied and never
// mutated by the gateway; the server holds no cross-request state.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Lead is the contact record opportunistically extracted from a
// conversation. It is all-or-nothing: every field is non-empty or the lead
// does not exist.
type Lead struct {
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	Requirement string `json:"requirement"`
}

// Complete reports whether every field of the lead is populated.
func (l *Lead) Complete() bool {
	return l != nil && l.Name != "" && l.Mobile != "" && l.Email != "" && l.Requirement != ""
}
