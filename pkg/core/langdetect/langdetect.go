// Package langdetect classifies text into one of the supported languages
// using Unicode script ranges.
package langdetect

import "github.com/vmkdlabs/leadgate/pkg/core/types"

// Detect returns the language of text based on the scripts it contains.
// Tamil characters win over Devanagari, and English is the fallback when
// neither script is present. Detect never fails; there is no unknown state.
func Detect(text string) types.Language {
	hasDevanagari := false
	for _, r := range text {
		if r >= 0x0B80 && r <= 0x0BFF {
			return types.LangTamil
		}
		if r >= 0x0900 && r <= 0x097F {
			hasDevanagari = true
		}
	}
	if hasDevanagari {
		return types.LangHindi
	}
	return types.LangEnglish
}

// Script returns the language implied by the scripts present in text. It
// reports false when the text contains neither Tamil nor Devanagari
// characters, leaving the decision to the caller.
func Script(text string) (types.Language, bool) {
	hasDevanagari := false
	for _, r := range text {
		if r >= 0x0B80 && r <= 0x0BFF {
			return types.LangTamil, true
		}
		if r >= 0x0900 && r <= 0x097F {
			hasDevanagari = true
		}
	}
	if hasDevanagari {
		return types.LangHindi, true
	}
	return "", false
}

// Resolve maps a caller-supplied hint to a concrete language, running
// detection on text when the hint is auto or unrecognized.
func Resolve(hint types.Language, text string) types.Language {
	if hint.Valid() {
		return hint
	}
	return Detect(text)
}
