// Package classify maps raw user text to languages, menu options and
// commands. All functions are pure and stateless: they never error, and
// unmatched input yields the zero value so the dialogue controller owns
// every fallback decision.
package classify

import (
	"strings"

	"github.com/kolhapurmc/civicbot/internal/menu"
	"github.com/kolhapurmc/civicbot/internal/models"
)

// Command is an explicit slash command that bypasses the state machine.
type Command string

const (
	CommandHelp  Command = "/help"
	CommandMenu  Command = "/menu"
	CommandClear Command = "/clear"
)

// languageKeywords maps each language to the digit and name spellings that
// select it. The keyword sets are disjoint, so match order never matters.
var languageKeywords = map[models.Language][]string{
	models.LanguageEnglish: {"english"},
	models.LanguageMarathi: {"marathi", "मराठी"},
	models.LanguageHindi:   {"hindi", "हिंदी", "हिन्दी"},
}

var languageDigits = map[string]models.Language{
	"1": models.LanguageEnglish,
	"2": models.LanguageMarathi,
	"3": models.LanguageHindi,
}

// menuTriggers are words that re-display the main menu from any state.
var menuTriggers = []string{
	"menu", "help", "options", "services",
	"मेनू", "मदत", "पर्याय", "सेवा",
	"मदद", "विकल्प", "सेवाएं",
}

// ParseCommand recognizes /help, /menu and /clear, case-insensitively,
// matched exactly against the trimmed message body.
func ParseCommand(text string) (Command, bool) {
	switch Command(strings.ToLower(strings.TrimSpace(text))) {
	case CommandHelp:
		return CommandHelp, true
	case CommandMenu:
		return CommandMenu, true
	case CommandClear:
		return CommandClear, true
	}
	return "", false
}

// LanguageChoice resolves a language selection from a digit or a language
// name in Latin or native script. Returns LanguageUnset when nothing matches.
func LanguageChoice(text string) models.Language {
	trimmed := strings.TrimSpace(text)
	if lang, ok := languageDigits[trimmed]; ok {
		return lang
	}
	lower := strings.ToLower(trimmed)
	for _, lang := range []models.Language{models.LanguageEnglish, models.LanguageMarathi, models.LanguageHindi} {
		for _, kw := range languageKeywords[lang] {
			if strings.Contains(lower, kw) {
				return lang
			}
		}
	}
	return models.LanguageUnset
}

// MenuSelection resolves user text against a menu option set. An exact
// trimmed match on the numeric key wins; failing that, the first option in
// catalog order whose label in any language (or keyword) appears in the
// input is returned.
func MenuSelection(text string, options []menu.Option) (menu.Option, bool) {
	trimmed := strings.TrimSpace(text)
	for _, opt := range options {
		if trimmed == opt.Number {
			return opt, true
		}
	}
	lower := strings.ToLower(trimmed)
	for _, opt := range options {
		for _, label := range opt.Labels {
			if label != "" && strings.Contains(lower, strings.ToLower(label)) {
				return opt, true
			}
		}
		for _, kw := range opt.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return opt, true
			}
		}
	}
	return menu.Option{}, false
}

// DisasterSubOption resolves user text against the disaster sub-menu.
func DisasterSubOption(text string) (menu.Option, bool) {
	return MenuSelection(text, menu.DisasterSub())
}

// IsMenuTrigger reports whether the input contains any of the fixed menu
// trigger words, case-insensitively, independent of state.
func IsMenuTrigger(text string) bool {
	lower := strings.ToLower(text)
	for _, trigger := range menuTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}
