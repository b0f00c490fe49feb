package usecase

import (
	"strings"

	"voxform/internal/domain"
)

// Keyword sets for the voice control grammar. Photo-attach decisions use
// explicit yes/no tokens; falling through to the generic advance phrases was
// too easy to trigger by accident.
var (
	advanceSuffixes = []string{"okay done", "ok done"}
	yesTokens       = map[string]bool{"yes": true, "yeah": true, "yep": true}
	noTokens        = map[string]bool{"no": true, "nope": true, "skip": true}
)

// Classify turns a settled utterance into a command. Pure; matching is
// case-insensitive. Anything that is not a control phrase is a verbatim
// answer in answer mode and ignored otherwise.
func Classify(text string, mode domain.InputMode) domain.Command {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	switch mode {
	case domain.InputModePhotoDecision:
		for _, token := range strings.Fields(lower) {
			if yesTokens[token] {
				return domain.Command{Kind: domain.CommandDecideYes}
			}
			if noTokens[token] {
				return domain.Command{Kind: domain.CommandDecideNo}
			}
		}
		return domain.Command{Kind: domain.CommandIgnore}

	case domain.InputModePhotoAttach:
		if hasAnySuffix(lower, advanceSuffixes) {
			return domain.Command{Kind: domain.CommandConfirmDone}
		}
		return domain.Command{Kind: domain.CommandIgnore}
	}

	if strings.Contains(lower, "reset") {
		return domain.Command{Kind: domain.CommandReset}
	}
	if hasToken(lower, "next") || hasAnySuffix(lower, advanceSuffixes) {
		return domain.Command{Kind: domain.CommandAdvance}
	}
	if trimmed == "" {
		return domain.Command{Kind: domain.CommandIgnore}
	}
	return domain.Command{Kind: domain.CommandAnswer, Text: trimmed}
}

func hasAnySuffix(text string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(text, suffix) {
			return true
		}
	}
	return false
}

func hasToken(text string, token string) bool {
	for _, word := range strings.Fields(text) {
		if word == token {
			return true
		}
	}
	return false
}
