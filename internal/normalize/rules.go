// Package normalize applies deterministic substitution rules to settled
// utterances before they are interpreted. Typical use is repairing
// recognizer misfires ("text" heard for "next") per deployment.
package normalize

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

type rule struct {
	pattern     *regexp.Regexp
	literal     string
	replacement string
}

func (r rule) apply(input string) (string, bool) {
	if r.pattern != nil {
		output := r.pattern.ReplaceAllString(input, r.replacement)
		return output, output != input
	}
	output := strings.ReplaceAll(input, r.literal, r.replacement)
	return output, output != input
}

// Engine applies substitution rules loaded from a rules file.
type Engine struct {
	rules     []rule
	loopLimit int
}

// NewEngine loads rules from a file. A missing or empty path yields a pass-through
// engine. Lines are either `old => new` literal swaps or `re/pattern/replacement`
// regex swaps; `#` starts a comment.
func NewEngine(path string, loopLimit int) (*Engine, error) {
	if loopLimit <= 0 {
		loopLimit = 30
	}

	if strings.TrimSpace(path) == "" {
		return &Engine{loopLimit: loopLimit}, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Engine{loopLimit: loopLimit}, nil
		}
		return nil, fmt.Errorf("failed to read rules file %q: %w", path, err)
	}

	rules, err := parseRules(string(contents))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rules file %q: %w", path, err)
	}

	return &Engine{rules: rules, loopLimit: loopLimit}, nil
}

func parseRules(contents string) ([]rule, error) {
	var rules []rule
	for lineNo, line := range strings.Split(contents, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "re/"); ok {
			parts := strings.SplitN(rest, "/", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("line %d: malformed regex rule", lineNo+1)
			}
			pattern, err := regexp.Compile(parts[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
			}
			rules = append(rules, rule{pattern: pattern, replacement: parts[1]})
			continue
		}

		old, replacement, ok := strings.Cut(line, "=>")
		if !ok {
			return nil, fmt.Errorf("line %d: expected `old => new`", lineNo+1)
		}
		old = strings.TrimSpace(old)
		if old == "" {
			return nil, fmt.Errorf("line %d: empty match text", lineNo+1)
		}
		rules = append(rules, rule{literal: old, replacement: strings.TrimSpace(replacement)})
	}
	return rules, nil
}

// Apply transforms text deterministically, re-running the rule set until it
// stops changing the text or the iteration limit is reached.
func (e *Engine) Apply(text string) string {
	if len(e.rules) == 0 {
		return text
	}

	result := text
	for i := 0; i < e.loopLimit; i++ {
		changed := false
		for _, r := range e.rules {
			next, ruleChanged := r.apply(result)
			if ruleChanged {
				result = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return result
}
