package usecase

import (
	"testing"

	"voxform/internal/domain"
)

func TestClassifyAnswerMode(t *testing.T) {
	t.Parallel()

	cases := map[string]domain.Command{
		"good condition":            {Kind: domain.CommandAnswer, Text: "good condition"},
		"  Tires look fine  ":       {Kind: domain.CommandAnswer, Text: "Tires look fine"},
		"next":                      {Kind: domain.CommandAdvance},
		"NEXT":                      {Kind: domain.CommandAdvance},
		"all good next":             {Kind: domain.CommandAdvance},
		"that is everything ok done": {Kind: domain.CommandAdvance},
		"okay done":                 {Kind: domain.CommandAdvance},
		"reset":                     {Kind: domain.CommandReset},
		"please reset that":         {Kind: domain.CommandReset},
		"":                          {Kind: domain.CommandIgnore},
	}

	for text, want := range cases {
		text := text
		want := want
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			got := Classify(text, domain.InputModeAnswer)
			if got.Kind != want.Kind || got.Text != want.Text {
				t.Fatalf("Classify(%q) = %+v, want %+v", text, got, want)
			}
		})
	}
}

func TestClassifyDoesNotTreatSubstringsAsCommands(t *testing.T) {
	t.Parallel()

	// "nexus" contains "nex"; "annexed" contains "next" but not as a token.
	got := Classify("the annexed building", domain.InputModeAnswer)
	if got.Kind != domain.CommandAnswer {
		t.Fatalf("expected answer, got %+v", got)
	}
}

func TestClassifyPhotoDecisionMode(t *testing.T) {
	t.Parallel()

	cases := map[string]domain.CommandKind{
		"yes":                 domain.CommandDecideYes,
		"yes please":          domain.CommandDecideYes,
		"Yeah":                domain.CommandDecideYes,
		"no":                  domain.CommandDecideNo,
		"no thanks":           domain.CommandDecideNo,
		"skip":                domain.CommandDecideNo,
		"I do not know":       domain.CommandIgnore,
		"the tires look fine": domain.CommandIgnore,
		"":                    domain.CommandIgnore,
	}

	for text, want := range cases {
		if got := Classify(text, domain.InputModePhotoDecision); got.Kind != want {
			t.Fatalf("Classify(%q) = %v, want %v", text, got.Kind, want)
		}
	}
}

func TestClassifyPhotoDecisionIgnoresEmbeddedTokens(t *testing.T) {
	t.Parallel()

	// "know" must not register as "no".
	if got := Classify("I know", domain.InputModePhotoDecision); got.Kind != domain.CommandIgnore {
		t.Fatalf("expected ignore for embedded token, got %v", got.Kind)
	}
}

func TestClassifyPhotoAttachMode(t *testing.T) {
	t.Parallel()

	cases := map[string]domain.CommandKind{
		"ok done":              domain.CommandConfirmDone,
		"okay done":            domain.CommandConfirmDone,
		"all captured ok done": domain.CommandConfirmDone,
		"done ok":              domain.CommandIgnore,
		"next":                 domain.CommandIgnore,
		"some answer":          domain.CommandIgnore,
	}

	for text, want := range cases {
		if got := Classify(text, domain.InputModePhotoAttach); got.Kind != want {
			t.Fatalf("Classify(%q) = %v, want %v", text, got.Kind, want)
		}
	}
}
