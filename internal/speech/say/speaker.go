// Package say speaks prompt text through a text-to-speech subprocess
// (espeak-ng on Linux, say on macOS).
package say

import (
	"log"
	"os/exec"
	"strings"
)

// Speaker runs one subprocess per prompt. Playback is fire and forget; a
// failed or missing TTS binary only loses audio, never the session.
type Speaker struct {
	command string
}

func NewSpeaker(command string) *Speaker {
	if command == "" {
		command = "espeak-ng"
	}
	return &Speaker{command: command}
}

func (s *Speaker) Speak(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	go func() {
		if err := exec.Command(s.command, text).Run(); err != nil {
			log.Printf("[say] prompt playback failed: %v", err)
		}
	}()
}
