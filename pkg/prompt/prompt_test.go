package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAllModesAndPairs(t *testing.T) {
	langs := []string{"en", "pt", "es"}
	modes := append([]Mode{"unknown"}, Modes...)

	for _, mode := range modes {
		for _, source := range langs {
			for _, target := range langs {
				got := Build(mode, source, target, "Hello world")
				assert.NotEmpty(t, got)
				assert.Contains(t, got, "Hello world", "mode=%s %s->%s", mode, source, target)
			}
		}
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		source   string
		target   string
		text     string
		contains []string
	}{
		{
			name:     "general translation names target",
			mode:     ModeGeneral,
			source:   "en",
			target:   "pt",
			text:     "Hello world",
			contains: []string{"Traduza para pt", "quebras de linhas", "\n\nHello world"},
		},
		{
			name:     "term definition topics",
			mode:     ModeTerm,
			source:   "en",
			target:   "pt",
			text:     "run",
			contains: []string{"definition", "phonetics", "synonyms", "etymology", "en definitions", "translation into pt", "10 words", "run"},
		},
		{
			name:     "teach mode",
			mode:     ModeTeach,
			source:   "es",
			target:   "en",
			text:     "hola",
			contains: []string{`Me ensine, em en, o termo "hola" do es.`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.ToLower(Build(tt.mode, tt.source, tt.target, tt.text))
			for _, want := range tt.contains {
				assert.Contains(t, got, strings.ToLower(want))
			}
		})
	}
}

func TestBuildUnknownModeFallsBack(t *testing.T) {
	assert.Equal(t, Build(ModeGeneral, "en", "es", "line one\nline two"), Build("other", "en", "es", "line one\nline two"))
}

func TestModeValid(t *testing.T) {
	for _, m := range Modes {
		assert.True(t, m.Valid())
	}
	assert.False(t, Mode("todo").Valid())
}
