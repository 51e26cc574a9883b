// Package session holds the in-memory state of the running application: the
// session settings, the active mode, the input and preview buffers and the
// last notification. State only changes through Reduce.
package session

import (
	"fmt"

	"github.com/nguyenvanduocit/tradutor/pkg/prompt"
)

type Language string

const (
	English    Language = "en"
	Portuguese Language = "pt"
	Spanish    Language = "es"
)

// Languages lists the supported languages in dropdown order.
var Languages = []Language{English, Portuguese, Spanish}

var languageLabels = map[Language]string{
	English:    "Inglês",
	Portuguese: "Português",
	Spanish:    "Espanhol",
}

func (l Language) Valid() bool {
	_, ok := languageLabels[l]
	return ok
}

func (l Language) Label() string {
	return languageLabels[l]
}

// ParseLanguage accepts one of the supported codes.
func ParseLanguage(code string) (Language, error) {
	l := Language(code)
	if !l.Valid() {
		return "", fmt.Errorf("unsupported language %q", code)
	}
	return l, nil
}

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Icon is the icon of the theme toggle: it shows the theme you switch to.
func (t Theme) Icon() string {
	if t == Dark {
		return "light_mode"
	}
	return "dark_mode"
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

const (
	MinFontSize     = 10
	MaxFontSize     = 30
	DefaultFontSize = 14
)

// ClampFontSize forces size into [MinFontSize, MaxFontSize].
func ClampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

// Settings are the user choices for the current run. They are never persisted.
type Settings struct {
	Source   Language `json:"source"`
	Target   Language `json:"target"`
	FontSize int      `json:"fontSize"`
	Theme    Theme    `json:"theme"`
	APIKey   string   `json:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		Source:   English,
		Target:   Portuguese,
		FontSize: DefaultFontSize,
		Theme:    Light,
	}
}

func (s Settings) HasAPIKey() bool {
	return s.APIKey != ""
}

// ModeForTab maps a tab index to its mode.
func ModeForTab(index int) (prompt.Mode, error) {
	if index < 0 || index >= len(prompt.Modes) {
		return "", fmt.Errorf("unknown tab %d", index)
	}
	return prompt.Modes[index], nil
}

// TabForMode is the inverse of ModeForTab. Unknown modes map to the first tab.
func TabForMode(mode prompt.Mode) int {
	for i, m := range prompt.Modes {
		if m == mode {
			return i
		}
	}
	return 0
}

type NotificationKind string

const (
	Info    NotificationKind = "info"
	Success NotificationKind = "success"
	Failure NotificationKind = "error"
)

// Notification is a transient message. A new ID means a new message, even
// when the text repeats.
type Notification struct {
	ID      uint64           `json:"id"`
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

type State struct {
	Settings     Settings
	Mode         prompt.Mode
	Input        string
	Preview      string
	Pending      bool
	Notification Notification
	// Revision grows by one on every dispatched action.
	Revision uint64
}

func NewState(settings Settings) State {
	return State{
		Settings: settings,
		Mode:     prompt.ModeGeneral,
	}
}
