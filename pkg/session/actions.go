package session

import "github.com/nguyenvanduocit/tradutor/pkg/prompt"

// Action is an event that changes State.
type Action interface {
	reduce(s *State)
}

type InputChanged struct{ Text string }

type ModeChanged struct{ Mode prompt.Mode }

type LanguagesChanged struct{ Source, Target Language }

type ThemeToggled struct{}

type FontSizeChanged struct{ Size int }

type APIKeySaved struct{ Key string }

type TranslationStarted struct{}

type TranslationSucceeded struct{ Text string }

// TranslationFailed ends a pending request without touching the preview.
type TranslationFailed struct{}

type Notified struct {
	Kind    NotificationKind
	Message string
}

func (a InputChanged) reduce(s *State) {
	s.Input = a.Text
	s.Preview = a.Text
}

func (a ModeChanged) reduce(s *State) {
	if a.Mode.Valid() {
		s.Mode = a.Mode
	}
}

func (a LanguagesChanged) reduce(s *State) {
	if a.Source.Valid() {
		s.Settings.Source = a.Source
	}
	if a.Target.Valid() {
		s.Settings.Target = a.Target
	}
}

func (ThemeToggled) reduce(s *State) {
	s.Settings.Theme = s.Settings.Theme.Toggle()
}

func (a FontSizeChanged) reduce(s *State) {
	s.Settings.FontSize = ClampFontSize(a.Size)
}

func (a APIKeySaved) reduce(s *State) {
	if a.Key != "" {
		s.Settings.APIKey = a.Key
	}
}

func (TranslationStarted) reduce(s *State) {
	s.Pending = true
}

func (a TranslationSucceeded) reduce(s *State) {
	s.Pending = false
	s.Preview = a.Text
}

func (TranslationFailed) reduce(s *State) {
	s.Pending = false
}

func (a Notified) reduce(s *State) {
	s.Notification = Notification{
		ID:      s.Notification.ID + 1,
		Kind:    a.Kind,
		Message: a.Message,
	}
}

// Reduce applies the actions to s in order and returns the new state.
func Reduce(s State, actions ...Action) State {
	for _, a := range actions {
		a.reduce(&s)
	}
	s.Revision++
	return s
}
