// Package controller turns user events into state changes. Handlers never
// block on the provider: OnSend runs the call on its own goroutine and
// dispatches the outcome back into the store.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nguyenvanduocit/tradutor/pkg/prompt"
	"github.com/nguyenvanduocit/tradutor/pkg/session"
	"github.com/nguyenvanduocit/tradutor/pkg/translator"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

var imageExtensions = []string{".png", ".jpg", ".jpeg"}

type Options struct {
	// ProviderName is used in user facing messages, e.g. "Groq".
	ProviderName string
	Logger       *slog.Logger
}

type Controller struct {
	ctx           context.Context
	store         *session.Store
	newTranslator translator.Factory
	providerName  string
	log           *slog.Logger
	wg            sync.WaitGroup
}

// New returns a Controller. ctx bounds every provider call; cancel it to
// abandon in-flight requests on shutdown.
func New(ctx context.Context, store *session.Store, factory translator.Factory, opts Options) *Controller {
	if opts.ProviderName == "" {
		opts.ProviderName = translator.DisplayName("")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Controller{
		ctx:           ctx,
		store:         store,
		newTranslator: factory,
		providerName:  opts.ProviderName,
		log:           opts.Logger,
	}
}

func (c *Controller) Store() *session.Store {
	return c.store
}

func (c *Controller) OnInputChanged(text string) session.State {
	return c.store.Dispatch(session.InputChanged{Text: text})
}

// OnSend validates the input and the credential and starts a translation.
// Only one translation runs at a time; a send while one is pending is
// answered with a notification.
func (c *Controller) OnSend() session.State {
	var req request

	st := c.store.Update(func(st session.State) []session.Action {
		switch {
		case st.Input == "":
			return notify(session.Failure, "Please enter text to translate")
		case !st.Settings.HasAPIKey():
			return notify(session.Failure, fmt.Sprintf("Please enter your %s API Key", c.providerName))
		case st.Pending:
			return notify(session.Info, "Translation already in progress")
		}

		req = request{
			mode:   st.Mode,
			source: st.Settings.Source,
			target: st.Settings.Target,
			text:   st.Input,
			apiKey: st.Settings.APIKey,
		}
		return []session.Action{session.TranslationStarted{}}
	})

	if req.text == "" {
		return st
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.translate(req)
	}()

	return st
}

type request struct {
	mode   prompt.Mode
	source session.Language
	target session.Language
	text   string
	apiKey string
}

func (c *Controller) translate(req request) {
	start := time.Now()
	log := c.log.With("mode", req.mode, "source", req.source, "target", req.target)

	text, err := c.call(req)
	if err != nil {
		log.Error("translation failed", "kind", translator.KindOf(err), "error", err, "duration", time.Since(start))
		c.store.Dispatch(session.TranslationFailed{}, session.Notified{Kind: session.Failure, Message: c.errorMessage(err)})
		return
	}

	log.Info("translation done", "duration", time.Since(start), "chars", len(text))
	c.store.Dispatch(session.TranslationSucceeded{Text: text})
}

func (c *Controller) call(req request) (string, error) {
	t, err := c.newTranslator(req.apiKey)
	if err != nil {
		return "", err
	}

	p := prompt.Build(req.mode, string(req.source), string(req.target), req.text)
	return t.Translate(c.ctx, p)
}

func (c *Controller) errorMessage(err error) string {
	var te *translator.Error
	if errors.As(err, &te) {
		switch te.Kind {
		case translator.KindProvider:
			return fmt.Sprintf("%s API error: %s", c.providerName, te.Message)
		case translator.KindMissingCredential:
			return fmt.Sprintf("Please enter your %s API Key", c.providerName)
		}
	}
	return fmt.Sprintf("Translation error: %s", err)
}

// Wait blocks until every started translation has been dispatched.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) OnSaveAPIKey(key string) session.State {
	if key == "" {
		return c.store.State()
	}
	return c.store.Dispatch(session.APIKeySaved{Key: key}, session.Notified{Kind: session.Success, Message: "API Key saved!"})
}

func (c *Controller) OnTabChanged(index int) (session.State, error) {
	mode, err := session.ModeForTab(index)
	if err != nil {
		return c.store.State(), err
	}
	return c.store.Dispatch(session.ModeChanged{Mode: mode}), nil
}

func (c *Controller) OnLanguagesChanged(source, target string) (session.State, error) {
	src, err := session.ParseLanguage(source)
	if err != nil {
		return c.store.State(), fmt.Errorf("source: %w", err)
	}
	tgt, err := session.ParseLanguage(target)
	if err != nil {
		return c.store.State(), fmt.Errorf("target: %w", err)
	}
	return c.store.Dispatch(session.LanguagesChanged{Source: src, Target: tgt}), nil
}

func (c *Controller) OnThemeToggle() session.State {
	return c.store.Dispatch(session.ThemeToggled{})
}

func (c *Controller) OnFontSizeChanged(size int) session.State {
	return c.store.Dispatch(session.FontSizeChanged{Size: size})
}

// OnFilePicked acknowledges a selected image. The file is never read.
func (c *Controller) OnFilePicked(name string) (session.State, error) {
	if name == "" {
		return c.store.State(), nil
	}
	if !isImage(name) {
		return c.store.State(), fmt.Errorf("%w: %s", ErrUnsupportedImage, name)
	}
	return c.store.Dispatch(session.Notified{Kind: session.Info, Message: "Selected file: " + filepath.Base(name)}), nil
}

func (c *Controller) OnVoiceStart() session.State {
	return c.store.Dispatch(session.Notified{Kind: session.Info, Message: "Voice input not implemented yet"})
}

func isImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func notify(kind session.NotificationKind, message string) []session.Action {
	return []session.Action{session.Notified{Kind: kind, Message: message}}
}
