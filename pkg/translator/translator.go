package translator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Translator sends a prompt to a completion provider and returns the text of
// the first answer.
type Translator interface {
	Translate(ctx context.Context, prompt string) (string, error)
}

// Factory opens a Translator scoped to a single API key.
type Factory func(apiKey string) (Translator, error)

// Kind classifies a failed call.
type Kind int

const (
	// KindTransport covers network failures and unexpected response shapes.
	KindTransport Kind = iota
	// KindProvider means the provider answered and rejected the request.
	KindProvider
	// KindMissingCredential means no API key was supplied.
	KindMissingCredential
)

func (k Kind) String() string {
	switch k {
	case KindProvider:
		return "provider"
	case KindMissingCredential:
		return "missing_credential"
	default:
		return "transport"
	}
}

var ErrMissingCredential = &Error{Kind: KindMissingCredential, Message: "missing API key"}

var ErrNoCompletion = errors.New("no translation received")

// Error is returned by every Translator in this package.
type Error struct {
	Kind     Kind
	Provider string
	// Message is the provider's own message for KindProvider.
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMissingCredential) match on kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil && t.Provider == ""
}

// KindOf returns the classification of err. Errors not produced by this package
// count as transport errors.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindTransport
}

func transportError(provider string, err error) error {
	return &Error{Kind: KindTransport, Provider: provider, Err: err}
}

func providerError(provider, message string, err error) error {
	return &Error{Kind: KindProvider, Provider: provider, Message: message, Err: err}
}

const (
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
)

// Config describes the provider used by NewFactory.
type Config struct {
	Provider string
	Model    string
	BaseURL  string
	// RequestTimeout of zero keeps the provider default.
	RequestTimeout time.Duration
	// RateLimit is the number of requests per minute; zero disables it.
	RateLimit int
	// CacheTTL of zero disables the response cache.
	CacheTTL     time.Duration
	CacheMaxCost int64
}

// DisplayName is the provider name shown to the user.
func DisplayName(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "Anthropic"
	default:
		return "Groq"
	}
}

// NewFactory validates cfg and returns a Factory. The cache and rate limiter
// are shared by every Translator the factory opens.
func NewFactory(cfg Config) (Factory, error) {
	var open Factory
	switch cfg.Provider {
	case "", ProviderGroq:
		open = func(apiKey string) (Translator, error) {
			return NewGroq(apiKey, cfg.Model, cfg.BaseURL)
		}
	case ProviderAnthropic:
		open = func(apiKey string) (Translator, error) {
			return NewAnthropic(apiKey, cfg.Model, cfg.BaseURL)
		}
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}

	var cache *Cache
	if cfg.CacheTTL > 0 {
		var err error
		cache, err = NewCache(cfg.CacheTTL, cfg.CacheMaxCost)
		if err != nil {
			return nil, err
		}
	}

	limiter := NewLimiter(cfg.RateLimit)

	return func(apiKey string) (Translator, error) {
		t, err := open(apiKey)
		if err != nil {
			return nil, err
		}
		if cfg.RequestTimeout > 0 {
			t = WithTimeout(t, cfg.RequestTimeout)
		}
		if limiter != nil {
			t = limiter.Wrap(cfg.Provider, t)
		}
		if cache != nil {
			t = cache.Wrap(cacheNamespace(cfg.Provider, cfg.Model, apiKey), t)
		}
		return t, nil
	}, nil
}

type timeoutTranslator struct {
	next    Translator
	timeout time.Duration
}

// WithTimeout bounds every call made through t.
func WithTimeout(t Translator, timeout time.Duration) Translator {
	return &timeoutTranslator{next: t, timeout: timeout}
}

func (t *timeoutTranslator) Translate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Translate(ctx, prompt)
}
