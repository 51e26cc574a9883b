package translator

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces outbound calls. It is shared across API keys because the
// limit protects the process, not an account.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter allows perMinute calls per minute. It returns nil when perMinute
// is not positive.
func NewLimiter(perMinute int) *Limiter {
	if perMinute <= 0 {
		return nil
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)}
}

// Wrap limits next. provider names the errors returned while waiting.
func (l *Limiter) Wrap(provider string, next Translator) Translator {
	return &limitedTranslator{limiter: l.limiter, provider: provider, next: next}
}

type limitedTranslator struct {
	limiter  *rate.Limiter
	provider string
	next     Translator
}

func (t *limitedTranslator) Translate(ctx context.Context, prompt string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", transportError(t.provider, err)
	}
	return t.next.Translate(ctx, prompt)
}
