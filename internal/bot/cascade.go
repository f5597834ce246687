package bot

import (
	"context"
	"strings"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/lang"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/store"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/pkg/logging"
)

// EmptyPrompt is returned for empty or whitespace-only messages, before any
// matcher runs.
const EmptyPrompt = "Please type a question about laundry, prices, pickup or offers 😊"

type SmallTalker interface {
	Match(text string, language lang.Language) (string, bool)
}

type FaqMatcher interface {
	Match(ctx context.Context, text string, language lang.Language) (string, bool)
}

type FallbackReplier interface {
	Reply(ctx context.Context, history, userText string, language lang.Language) string
}

// Cascade resolves a message through small talk, then FAQ, then the
// generative fallback, short-circuiting on the first match. It always
// produces a reply; downstream failures never surface as errors.
type Cascade struct {
	smallTalk SmallTalker
	faq       FaqMatcher
	fallback  FallbackReplier
	history   store.History
	log       *logging.Logger
}

func NewCascade(smallTalk SmallTalker, faq FaqMatcher, fallback FallbackReplier, history store.History, log *logging.Logger) *Cascade {
	return &Cascade{
		smallTalk: smallTalk,
		faq:       faq,
		fallback:  fallback,
		history:   history,
		log:       log,
	}
}

func (c *Cascade) Respond(ctx context.Context, sessionID, message string) string {
	text := strings.TrimSpace(message)
	if text == "" {
		return EmptyPrompt
	}

	language := lang.Detect(text)

	if reply, ok := c.smallTalk.Match(text, language); ok {
		c.record(ctx, sessionID, text, reply)
		return reply
	}

	if reply, ok := c.faq.Match(ctx, text, language); ok {
		c.record(ctx, sessionID, text, reply)
		return reply
	}

	history, err := c.history.Get(ctx, sessionID)
	if err != nil {
		c.log.Warn("failed to load history, generating without context", "session", sessionID, "error", err)
		history = ""
	}
	reply := c.fallback.Reply(ctx, history, text, language)
	c.record(ctx, sessionID, text, reply)
	return reply
}

func (c *Cascade) record(ctx context.Context, sessionID, userText, reply string) {
	if err := c.history.Append(ctx, sessionID, userText, reply); err != nil {
		c.log.Warn("failed to append history", "session", sessionID, "error", err)
	}
}
