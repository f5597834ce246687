package intent

import (
	"context"
	"strings"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/lang"
)

// Pricer answers a detected pricing intent. queryText is the lowercased,
// possibly rewritten text used for matching; originalText is the raw message.
type Pricer interface {
	Respond(ctx context.Context, queryText, originalText string, language lang.Language) string
}

// FaqMatcher recognizes business intents through an ordered cascade of
// substring phrase sets; the first matching branch wins. Pricing intents are
// delegated to the Pricer.
type FaqMatcher struct {
	rules  *Rules
	pricer Pricer
}

func NewFaqMatcher(rules *Rules, pricer Pricer) *FaqMatcher {
	return &FaqMatcher{rules: rules, pricer: pricer}
}

// Match runs the FAQ cascade and returns a reply and true on the first hit.
func (m *FaqMatcher) Match(ctx context.Context, text string, language lang.Language) (string, bool) {
	original := text
	t := strings.ToLower(strings.TrimSpace(text))

	// A message that is exactly an item name ("blanket", "abaya") becomes a
	// price query so single-word item questions route to pricing.
	if equalsAny(t, m.rules.Faq.Items) {
		t = m.rules.pricePrefix(language) + t
	}

	code := string(language)
	for _, br := range m.rules.Faq.Branches {
		phrases := br.Phrases[code]
		if br.Name == "pricing" {
			if m.isPriceQuery(t, phrases) {
				return m.pricer.Respond(ctx, t, original, language), true
			}
			continue
		}
		if containsAny(t, phrases) {
			if reply := br.Reply[code]; reply != "" {
				return reply, true
			}
		}
	}
	return "", false
}

// isPriceQuery decides whether a message that reached the pricing branch is a
// price question. It fires on a price trigger word, on an item word inside a
// short utterance (at most 4 words), or on a bare 1-2 word utterance that
// matched nothing earlier in the cascade. The same rule applies to both
// languages.
func (m *FaqMatcher) isPriceQuery(t string, priceWords []string) bool {
	if containsAny(t, priceWords) {
		return true
	}
	words := len(strings.Fields(t))
	if containsAny(t, m.rules.Faq.Items) && words <= 4 {
		return true
	}
	return words <= 2
}
