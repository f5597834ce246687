package intent

import (
	"strings"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/lang"
)

// SmallTalkMatcher recognizes greetings, thanks, compliments and
// identity/capability questions outside the business domain.
type SmallTalkMatcher struct {
	rules *Rules
}

func NewSmallTalkMatcher(rules *Rules) *SmallTalkMatcher {
	return &SmallTalkMatcher{rules: rules}
}

// Match returns a canned reply and true on the first matching category.
// Categories are checked in fixed priority order: greeting, thanks,
// compliment, identity, capability. Greetings require the whole message to
// equal a known greeting; the other categories match by substring.
func (m *SmallTalkMatcher) Match(text string, language lang.Language) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	st := m.rules.smallTalk(language)

	switch {
	case equalsAny(t, st.Greetings):
		return st.GreetingReply, true
	case containsAny(t, st.Thanks):
		return st.ThanksReply, true
	case containsAny(t, st.Compliments):
		return st.ComplimentReply, true
	case containsAny(t, st.Identity):
		return st.IdentityReply, true
	case containsAny(t, st.Capability):
		return st.CapabilityReply, true
	}
	return "", false
}
