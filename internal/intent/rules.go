package intent

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/lang"
)

//go:embed rules.yaml
var defaultRules []byte

// SmallTalkRules holds the phrase sets and canned replies for one language.
// Greetings match the whole (lowercased, trimmed) message; the other sets
// match by substring.
type SmallTalkRules struct {
	Greetings       []string `yaml:"greetings"`
	GreetingReply   string   `yaml:"greeting_reply"`
	Thanks          []string `yaml:"thanks"`
	ThanksReply     string   `yaml:"thanks_reply"`
	Compliments     []string `yaml:"compliments"`
	ComplimentReply string   `yaml:"compliment_reply"`
	Identity        []string `yaml:"identity"`
	IdentityReply   string   `yaml:"identity_reply"`
	Capability      []string `yaml:"capability"`
	CapabilityReply string   `yaml:"capability_reply"`
}

// Branch is one FAQ intent: trigger phrases and a canned reply per language.
// The branch named "pricing" is special-cased by the matcher and carries the
// price trigger words instead of a reply.
type Branch struct {
	Name    string              `yaml:"name"`
	Phrases map[string][]string `yaml:"phrases"`
	Reply   map[string]string   `yaml:"reply"`
}

type FaqRules struct {
	// Items are garment/item nouns; a message equal to one of them is
	// rewritten to a price query so single-word item queries route to pricing.
	Items       []string          `yaml:"items"`
	PricePrefix map[string]string `yaml:"price_prefix"`
	Branches    []Branch          `yaml:"branches"`
}

// Rules is the full intent rule set, loaded from YAML so phrase lists and
// templates stay data rather than control flow.
type Rules struct {
	SmallTalk map[string]SmallTalkRules `yaml:"smalltalk"`
	Faq       FaqRules                  `yaml:"faq"`
}

// Vars are business constants substituted into reply templates at load time.
type Vars struct {
	Phone           string
	Website         string
	DiscountPercent int
}

// Load reads intent rules from path, or the embedded defaults when path is
// empty, and expands {phone}, {website} and {discount} placeholders.
func Load(path string, vars Vars) (*Rules, error) {
	data := defaultRules
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("intent: failed to read rules file: %w", err)
		}
		data = b
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("intent: failed to parse rules: %w", err)
	}

	replacer := strings.NewReplacer(
		"{phone}", vars.Phone,
		"{website}", vars.Website,
		"{discount}", strconv.Itoa(vars.DiscountPercent),
	)
	for code, st := range rules.SmallTalk {
		st.GreetingReply = replacer.Replace(st.GreetingReply)
		st.ThanksReply = replacer.Replace(st.ThanksReply)
		st.ComplimentReply = replacer.Replace(st.ComplimentReply)
		st.IdentityReply = replacer.Replace(st.IdentityReply)
		st.CapabilityReply = replacer.Replace(st.CapabilityReply)
		rules.SmallTalk[code] = st
	}
	for i, br := range rules.Faq.Branches {
		for code, reply := range br.Reply {
			rules.Faq.Branches[i].Reply[code] = replacer.Replace(reply)
		}
	}

	if err := rules.validate(); err != nil {
		return nil, err
	}
	return &rules, nil
}

func (r *Rules) validate() error {
	for _, code := range []string{string(lang.Arabic), string(lang.English)} {
		if _, ok := r.SmallTalk[code]; !ok {
			return fmt.Errorf("intent: missing smalltalk rules for language %q", code)
		}
	}
	for _, br := range r.Faq.Branches {
		if br.Name == "pricing" {
			return nil
		}
	}
	return fmt.Errorf("intent: rules must include a pricing branch")
}

func (r *Rules) smallTalk(language lang.Language) SmallTalkRules {
	if st, ok := r.SmallTalk[string(language)]; ok {
		return st
	}
	return r.SmallTalk[string(lang.English)]
}

func (r *Rules) pricePrefix(language lang.Language) string {
	if p, ok := r.Faq.PricePrefix[string(language)]; ok {
		return p
	}
	return r.Faq.PricePrefix[string(lang.English)]
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func equalsAny(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
