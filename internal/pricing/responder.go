package pricing

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/lang"
)

const (
	matchedCap = 12
	exampleCap = 8
)

type responderTexts struct {
	intro    string
	miss     string // %s: the original query text
	closing  string
	discount string // %d: discount percent
	fallback string // %d: discount percent
}

var texts = map[lang.Language]responderTexts{
	lang.English: {
		intro: "Here are the prices I found:\n",
		miss: "I couldn't find an exact price match for '%s'.\n" +
			"Here are some example laundry & dry cleaning prices:\n",
		closing:  "\nFor the full updated price list, please check the pricing page on the website.",
		discount: "And remember: on the first 3 orders in a month, we offer %d%% off (subject to current offer).",
		fallback: "I couldn't fetch the live prices right now.\n" +
			"Please check the pricing page on the website for the latest detailed price list.\n" +
			"We usually offer very affordable rates, and for the first 3 orders in a month we give %d%% off (subject to current offer).",
	},
	lang.Arabic: {
		intro: "هذه بعض الأسعار التي وجدتها:\n",
		miss: "ما قدرت أجد سعر واضح للقطعة: %s.\n\n" +
			"لكن هذه أمثلة على بعض الأسعار في القائمة:\n",
		closing:  "\nللقائمة الكاملة والمحدّثة، يفضل زيارة صفحة الأسعار في الموقع.",
		discount: "وتذكّر: على أول 3 طلبات في الشهر يوجد خصم %d%% (حسب توفر العرض).",
		fallback: "ما قدرت أجيب الأسعار مباشرة الآن.\n" +
			"يُفضل تشيك صفحة الأسعار في الموقع لأحدث قائمة.\n" +
			"عادةً أسعارنا مناسبة جداً، وعلى أول 3 طلبات في الشهر تحصل على خصم %d%% (حسب توفر العرض).",
	},
}

// Responder formats a price reply once a pricing intent has been detected.
// It always returns a non-empty string.
type Responder struct {
	discount int
}

func NewResponder(discountPercent int) *Responder {
	return &Responder{discount: discountPercent}
}

// Respond matches the query against the catalog and formats a reply.
// queryText is the lowercased, possibly rewritten query used for matching;
// originalText is the user's raw message, named in the no-match apology.
// A nil catalog yields the fixed "couldn't fetch live prices" message.
func (r *Responder) Respond(queryText, originalText string, catalog *Catalog, language lang.Language) string {
	t, ok := texts[language]
	if !ok {
		t = texts[lang.English]
	}

	if catalog.Len() == 0 {
		return fmt.Sprintf(t.fallback, r.discount)
	}

	words := queryWords(queryText)
	var matched []Entry
	for _, entry := range catalog.Entries() {
		for _, w := range words {
			if strings.Contains(entry.Name, w) {
				matched = append(matched, entry)
				break
			}
		}
	}

	var lines []string
	if len(matched) > 0 {
		lines = append(lines, t.intro)
		if len(matched) > matchedCap {
			matched = matched[:matchedCap]
		}
		for _, entry := range matched {
			lines = append(lines, "- "+capitalize(entry.Name)+": "+entry.Description)
		}
	} else {
		lines = append(lines, fmt.Sprintf(t.miss, strings.TrimSpace(originalText)))
		for i, entry := range catalog.Entries() {
			if i >= exampleCap {
				break
			}
			lines = append(lines, "- "+capitalize(entry.Name)+": "+entry.Description)
		}
	}

	lines = append(lines, t.closing)
	lines = append(lines, fmt.Sprintf(t.discount, r.discount))
	return strings.Join(lines, "\n")
}

// queryWords splits the query into words longer than two runes.
func queryWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		if utf8.RuneCountInString(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
