package llm

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/lang"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/pkg/logging"
)

const (
	maxHistoryChars = 2000
	maxTotalTokens  = 1024
	maxInputTokens  = 896
	maxNewTokens    = 128
	minNewTokens    = 16

	assistantMarker = "Jabir:"
)

const businessContextTemplate = `
You are Jabir, the friendly AI assistant for Fresh Touch Laundry & Dry Cleaning (UAE).

Identity:
- Your name is Jabir.
- You are a helpful virtual assistant (not a human), but you speak in a friendly, human-like way.
- You always stay polite and respectful.

Business & services:
- You help users with laundry, dry cleaning, ironing, curtains, carpets, abayas, kanduras, dresses,
  blankets, duvets, shoe cleaning, uniforms, and more.
- You explain that customers can easily create an order by visiting {website} and using the
  Quick Order / Schedule Now option.
- You mention that after placing an order, our rider will contact the customer before the pickup time
  to reconfirm the details.
- You clearly mention that for the first 3 orders in a month, we offer {discount}% off
  (subject to current offer validity).

What makes Fresh Touch different:
- We offer special Arabic bakhoor steam finishing for selected garments.
- We provide premium sandalwood wash options.
- We offer rose and jasmine wash for a gentle, fresh fragrance.
- We focus on high quality, careful fabric handling, and very affordable pricing.
- We provide free pickup and drop in our covered areas.
- We use gentle detergents and premium cleaning techniques.

Answer style:
- You answer clearly and briefly, in a friendly and professional tone.
- You avoid very long paragraphs and keep answers easy to read.
- When asked about prices, you use the latest prices from the connected price API when available.
- When users ask about booking, you remind them they can place a Quick Order on {website} and that
  our rider will contact them before pickup.
- If something is not clear or you are not fully sure, you say you are not sure and suggest the user
  check {website} or contact support/WhatsApp for confirmation.
`

var langInstructions = map[lang.Language]string{
	lang.Arabic: "IMPORTANT: The user is writing in Arabic. " +
		"Answer ONLY in Arabic, with a friendly and clear tone. " +
		"Keep the answer short and easy to read.",
	lang.English: "IMPORTANT: The user is writing in English. " +
		"Answer ONLY in English, with a friendly and clear tone. " +
		"Keep the answer short and easy to read.",
}

var apologies = map[lang.Language]string{
	lang.Arabic: "يمكن ما فهمت سؤالك بالضبط، آسف على ذلك.\n" +
		"أنا متخصص في مساعدةك في أمور الغسيل، الأسعار، العروض وخدمة الاستلام والتوصيل.\n" +
		"حاول تكتب سؤالك مرة ثانية عن شيء يخص الغسيل أو الأسعار وأنا أجاوبك بأوضح شكل ممكن. 🌸",
	lang.English: "I might not have understood your question correctly, sorry about that.\n" +
		"I’m mainly here to help with laundry questions – like prices, pickup, offers, " +
		"or how to place an order on fabrico.ae.\n" +
		"Please ask again about anything related to your laundry and I’ll do my best to answer clearly. 😊",
}

// Completer is the narrow text-completion capability the fallback depends on.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Fallback produces a reply from the external language model when no rule
// matched. A nil completer degrades to the canned apology, so the cascade
// always gets some reply back.
type Fallback struct {
	completer Completer
	context   string
	log       *logging.Logger
}

func NewFallback(completer Completer, website string, discountPercent int, log *logging.Logger) *Fallback {
	replacer := strings.NewReplacer(
		"{website}", website,
		"{discount}", strconv.Itoa(discountPercent),
	)
	return &Fallback{
		completer: completer,
		context:   strings.TrimSpace(replacer.Replace(businessContextTemplate)),
		log:       log,
	}
}

// Reply builds the prompt from the business context, a language-enforcing
// instruction, the trailing window of history and the user line, requests a
// budget-bounded completion and extracts the assistant's utterance.
func (f *Fallback) Reply(ctx context.Context, history, userText string, language lang.Language) string {
	if f.completer == nil {
		return apologies[language]
	}

	prompt := f.buildPrompt(history, userText, language)
	budget := generationBudget(estimateTokens(prompt))

	raw, err := f.completer.Complete(ctx, prompt, budget)
	if err != nil {
		f.log.Error("completion request failed", "error", err)
		return apologies[language]
	}

	reply := extractReply(raw, prompt)
	if utf8.RuneCountInString(reply) < 2 {
		return apologies[language]
	}
	return reply
}

func (f *Fallback) buildPrompt(history, userText string, language lang.Language) string {
	if len(history) > maxHistoryChars {
		history = history[len(history)-maxHistoryChars:]
	}
	prompt := f.context +
		"\n\n" + langInstructions[language] +
		"\n\n" + strings.TrimSpace(history) +
		"\nUser: " + userText +
		"\n" + assistantMarker
	return strings.TrimSpace(prompt)
}

// estimateTokens approximates the tokenized prompt length at four characters
// per token, capped at the model input window.
func estimateTokens(prompt string) int {
	est := (len(prompt) + 3) / 4
	if est > maxInputTokens {
		est = maxInputTokens
	}
	return est
}

// generationBudget keeps context plus generated tokens under the model
// ceiling: up to 128 new tokens, and at least a minimal budget even under
// tight context pressure.
func generationBudget(inputTokens int) int {
	possible := maxTotalTokens - inputTokens
	budget := maxNewTokens
	if possible < budget {
		budget = possible
	}
	if budget < minNewTokens {
		budget = possible
		if budget < 1 {
			budget = 1
		}
	}
	return budget
}

// extractReply takes the text after the final assistant marker; when the
// marker is absent it strips the known prompt prefix instead.
func extractReply(raw, prompt string) string {
	if i := strings.LastIndex(raw, assistantMarker); i >= 0 {
		return strings.TrimSpace(raw[i+len(assistantMarker):])
	}
	return strings.TrimSpace(strings.TrimPrefix(raw, prompt))
}
