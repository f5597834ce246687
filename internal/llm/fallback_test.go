package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/lang"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/pkg/logging"
)

type fakeCompleter struct {
	prompt    string
	maxTokens int
	reply     string
	err       error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, maxTokens int) (string, error) {
	f.prompt = prompt
	f.maxTokens = maxTokens
	return f.reply, f.err
}

func newTestFallback(c Completer) *Fallback {
	return NewFallback(c, "fabrico.ae", 20, logging.New("error"))
}

func TestReplyBuildsPrompt(t *testing.T) {
	c := &fakeCompleter{reply: "Jabir: Happy to help!"}
	f := newTestFallback(c)

	reply := f.Reply(context.Background(), "User: hi\nJabir: Ahlan!", "can you wash a tent?", lang.English)
	assert.Equal(t, "Happy to help!", reply)

	assert.Contains(t, c.prompt, "You are Jabir, the friendly AI assistant for Fresh Touch Laundry & Dry Cleaning (UAE).")
	assert.Contains(t, c.prompt, "Answer ONLY in English")
	assert.Contains(t, c.prompt, "User: hi\nJabir: Ahlan!")
	assert.True(t, strings.HasSuffix(c.prompt, "User: can you wash a tent?\nJabir:"))
	assert.Contains(t, c.prompt, "fabrico.ae")
	assert.Equal(t, maxNewTokens, c.maxTokens)
}

func TestReplyArabicInstruction(t *testing.T) {
	c := &fakeCompleter{reply: "Jabir: أهلاً"}
	f := newTestFallback(c)

	reply := f.Reply(context.Background(), "", "احكي لي قصة", lang.Arabic)
	assert.Equal(t, "أهلاً", reply)
	assert.Contains(t, c.prompt, "Answer ONLY in Arabic")
}

func TestReplyTrimsHistoryWindow(t *testing.T) {
	c := &fakeCompleter{reply: "Jabir: ok"}
	f := newTestFallback(c)

	old := "OLD-TURN-MARKER " + strings.Repeat("x", maxHistoryChars)
	f.Reply(context.Background(), old, "hello again", lang.English)
	assert.NotContains(t, c.prompt, "OLD-TURN-MARKER")
}

func TestReplyExtractsAfterLastMarker(t *testing.T) {
	c := &fakeCompleter{reply: "User: hi\nJabir: first\nUser: more\nJabir: the real answer"}
	f := newTestFallback(c)

	reply := f.Reply(context.Background(), "", "hi", lang.English)
	assert.Equal(t, "the real answer", reply)
}

func TestReplyWithoutMarker(t *testing.T) {
	c := &fakeCompleter{reply: "Sure, we can handle that!"}
	f := newTestFallback(c)

	reply := f.Reply(context.Background(), "", "hi", lang.English)
	assert.Equal(t, "Sure, we can handle that!", reply)
}

func TestReplyDegeneratesToApology(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"empty completion", "Jabir:", nil},
		{"single char", "Jabir: x", nil},
		{"completion error", "", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFallback(&fakeCompleter{reply: tt.reply, err: tt.err})

			en := f.Reply(context.Background(), "", "hello", lang.English)
			assert.Equal(t, apologies[lang.English], en)

			ar := f.Reply(context.Background(), "", "مرحبا بالعالم كيف الحال", lang.Arabic)
			assert.Equal(t, apologies[lang.Arabic], ar)
		})
	}
}

func TestReplyNilCompleter(t *testing.T) {
	f := newTestFallback(nil)

	reply := f.Reply(context.Background(), "", "hello", lang.English)
	assert.Equal(t, apologies[lang.English], reply)
}

func TestGenerationBudget(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int
	}{
		{"short prompt gets full budget", 100, 128},
		{"room for exactly the cap", 896, 128},
		{"partial budget", 950, 74},
		{"below floor uses what remains", 1015, 9},
		{"no room left", 1024, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generationBudget(tt.input))
		})
	}
}

func TestEstimateTokensCapped(t *testing.T) {
	require.Equal(t, maxInputTokens, estimateTokens(strings.Repeat("a", 10000)))
	assert.Equal(t, 3, estimateTokens("0123456789"))
}
