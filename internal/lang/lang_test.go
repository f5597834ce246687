package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{"plain english", "how much is dry cleaning", English},
		{"empty", "", English},
		{"digits and punctuation", "123 ?!", English},
		{"arabic greeting", "مرحبا", Arabic},
		{"arabic question", "كم سعر العباية؟", Arabic},
		{"mixed script leans arabic", "price of عباية please", Arabic},
		{"single arabic char", "x م x", Arabic},
		{"non-arabic unicode", "très bien", English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}
