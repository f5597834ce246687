package lang

// Language is the detected reply language for a message.
type Language string

const (
	Arabic  Language = "ar"
	English Language = "en"
)

// Detect classifies text as Arabic if it contains at least one character in
// the Arabic Unicode block (U+0600-U+06FF), English otherwise. Mixed-script
// text is classified Arabic regardless of proportion.
func Detect(text string) Language {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return Arabic
		}
	}
	return English
}
