package whatsapp

import "regexp"

var (
	bracketPattern = regexp.MustCompile(`【.*?】`)
	boldPattern    = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// NormalizeText rewrites model output for WhatsApp: citation brackets are
// stripped and markdown bold becomes WhatsApp bold.
func NormalizeText(text string) string {
	text = bracketPattern.ReplaceAllString(text, "")
	text = boldPattern.ReplaceAllString(text, "*$1*")
	return text
}
