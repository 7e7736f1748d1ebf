package router

import "strings"

// Intent is a coarse classification of free text that can be answered
// without the QA engine.
type Intent string

const (
	IntentUpload       Intent = "upload"
	IntentThanks       Intent = "thanks"
	IntentCapabilities Intent = "capabilities"
	IntentNone         Intent = "none"
)

var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentUpload, []string{"upload", "send a pdf", "send you a pdf", "send a file", "new document", "another pdf"}},
	{IntentThanks, []string{"thank", "thanks", "thx", "appreciate"}},
	{IntentCapabilities, []string{"what can you do", "how do you work", "what do you do", "who are you", "capabilities"}},
}

// DetectIntent matches by keyword containment on the lowercased text.
// First match wins, in declaration order.
func DetectIntent(text string) Intent {
	lowered := strings.ToLower(text)
	for _, group := range intentKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lowered, kw) {
				return group.intent
			}
		}
	}
	return IntentNone
}
