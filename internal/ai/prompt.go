package ai

import (
	"fmt"
	"strings"
)

// promptDirective is appended to every newsletter prompt. Retrieval happens
// inside the model through its web search tool.
const promptDirective = "Use web search to find real, current developments and news. " +
	"Output ONLY the newsletter content — no preamble or commentary " +
	"about your search process."

// continuePrompt nudges the model onward after a mid-turn pause.
const continuePrompt = "Please continue."

// ComposePrompt builds the full generation prompt for one run from the
// configured newsletter prompt and the localized long-form date.
func ComposePrompt(prompt, today string) string {
	return fmt.Sprintf("Today's date is %s.\n\n%s\n\n%s", today, strings.TrimSpace(prompt), promptDirective)
}
