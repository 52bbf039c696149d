/*
Package ai generates newsletter text with a web-search capable language model.
Two backends are available: the Anthropic Messages API and the Gemini API.
*/
package ai

import "context"

// Request describes one generation run.
type Request struct {
	Model        string
	Prompt       string
	MaxContinues int // 0 means no limit on continuation turns
}

// Result is the generated text together with usage counters.
type Result struct {
	Text     string
	Searches int
}

// Generator produces newsletter text from a composed prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
