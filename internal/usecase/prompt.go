package usecase

import "gm-poster/internal/domain"

const (
	systemPrompt = "You are a specialized assistant. Generate an inspiring, SEO-optimized, and witty 'Good Morning' tweet."
	userPrompt   = "Generate a GM tweet inspired in the world of web3 gamedevelopment."
)

// buildPromptMessages returns the fixed system/user pair. The trigger payload
// never influences the prompt.
func buildPromptMessages() []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}
}
