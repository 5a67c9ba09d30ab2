package retriever

import "fmt"

// DefaultSystemPrompt is the base prompt for the voice assistant. Responses
// are spoken aloud, so the prompt pushes for short conversational answers.
const DefaultSystemPrompt = `You are a friendly and professional voice-based customer service assistant.

Your role is to:
- Answer customer questions about our products and services
- Provide helpful, accurate information
- Be conversational and natural in your responses
- Keep responses concise since you're speaking, not writing
- If you don't know something, honestly say so and offer to help in other ways

Remember: You're having a voice conversation, so speak naturally and avoid long monologues.`

// BuildSystemPrompt injects retrieved context into a base system prompt.
// An empty context returns the base prompt unchanged.
func BuildSystemPrompt(basePrompt, context string) string {
	if context == "" {
		return basePrompt
	}

	return fmt.Sprintf(`%s

Use the following information from the knowledge base to answer the user's question accurately:

---
%s
---

Important instructions:
- Base your answer primarily on the provided context above
- If the context doesn't contain enough information to answer fully, say so
- Be helpful and conversational while staying accurate
- If asked about something not in the context, acknowledge that and offer what help you can
`, basePrompt, context)
}
