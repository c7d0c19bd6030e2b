package chatbot

import "strings"

const fallbackReply = "I understand you're interested in our services. Let me connect you with our team for more detailed information."

// Reply produces the scripted answer for a visitor message. This is a
// keyword responder, not an AI integration.
func Reply(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "price") || strings.Contains(lower, "cost"):
		return "Our pricing varies based on project scope. Web development starts from the Starter package; see /api/v1/packages for current rates. Would you like a detailed quote?"
	case strings.Contains(lower, "service"):
		return "We offer web development, mobile apps, security solutions, database management, SEO, UI/UX design, and chatbot integration. Which interests you most?"
	case strings.Contains(lower, "contact"):
		return "You can reach us through our contact form. I can also help answer questions right here!"
	default:
		return fallbackReply
	}
}
