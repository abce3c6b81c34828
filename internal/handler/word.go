package handler

import (
	"fmt"
	"strings"

	"lexmora/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText captures every non-empty line of a plain text message as a word
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	words := splitWords(text)
	if len(words) == 0 {
		return nil
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	var saved, existing []string
	for _, word := range words {
		w, created, err := h.wordService.Capture(ctx, word, "", nil)
		if err != nil {
			h.logger.Error("Failed to capture word",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.String("word", word),
			)
			return c.Send("Could not save the word. Please try again.")
		}
		if w == nil {
			continue
		}
		if created {
			saved = append(saved, w.Word)
		} else {
			existing = append(existing, w.Word)
		}
	}

	return c.Send(captureReply(saved, existing))
}

// handleForget handles /forget <word>
func (h *Handler) handleForget(c tele.Context) error {
	userID := c.Sender().ID
	word := domain.NormalizeWord(c.Message().Payload)
	if word == "" {
		return c.Send("Usage: /forget <word>")
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	if err := h.wordService.Forget(ctx, word); err != nil {
		h.logger.Error("Failed to forget word",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("word", word),
		)
		return c.Send("Could not remove the word. Please try again.")
	}

	return c.Send(fmt.Sprintf("🗑 %q removed", word))
}

// splitWords returns the non-blank lines of text
func splitWords(text string) []string {
	var words []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			words = append(words, line)
		}
	}
	return words
}

func captureReply(saved, existing []string) string {
	var b strings.Builder
	if len(saved) > 0 {
		b.WriteString("✅ Saved: " + strings.Join(saved, ", "))
	}
	if len(existing) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("📌 Already saved: " + strings.Join(existing, ", "))
	}
	if b.Len() == 0 {
		return "Nothing to save"
	}
	return b.String()
}
