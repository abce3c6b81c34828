package handler

import (
	"errors"

	"lexmora/internal/domain"
	"lexmora/internal/srs"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// grades are the four responses offered under a revealed card
var grades = []struct {
	label   string
	quality srs.Quality
}{
	{label: "❌ Again", quality: srs.Again},
	{label: "😓 Hard", quality: srs.Hard},
	{label: "🙂 Good", quality: srs.Good},
	{label: "😎 Easy", quality: srs.Easy},
}

// handleReview starts a review session over the current due queue
func (h *Handler) handleReview(c tele.Context) error {
	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	ctx, cancel := h.requestContext()
	defer cancel()

	due, err := h.wordService.DueQueue(ctx, reviewBatchSize)
	if err != nil {
		h.logger.Error("Failed to load due queue", zap.Error(err), zap.Int64("user_id", userID))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Could not load your reviews"})
		}
		return c.Send("Could not load your reviews. Please try again.")
	}

	if len(due) == 0 {
		h.ResetSession(userID)
		return h.render(c, "🎉 Nothing to review right now", mainMenuMarkup())
	}

	queue := make([]string, 0, len(due))
	for _, w := range due {
		queue = append(queue, w.Word)
	}
	session := &domain.ReviewSession{State: domain.StateReviewing, Queue: queue}
	h.SetSession(userID, session)

	h.logger.Info("Review session started", zap.Int64("user_id", userID), zap.Int("cards", len(queue)))
	return h.render(c, formatFront(session), frontMarkup())
}

// handleShow reveals the meaning of the current card
func (h *Handler) handleShow(c tele.Context) error {
	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	session := h.GetSession(userID)
	if session.Current() == "" {
		return c.Respond(&tele.CallbackResponse{Text: "No active review. Use /review", ShowAlert: true})
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	w, err := h.wordService.Get(ctx, session.Current())
	if errors.Is(err, domain.ErrNotFound) {
		return h.advance(c, session, "This word was removed, skipping")
	}
	if err != nil {
		h.logger.Error("Failed to load word", zap.Error(err), zap.String("word", session.Current()))
		return c.Respond(&tele.CallbackResponse{Text: "Could not load the word, try again"})
	}

	session.State = domain.StateRevealed
	return h.render(c, formatBack(w, session.Remaining()), gradeMarkup())
}

// handleGrade applies the chosen response to the current card.
// On a storage failure the same card stays on screen.
func (h *Handler) handleGrade(c tele.Context) error {
	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	session := h.GetSession(userID)
	if session.Current() == "" {
		return c.Respond(&tele.CallbackResponse{Text: "No active review. Use /review", ShowAlert: true})
	}
	if session.State != domain.StateRevealed {
		return c.Respond(&tele.CallbackResponse{Text: "Reveal the meaning first"})
	}

	quality, err := srs.ParseQuality(cleanCallbackData(c.Callback().Data))
	if err != nil {
		h.logger.Warn("Unknown grade", zap.String("data", c.Callback().Data))
		return c.Respond(&tele.CallbackResponse{Text: "Unknown answer"})
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	word := session.Current()
	w, mastered, err := h.wordService.Grade(ctx, word, float64(quality))
	if errors.Is(err, domain.ErrNotFound) {
		return h.advance(c, session, "This word was removed, skipping")
	}
	if err != nil {
		h.logger.Error("Failed to apply review",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("word", word),
		)
		return c.Respond(&tele.CallbackResponse{
			Text:      "Could not save your answer. Please try again.",
			ShowAlert: true,
		})
	}

	note := ""
	if mastered {
		note = "🏆 " + w.Word + " mastered!"
	}
	return h.advance(c, session, note)
}

// handleStop ends the current review session
func (h *Handler) handleStop(c tele.Context) error {
	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	session := h.GetSession(userID)
	h.ResetSession(userID)
	return h.render(c, formatSessionEnd(session), mainMenuMarkup())
}

// advance moves the session to the next card or finishes it
func (h *Handler) advance(c tele.Context, session *domain.ReviewSession, note string) error {
	session.Index++
	session.State = domain.StateReviewing

	var resp []*tele.CallbackResponse
	if note != "" {
		resp = append(resp, &tele.CallbackResponse{Text: note})
	}

	if session.Current() == "" {
		h.ResetSession(c.Sender().ID)
		return h.render(c, formatSessionEnd(session), mainMenuMarkup(), resp...)
	}
	return h.render(c, formatFront(session), frontMarkup(), resp...)
}
