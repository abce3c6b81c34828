package handler

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStats shows progress metrics and the most recent active days
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := h.requestContext()
	defer cancel()

	metrics, err := h.statsService.Metrics(ctx)
	if err != nil {
		h.logger.Error("Failed to compute metrics", zap.Error(err), zap.Int64("user_id", userID))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Could not load stats"})
		}
		return c.Send("Could not load stats. Please try again.")
	}

	days, err := h.statsService.ActivityDays(ctx, statsDays)
	if err != nil {
		h.logger.Error("Failed to load activity days", zap.Error(err), zap.Int64("user_id", userID))
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnReview), markup.Row(btnMainMenu))

	return h.render(c, formatStats(metrics, days, time.Now().In(h.loc)), markup)
}
