package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const helpText = `📚 Lexmora

Send me any word to save it for review.
/review starts a review session
/stats shows your progress
/forget <word> removes a word`

// handleStart handles /start and the main menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User opened main menu",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetSession(userID)

	if c.Callback() != nil {
		if err := c.Edit(helpText, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(helpText, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(helpText, mainMenuMarkup())
}
