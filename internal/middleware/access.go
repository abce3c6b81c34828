package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AccessMiddleware lets only the configured Telegram users through
func AccessMiddleware(allowed []int64, logger *zap.Logger) tele.MiddlewareFunc {
	allowList := make(map[int64]struct{}, len(allowed))
	for _, id := range allowed {
		allowList[id] = struct{}{}
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			if _, ok := allowList[sender.ID]; !ok {
				logger.Warn("Rejected update from unknown user",
					zap.Int64("user_id", sender.ID),
					zap.String("username", sender.Username),
				)
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "Access denied"})
				}
				return c.Send("Sorry, this bot is private.")
			}

			return next(c)
		}
	}
}
