package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"lexmora/internal/domain"
	"lexmora/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxActivityDays = 366

// CaptureWord saves a word; 201 when created, 200 when it already existed
func CaptureWord(words *service.WordService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CaptureReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResp{Error: err.Error()})
			return
		}
		if strings.TrimSpace(req.Word) == "" {
			c.JSON(http.StatusBadRequest, ErrorResp{Error: "word is required"})
			return
		}

		w, created, err := words.Capture(c.Request.Context(), req.Word, req.SourceURL, req.Meanings)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, w)
	}
}

// GetWord returns a stored word
func GetWord(words *service.WordService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := words.Get(c.Request.Context(), c.Param("word"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, w)
	}
}

// ForgetWord deletes a word; unknown words succeed too
func ForgetWord(words *service.WordService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := words.Forget(c.Request.Context(), c.Param("word")); err != nil {
			writeError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ClearWords deletes every word
func ClearWords(words *service.WordService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := words.ClearAll(c.Request.Context()); err != nil {
			writeError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ReviewWord applies a review response and returns the rescheduled word
func ReviewWord(words *service.WordService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReviewReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResp{Error: err.Error()})
			return
		}

		w, err := words.ApplyResponse(c.Request.Context(), c.Param("word"), *req.Quality)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, w)
	}
}

// DueQueue lists words due for review, optionally capped by ?limit=.
// Without a limit every due word is returned; limit=0 returns none.
func DueQueue(words *service.WordService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := intQuery(c, "limit", 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResp{Error: err.Error()})
			return
		}
		if _, given := c.GetQuery("limit"); given {
			if limit < 0 {
				c.JSON(http.StatusBadRequest, ErrorResp{Error: "limit must not be negative"})
				return
			}
			if limit == 0 {
				c.JSON(http.StatusOK, []domain.Word{})
				return
			}
		}

		due, err := words.DueQueue(c.Request.Context(), limit)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if due == nil {
			due = []domain.Word{}
		}
		c.JSON(http.StatusOK, due)
	}
}

// GetMetrics returns the aggregate progress metrics
func GetMetrics(stats *service.StatsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := stats.Metrics(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

// GetActivity lists recent days with activity, newest first
func GetActivity(stats *service.StatsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := intQuery(c, "days", 30)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResp{Error: err.Error()})
			return
		}
		if days <= 0 || days > maxActivityDays {
			days = maxActivityDays
		}

		list, err := stats.ActivityDays(c.Request.Context(), days)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		resp := make([]DayResp, 0, len(list))
		for _, d := range list {
			resp = append(resp, DayResp{Date: d.Date.Format("2006-01-02"), WordCount: d.WordCount})
		}
		c.JSON(http.StatusOK, resp)
	}
}

// writeError maps service errors to HTTP statuses
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResp{Error: err.Error()})
		return
	}

	logger.Error("Request failed",
		zap.Error(err),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString("requestID")),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResp{Error: err.Error()})
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}
