package httpapi

import "lexmora/internal/domain"

// CaptureReq is the body of POST /api/words
type CaptureReq struct {
	Word      string           `json:"word"`
	SourceURL string           `json:"source_url"`
	Meanings  []domain.Meaning `json:"meanings"`
}

// ReviewReq is the body of POST /api/words/:word/review
type ReviewReq struct {
	Quality *float64 `json:"quality" binding:"required"`
}

// DayResp is one entry of GET /api/activity
type DayResp struct {
	Date      string `json:"date"`
	WordCount int    `json:"word_count"`
}

// ErrorResp is returned with every non-2xx status
type ErrorResp struct {
	Error string `json:"error"`
}
