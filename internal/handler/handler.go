package handler

import (
	"context"
	"sync"
	"time"

	"lexmora/internal/domain"
	"lexmora/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	// Cards loaded into one review session
	reviewBatchSize = 20
	// Days listed by /stats
	statsDays      = 7
	requestTimeout = 10 * time.Second
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	wordService  *service.WordService
	statsService *service.StatsService
	loc          *time.Location
	logger       *zap.Logger

	// Review sessions (in-memory state machine)
	sessions   map[int64]*domain.ReviewSession
	sessionMux sync.RWMutex

	// Per-user locks so double taps on a card are processed one at a time
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	wordService *service.WordService,
	statsService *service.StatsService,
	loc *time.Location,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		wordService:   wordService,
		statsService:  statsService,
		loc:           loc,
		logger:        logger,
		sessions:      make(map[int64]*domain.ReviewSession),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleStart)
	h.bot.Handle("/review", h.handleReview)
	h.bot.Handle("/stats", h.handleStats)
	h.bot.Handle("/forget", h.handleForget)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnReview, h.handleReview)
	h.bot.Handle(&btnStats, h.handleStats)
	h.bot.Handle(&btnShow, h.handleShow)
	h.bot.Handle(&btnGrade, h.handleGrade)
	h.bot.Handle(&btnStop, h.handleStop)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for anything the buttons above did not catch
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetSession returns user's current review session, nil when idle
func (h *Handler) GetSession(userID int64) *domain.ReviewSession {
	h.sessionMux.RLock()
	defer h.sessionMux.RUnlock()
	return h.sessions[userID]
}

// SetSession sets user's review session
func (h *Handler) SetSession(userID int64, session *domain.ReviewSession) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	h.sessions[userID] = session
}

// ResetSession drops user's review session
func (h *Handler) ResetSession(userID int64) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	delete(h.sessions, userID)
}

// lockUser serializes callback processing for one user
func (h *Handler) lockUser(userID int64) func() {
	h.callbackMux.Lock()
	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	h.callbackMux.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (h *Handler) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Inline keyboard buttons
var (
	btnReview = tele.Btn{
		Unique: "review",
		Text:   "🧠 Review",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Stats",
	}
	btnShow = tele.Btn{
		Unique: "show",
		Text:   "👀 Show meaning",
	}
	btnGrade = tele.Btn{
		Unique: "grade",
	}
	btnStop = tele.Btn{
		Unique: "stop",
		Text:   "⏹ Stop",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnReview),
		menu.Row(btnStats),
	)
	return menu
}

// frontMarkup is shown under a card before its meaning is revealed
func frontMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnShow),
		markup.Row(btnStop),
	)
	return markup
}

// gradeMarkup offers the four review responses
func gradeMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	row := tele.Row{}
	for _, g := range grades {
		row = append(row, markup.Data(g.label, btnGrade.Unique, g.quality.String()))
	}
	markup.Inline(row, markup.Row(btnStop))
	return markup
}
