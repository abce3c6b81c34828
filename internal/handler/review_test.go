package handler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lexmora/internal/domain"
	"lexmora/internal/repository/sqlite"
	"lexmora/internal/service"
	"lexmora/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

// fakeContext records what the handler sends; other tele.Context methods are not used
type fakeContext struct {
	tele.Context
	sender    *tele.User
	callback  *tele.Callback
	message   *tele.Message
	sent      []interface{}
	edited    []interface{}
	responses []*tele.CallbackResponse
}

func (c *fakeContext) Sender() *tele.User       { return c.sender }
func (c *fakeContext) Callback() *tele.Callback { return c.callback }
func (c *fakeContext) Message() *tele.Message   { return c.message }

func (c *fakeContext) Text() string {
	if c.message == nil {
		return ""
	}
	return c.message.Text
}

func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what)
	return nil
}

func (c *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	c.edited = append(c.edited, what)
	return nil
}

func (c *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.responses = append(c.responses, resp...)
	return nil
}

const testUser = int64(42)

func command(text string) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: testUser}, message: &tele.Message{Text: text}}
}

func button(data string) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: testUser}, callback: &tele.Callback{ID: "cb", Data: data}}
}

func newTestHandler(t *testing.T, now time.Time) (*Handler, *service.WordService) {
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewWordRepo(db)
	logger := testutil.NewTestLogger()
	words := service.NewWordService(repo, logger).WithClock(testutil.FixedClock(now))
	stats := service.NewStatsService(repo, time.UTC, logger).WithClock(testutil.FixedClock(now))
	return NewHandler(nil, words, stats, time.UTC, logger), words
}

func TestHandler_CaptureAndForget(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	h, words := newTestHandler(t, now)

	c := command("Apple\nbanana")
	require.NoError(t, h.handleText(c))
	assert.Equal(t, []interface{}{"✅ Saved: apple, banana"}, c.sent)

	c = command("apple")
	require.NoError(t, h.handleText(c))
	assert.Equal(t, []interface{}{"📌 Already saved: apple"}, c.sent)

	c = command("/forget Apple")
	c.message.Payload = "Apple"
	require.NoError(t, h.handleForget(c))
	_, err := words.Get(context.Background(), "apple")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandler_ReviewSession(t *testing.T) {
	captured := time.Date(2024, 6, 13, 12, 0, 0, 0, time.UTC)
	h, words := newTestHandler(t, captured)

	for _, word := range []string{"apple", "banana"} {
		_, _, err := words.Capture(context.Background(), word, "", nil)
		require.NoError(t, err)
	}
	words.WithClock(testutil.FixedClock(captured.AddDate(0, 0, 2)))

	require.NoError(t, h.handleReview(command("/review")))
	session := h.GetSession(testUser)
	require.NotNil(t, session)
	assert.Equal(t, []string{"apple", "banana"}, session.Queue)

	// Grading before revealing is refused
	c := button("good")
	require.NoError(t, h.handleGrade(c))
	assert.Equal(t, 0, session.Index)

	require.NoError(t, h.handleShow(button("")))
	assert.Equal(t, domain.StateRevealed, session.State)

	require.NoError(t, h.handleGrade(button("good")))
	assert.Equal(t, 1, session.Index)
	assert.Equal(t, "banana", session.Current())

	apple, err := words.Get(context.Background(), "apple")
	require.NoError(t, err)
	assert.Equal(t, 1, apple.Repetitions)

	require.NoError(t, h.handleShow(button("")))
	c = button("again")
	require.NoError(t, h.handleGrade(c))
	assert.Nil(t, h.GetSession(testUser))
	assert.Equal(t, []interface{}{"✅ Session complete, 2 reviewed"}, c.edited)

	banana, err := words.Get(context.Background(), "banana")
	require.NoError(t, err)
	assert.Equal(t, 1, banana.Lapses)
}

func TestHandler_GradeFailureKeepsCard(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	mockRepo := new(testutil.MockWordRepository)
	mockRepo.On("Update", mock.Anything, "apple", mock.Anything).Return(nil, fmt.Errorf("database is locked"))

	logger := testutil.NewTestLogger()
	words := service.NewWordService(mockRepo, logger).WithClock(testutil.FixedClock(now))
	h := NewHandler(nil, words, service.NewStatsService(mockRepo, time.UTC, logger), time.UTC, logger)

	session := &domain.ReviewSession{State: domain.StateRevealed, Queue: []string{"apple", "banana"}}
	h.SetSession(testUser, session)

	c := button("easy")
	require.NoError(t, h.handleGrade(c))

	assert.Equal(t, 0, session.Index)
	assert.Equal(t, "apple", session.Current())
	assert.Equal(t, domain.StateRevealed, session.State)
	assert.Empty(t, c.edited)
	require.Len(t, c.responses, 1)
	assert.True(t, c.responses[0].ShowAlert)
	mockRepo.AssertExpectations(t)
}

func TestHandler_ReviewNothingDue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	h, words := newTestHandler(t, now)
	_, _, err := words.Capture(context.Background(), "apple", "", nil)
	require.NoError(t, err)

	c := command("/review")
	require.NoError(t, h.handleReview(c))

	assert.Nil(t, h.GetSession(testUser))
	assert.Equal(t, []interface{}{"🎉 Nothing to review right now"}, c.sent)
}

func TestHandler_GradeMasteryNoteShownOnce(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	h, words := newTestHandler(t, now)

	_, _, err := words.Capture(context.Background(), "apple", "", nil)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err := words.ApplyResponse(context.Background(), "apple", 5)
		require.NoError(t, err)
	}

	grade := func() *fakeContext {
		h.SetSession(testUser, &domain.ReviewSession{State: domain.StateRevealed, Queue: []string{"apple"}})
		c := button("easy")
		require.NoError(t, h.handleGrade(c))
		return c
	}

	c := grade()
	require.Len(t, c.responses, 1)
	assert.Equal(t, "🏆 apple mastered!", c.responses[0].Text)

	c = grade()
	assert.Empty(t, c.responses)
}
