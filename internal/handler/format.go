package handler

import (
	"fmt"
	"strings"
	"time"

	"lexmora/internal/domain"
)

func formatFront(session *domain.ReviewSession) string {
	return fmt.Sprintf("🃏 %s\n\n📚 %d left", session.Current(), session.Remaining())
}

func formatBack(w *domain.Word, remaining int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🃏 %s\n", w.Word)

	if len(w.Meanings) == 0 {
		b.WriteString("\n(no meanings saved)\n")
	}
	for i, m := range w.Meanings {
		b.WriteString("\n")
		if m.PartOfSpeech != "" {
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, m.PartOfSpeech, m.Definition)
		} else {
			fmt.Fprintf(&b, "%d. %s\n", i+1, m.Definition)
		}
		if m.Example != "" {
			fmt.Fprintf(&b, "   “%s”\n", m.Example)
		}
	}

	if w.SourceURL != "" {
		fmt.Fprintf(&b, "\n🔗 %s\n", w.SourceURL)
	}
	fmt.Fprintf(&b, "\n📚 %d left", remaining)
	return b.String()
}

func formatSessionEnd(session *domain.ReviewSession) string {
	reviewed := 0
	if session != nil {
		reviewed = session.Index
	}
	if session.Remaining() == 0 && reviewed > 0 {
		return fmt.Sprintf("✅ Session complete, %d reviewed", reviewed)
	}
	return fmt.Sprintf("⏹ Session stopped, %d reviewed", reviewed)
}

func formatStats(m *domain.Metrics, days []domain.Day, now time.Time) string {
	var b strings.Builder
	b.WriteString("📊 Your progress\n\n")
	fmt.Fprintf(&b, "Total words: %d\n", m.TotalWords)
	fmt.Fprintf(&b, "Mastered: %d\n", m.MasteredWords)
	fmt.Fprintf(&b, "In review: %d\n", m.InReviewWords)
	fmt.Fprintf(&b, "Active today: %d\n", m.ReviewedToday)
	fmt.Fprintf(&b, "🔥 Streak: %d day(s)\n", m.StreakDays)

	if len(days) > 0 {
		b.WriteString("\n📅 Recent days\n")
		for _, d := range days {
			fmt.Fprintf(&b, "%s: %d\n", d.DisplayString(now), d.WordCount)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
