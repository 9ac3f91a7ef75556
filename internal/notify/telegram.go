package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"proplines/internal/pkg/models"
	"proplines/internal/resolve"
)

// Min interval between messages to the same chat to stay under Telegram's
// rate limit (~30/min).
const telegramSendInterval = 2 * time.Second

// TelegramNotifier pushes run summaries to a Telegram chat
type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates a notifier, or nil when the bot cannot be
// reached; a broken notifier never blocks the pipeline.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NotifyRun sends one summary message for a finished resolution pass.
func (n *TelegramNotifier) NotifyRun(result *resolve.Result) error {
	if n == nil {
		return nil
	}
	return n.send(formatRunSummary(result))
}

func (n *TelegramNotifier) send(text string) error {
	n.mu.Lock()
	if wait := telegramSendInterval - time.Since(n.lastSend); wait > 0 {
		time.Sleep(wait)
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func formatRunSummary(result *resolve.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Line resolution finished</b>\n")
	fmt.Fprintf(&b, "Run: <code>%s</code>\n", result.RunID)
	fmt.Fprintf(&b, "Matched: %d\n", len(result.Canonical))
	fmt.Fprintf(&b, "Unmatched: %d\n", len(result.Unmatched))

	if len(result.Unmatched) == 0 {
		return b.String()
	}

	reasons := make(map[models.UnmatchedReason]int)
	for _, u := range result.Unmatched {
		reasons[u.Reason]++
	}
	for _, reason := range []models.UnmatchedReason{
		models.ReasonNoCandidates,
		models.ReasonAmbiguousTie,
		models.ReasonBelowThreshold,
	} {
		if count := reasons[reason]; count > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", reason, count)
		}
	}

	// List a handful of names so ambiguous ties can be fixed with overrides.
	const maxListed = 10
	for i, u := range result.Unmatched {
		if i == maxListed {
			fmt.Fprintf(&b, "  … and %d more\n", len(result.Unmatched)-maxListed)
			break
		}
		fmt.Fprintf(&b, "• %s (%s) — %s\n", u.Line.Player, u.Line.Market, u.Reason)
	}
	return b.String()
}
