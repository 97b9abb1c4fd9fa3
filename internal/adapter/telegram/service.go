package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"signalgate/internal/domain"
)

const defaultAPIBase = "https://api.telegram.org"

// NotificationService posts gateway events to a Telegram chat via the Bot
// API. When the bot token or chat id is unconfigured every send is a
// silent no-op, so callers never branch on availability.
type NotificationService struct {
	botToken   string
	chatID     string
	enabled    bool
	apiBase    string
	httpClient *http.Client
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// NewNotificationService creates a notifier; unconfigured credentials
// disable it silently
func NewNotificationService(botToken, chatID string) *NotificationService {
	return &NotificationService{
		botToken: botToken,
		chatID:   chatID,
		enabled:  botToken != "" && chatID != "",
		apiBase:  defaultAPIBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether the notifier is configured
func (s *NotificationService) Enabled() bool {
	return s.enabled
}

// SendSignal sends an accepted-submission notification to Telegram
func (s *NotificationService) SendSignal(record *domain.SignalRecord) error {
	if !s.enabled {
		return nil // Silently skip if Telegram is not configured
	}

	sideEmoji := "🟢"
	if record.Direction() == "SELL" {
		sideEmoji = "🔴"
	}

	message := fmt.Sprintf(
		"📡 *SIGNAL RECEIVED*\n\n"+
			"%s *%s %s*\n"+
			"━━━━━━━━━━━━━━━━━\n"+
			"⏱ Timeframe: `%s`\n"+
			"📈 Confidence: `%.0f%%`\n"+
			"🕒 Received: `%s`\n"+
			"🆔 `%s`",
		sideEmoji,
		record.Direction(),
		record.Asset(),
		record.Timeframe(),
		record.Confidence(),
		record.ReceivedAt.Format("2006-01-02 15:04:05"),
		record.ID,
	)

	return s.sendMessage(message)
}

// SendDigest sends a daily summary of stored signals to Telegram
func (s *NotificationService) SendDigest(day string, received int, total int, byDirection map[string]int) error {
	if !s.enabled {
		return nil
	}

	breakdown := ""
	for direction, count := range byDirection {
		breakdown += fmt.Sprintf("  • %s: `%d`\n", direction, count)
	}
	if breakdown == "" {
		breakdown = "  • none\n"
	}

	message := fmt.Sprintf(
		"🗞 *DAILY SIGNAL DIGEST — %s*\n\n"+
			"📥 Received today: `%d`\n"+
			"📊 By direction:\n%s"+
			"🗄 Stored all-time: `%d`",
		day,
		received,
		breakdown,
		total,
	)

	return s.sendMessage(message)
}

// sendMessage sends a message to Telegram using the Bot API
func (s *NotificationService) sendMessage(text string) error {
	if !s.enabled {
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)

	payload := telegramMessage{
		ChatID:    s.chatID,
		Text:      text,
		ParseMode: "Markdown",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode telegram message: %w", err)
	}

	resp, err := s.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram API returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
