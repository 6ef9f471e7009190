package channels

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ndip23/pressing-management-system-sub000/config"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
)

// TelegramSender là phần của *tgbotapi.BotAPI mà TelegramOpsNotifier cần
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramOpsNotifier mirror cảnh báo nội bộ (đơn quá hạn) sang các chat Telegram của operator.
// Không dùng để gửi cho khách
type TelegramOpsNotifier struct {
	bot     TelegramSender
	chatIDs []int64
}

// NewTelegramOpsNotifier dựng notifier từ cấu hình, trả nil khi thiếu token hoặc chat id
func NewTelegramOpsNotifier(cfg *config.Configuration) (*TelegramOpsNotifier, error) {
	if cfg == nil || cfg.TelegramBotToken == "" || len(cfg.TelegramChatIDList()) == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return NewTelegramOpsNotifierWithSender(bot, cfg.TelegramChatIDList())
}

// NewTelegramOpsNotifierWithSender dựng notifier với sender tùy ý
func NewTelegramOpsNotifierWithSender(bot TelegramSender, chatIDs []string) (*TelegramOpsNotifier, error) {
	ids := make([]int64, 0, len(chatIDs))
	for _, raw := range chatIDs {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid telegram chat id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return &TelegramOpsNotifier{bot: bot, chatIDs: ids}, nil
}

// Notify gửi text tới mọi chat đã cấu hình. Link localhost bị bỏ vì Telegram từ chối URL đó.
// Trả lỗi đầu tiên gặp phải nhưng vẫn gửi tới các chat còn lại
func (n *TelegramOpsNotifier) Notify(ctx context.Context, text, link string) error {
	if n == nil || n.bot == nil {
		return nil
	}
	var firstErr error
	for _, chatID := range n.chatIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chatID, text)
		if link != "" && !strings.Contains(link, "localhost") && !strings.Contains(link, "127.0.0.1") {
			kb := tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("Mở đơn hàng", link)),
			)
			msg.ReplyMarkup = kb
		}
		if _, err := n.bot.Send(msg); err != nil {
			logger.WithContext(ctx).WithError(err).WithField("chatId", chatID).Warn("📱 [TELEGRAM] Gửi cảnh báo thất bại")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
