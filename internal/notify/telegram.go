package notify

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"navalha/internal/model"
)

// TelegramNotifier sends reminders through the Telegram Bot API.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
	loc *time.Location
}

// NewTelegramNotifier authorizes the bot with the given token.
func NewTelegramNotifier(token string, loc *time.Location) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &TelegramNotifier{bot: bot, loc: loc}, nil
}

// SendReminder delivers the reminder message for one appointment.
func (n *TelegramNotifier) SendReminder(ctx context.Context, chatID int64, appt *model.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, reminderText(appt, n.loc))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func reminderText(appt *model.Appointment, loc *time.Location) string {
	start := appt.StartTime.In(loc)
	service := appt.ServiceName
	if service == "" {
		service = "your appointment"
	}
	return fmt.Sprintf(
		"⏰ <b>Reminder</b>\n\n%s, you have %s on <b>%s</b> at <b>%s</b>.\n\nTo cancel, use code <code>%s</code>.",
		appt.ClientName,
		service,
		start.Format("02.01.2006"),
		start.Format("15:04"),
		appt.Code,
	)
}
