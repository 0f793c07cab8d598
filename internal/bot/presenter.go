package bot

import (
	"context"

	"github.com/example/korbot/internal/engine"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramPresenter delivers engine prompts over the Telegram API
type telegramPresenter struct {
	api *tgbotapi.BotAPI
}

// replyKeyboard converts an engine keyboard layout to a Telegram reply keyboard
func replyKeyboard(kb engine.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, row := range kb {
		var buttons []tgbotapi.KeyboardButton
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}

// Text sends a plain message, optionally with a reply keyboard
func (p *telegramPresenter) Text(_ context.Context, userID int64, text string, keyboard engine.Keyboard) error {
	msg := tgbotapi.NewMessage(userID, text)
	if len(keyboard) > 0 {
		msg.ReplyMarkup = replyKeyboard(keyboard)
	}
	_, err := p.api.Send(msg)
	return err
}

// Image sends a photo by URL with a caption
func (p *telegramPresenter) Image(_ context.Context, userID int64, url, caption string, keyboard engine.Keyboard) error {
	photo := tgbotapi.NewPhoto(userID, tgbotapi.FileURL(url))
	photo.Caption = caption
	if len(keyboard) > 0 {
		photo.ReplyMarkup = replyKeyboard(keyboard)
	}
	_, err := p.api.Send(photo)
	return err
}
