package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/example/korbot/internal/catalog"
	"github.com/example/korbot/internal/database"
	"github.com/example/korbot/internal/engine"
	"github.com/example/korbot/internal/scheduler"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// channelPost identifies the last post seen in the source channel
type channelPost struct {
	ChatID    int64
	MessageID int
}

// Bot is the Telegram transport adapter. All tutoring decisions live in the
// engine; the bot only moves text in and out and handles slash commands.
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *Config
	engine      *engine.Engine
	subscribers *database.SubscriberRepository
	scheduler   *scheduler.Scheduler

	mu       sync.Mutex
	lastPost *channelPost
}

// New creates the bot with its engine over the given catalog snapshot
func New(cfg *Config, snapshot *catalog.Snapshot) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %v", err)
	}

	b := &Bot{
		api:         api,
		cfg:         cfg,
		subscribers: database.NewSubscriberRepository(),
	}

	engineCfg := engine.DefaultConfig()
	engineCfg.CheckInterval = cfg.CheckInterval
	engineCfg.RecentWindow = cfg.CheckInterval
	b.engine = engine.New(
		snapshot,
		database.NewProgressRepository(),
		&telegramPresenter{api: api},
		engineCfg,
	)

	b.scheduler = scheduler.New(b, cfg.DigestHour)

	return b, nil
}

// Start runs the update loop until the context is canceled
func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.scheduler.Start()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			// one worker per event; same-user events are serialized
			// inside the engine's session arena
			go b.handleUpdate(ctx, update)
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		}
	}
}

// Stop shuts down the scheduler
func (b *Bot) Stop() {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	log.Println("Bot stopped")
}

// handleUpdate routes one incoming update
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.ChannelPost != nil {
		b.handleChannelPost(update.ChannelPost)
		return
	}

	message := update.Message
	if message == nil || message.From == nil {
		return
	}
	userID := message.From.ID

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStart(message)
		case "menu":
			if err := b.engine.HandleEvent(ctx, userID, "выйти"); err != nil {
				log.Printf("Error handling /menu for user %d: %v", userID, err)
			}
		case "unsubscribe":
			b.handleUnsubscribe(message)
		case "reset_score":
			if err := b.engine.ResetScore(ctx, userID); err != nil {
				log.Printf("Error resetting score for user %d: %v", userID, err)
			}
		case "clear_dictionary":
			if err := b.engine.ClearDictionary(ctx, userID); err != nil {
				log.Printf("Error clearing dictionary for user %d: %v", userID, err)
			}
		default:
			msg := tgbotapi.NewMessage(message.Chat.ID, "Неизвестная команда. Используйте /menu, чтобы открыть главное меню.")
			b.api.Send(msg)
		}
		return
	}

	if message.Text == "" {
		return
	}
	if err := b.engine.HandleEvent(ctx, userID, message.Text); err != nil {
		log.Printf("Error handling event for user %d: %v", userID, err)
	}
}

// handleStart greets a new user and subscribes them to the channel digest
func (b *Bot) handleStart(message *tgbotapi.Message) {
	if err := b.subscribers.Add(message.From.ID); err != nil {
		log.Printf("Error adding subscriber %d: %v", message.From.ID, err)
	}

	welcome := `Привет! 👋

Добро пожаловать в ProMol — твоего личного помощника в изучении корейского языка! 🇰🇷🎉

🌟 Хангыль 🅰️ — изучай корейский алфавит с нуля.
🌟 Учить новые слова 🌱 — пополняй словарный запас; выученные слова сохраняются в личный словарь.
🌟 Мой словарь 📖 — просматривай и повторяй изученные слова.
🌟 Подготовка к TOPIK 🎓 — материалы и советы для экзамена.
🌟 Ежедневные уведомления ⏰ — каждый день новый полезный пост.

С чего начнем? Выбери категорию: 👇`

	msg := tgbotapi.NewMessage(message.Chat.ID, welcome)
	msg.ReplyMarkup = replyKeyboard(engine.Keyboard{
		{"Хангыль", "Подготовка к ТОПИКу"},
		{"Мой словарь", "Учить новые слова"},
	})
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending welcome to user %d: %v", message.From.ID, err)
	}
}

// handleUnsubscribe removes the user from the digest list
func (b *Bot) handleUnsubscribe(message *tgbotapi.Message) {
	if err := b.subscribers.Delete(message.From.ID); err != nil {
		log.Printf("Error deleting subscriber %d: %v", message.From.ID, err)
	}
	msg := tgbotapi.NewMessage(message.Chat.ID, "Вы отписались от рассылки 😢")
	b.api.Send(msg)
}

// handleChannelPost records and immediately forwards a post from the
// source channel to every subscriber.
func (b *Bot) handleChannelPost(post *tgbotapi.Message) {
	if post.Chat == nil || !strings.EqualFold(post.Chat.UserName, b.cfg.SourceChannel) {
		return
	}

	b.mu.Lock()
	b.lastPost = &channelPost{ChatID: post.Chat.ID, MessageID: post.MessageID}
	b.mu.Unlock()

	if err := b.BroadcastLatest(); err != nil {
		log.Printf("Error broadcasting channel post: %v", err)
	}
}

// BroadcastLatest forwards the most recent channel post to all subscribers.
// A failed delivery drops the subscriber, matching the channel's policy for
// blocked or deleted accounts. Implements scheduler.Broadcaster.
func (b *Bot) BroadcastLatest() error {
	b.mu.Lock()
	post := b.lastPost
	b.mu.Unlock()
	if post == nil {
		return nil
	}

	subscribers, err := b.subscribers.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load subscribers: %v", err)
	}

	for _, sub := range subscribers {
		forward := tgbotapi.NewForward(sub.UserID, post.ChatID, post.MessageID)
		if _, err := b.api.Send(forward); err != nil {
			log.Printf("Error forwarding to %d, dropping subscriber: %v", sub.UserID, err)
			if err := b.subscribers.Delete(sub.UserID); err != nil {
				log.Printf("Error deleting subscriber %d: %v", sub.UserID, err)
			}
		}
	}
	return nil
}
