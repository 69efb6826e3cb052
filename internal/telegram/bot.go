package telegram

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"meal-planner/internal/app"
	"meal-planner/internal/config"
	"meal-planner/internal/logger"
	"meal-planner/internal/preference"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers planner commands sent by the allowed Telegram users.
type Bot struct {
	api     *tgbotapi.BotAPI
	sender  sender
	app     *app.App
	allowed []int64
	log     *logger.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, a *app.App, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	log.Info("telegram bot authorized", "account", api.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook config: %w", err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Info("telegram webhook set", "description", resp.Description)

	b := newBot(api, a, cfg.TelegramAllowedUserIDs, log)
	b.api = api
	return b, nil
}

func newBot(s sender, a *app.App, allowed []int64, log *logger.Logger) *Bot {
	return &Bot{sender: s, app: a, allowed: allowed, log: log}
}

// WebhookHandler decodes Telegram updates posted to the webhook.
func (b *Bot) WebhookHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		update, err := b.api.HandleUpdate(r)
		if err != nil {
			b.log.Warn("failed to parse telegram update", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.handleUpdate(*update)
		w.WriteHeader(http.StatusOK)
	})
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !slices.Contains(b.allowed, msg.From.ID) {
		b.log.Warn("unauthorized telegram access attempt", "user_id", msg.From.ID, "username", msg.From.UserName)
		return
	}
	b.processMessage(msg)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	cmd, args := parseCommand(msg.Text)
	chatID := msg.Chat.ID

	switch cmd {
	case "/start", "/help":
		b.reply(chatID, helpText)
	case "/plan":
		b.app.RefreshPlanIfNeeded(false)
		b.reply(chatID, formatPlan(b.app.CurrentPlan()))
	case "/refresh":
		b.app.RefreshPlanIfNeeded(true)
		b.reply(chatID, formatPlan(b.app.CurrentPlan()))
	case "/shopping":
		b.reply(chatID, formatShoppingList(b.app.ShoppingItems()))
	case "/feedback":
		b.reply(chatID, b.submitFeedback(args))
	case "/tastes":
		b.reply(chatID, formatTastes(b.app.PreferenceProfile()))
	case "/today":
		b.reply(chatID, formatMacros("🥗 *Today so far*", b.app.TodaysSummary(context.Background())))
	case "/status":
		b.reply(chatID, formatStatus(b.app.SysHealth()))
	default:
		b.reply(chatID, "🤔 Unknown command.\n\n"+helpText)
	}
}

func (b *Bot) submitFeedback(args []string) string {
	if len(args) < 2 {
		return "Usage: `/feedback <meal-id> <type> [comment]`\nTypes: " + feedbackTypesList()
	}
	mealID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Sprintf("❌ Invalid meal id `%s`", args[0])
	}
	feedbackType, err := preference.ParseFeedbackType(args[1])
	if err != nil {
		return "❌ Unknown feedback type. Use one of: " + feedbackTypesList()
	}

	var comment *string
	if len(args) > 2 {
		c := strings.Join(args[2:], " ")
		comment = &c
	}
	b.app.SubmitFeedback(mealID, feedbackType, comment)
	return "✅ Thanks! Your plan is being refreshed."
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.sender.Send(msg); err != nil {
		b.log.Error("failed to send telegram message", "chat_id", chatID, "error", err)
	}
}

// parseCommand splits "/cmd@bot arg1 arg2" into "/cmd" and its arguments.
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return strings.ToLower(cmd), fields[1:]
}

func feedbackTypesList() string {
	names := make([]string, 0, len(preference.AllFeedbackTypes()))
	for _, t := range preference.AllFeedbackTypes() {
		names = append(names, "`"+string(t)+"`")
	}
	return strings.Join(names, ", ")
}

const helpText = `🧑‍🍳 *Meal Planner*

/plan - this week's plan
/refresh - generate a new plan
/shopping - the shopping list
/feedback <meal-id> <type> - rate a meal
/tastes - what I learned about your tastes
/today - today's nutrition
/status - system health`
