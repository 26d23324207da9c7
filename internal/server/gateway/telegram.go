// Package gateway adapts the Telegram Bot API to the core: inbound
// messages become account/credential/file events, outbound notifications
// become chat messages. It holds no ledger state of its own.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmitrijs2005/filebot/internal/logging"
	"github.com/dmitrijs2005/filebot/internal/server/services"
)

const (
	btnAddToken = "🔐 Add API Token"
	btnUpload   = "📤 Upload File"
	btnMyFiles  = "📁 My Files"
	btnUsage    = "📊 Usage"
)

// recentFilesShown bounds the "My Files" chat reply to the newest uploads.
const recentFilesShown = 5

// Gateway is the Telegram front-end adapter. It also implements
// services.Notifier so terminal upload outcomes reach the user.
type Gateway struct {
	bot    *tgbotapi.BotAPI
	logger logging.Logger

	accounts  *services.AccountService
	uploads   *services.UploadService
	dashboard *services.DashboardService

	// awaitingToken marks chats whose next text message is a credential.
	// Replaces the nested next-step callbacks of ad-hoc bot scripts with
	// one explicit pending-input map.
	mu            sync.Mutex
	awaitingToken map[int64]bool
}

// New connects to the Bot API. Services are attached with Bind before Run.
func New(botToken string, logger logging.Logger) (*Gateway, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("bot api init: %w", err)
	}
	return &Gateway{
		bot:           bot,
		logger:        logger.With("module", "gateway"),
		awaitingToken: make(map[int64]bool),
	}, nil
}

// Bind attaches the services. Separate from New because the upload service
// needs the gateway as its Notifier.
func (g *Gateway) Bind(accounts *services.AccountService, uploads *services.UploadService, dashboard *services.DashboardService) {
	g.accounts = accounts
	g.uploads = uploads
	g.dashboard = dashboard
}

// Notify sends text to the account's chat. Account ids are the numeric
// Telegram user ids, so they double as chat ids for private chats.
func (g *Gateway) Notify(ctx context.Context, accountID string, text string) error {
	chatID, err := strconv.ParseInt(accountID, 10, 64)
	if err != nil {
		return fmt.Errorf("bad account id %q: %w", accountID, err)
	}
	if _, err := g.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// Run polls for updates until ctx is cancelled. Each update is handled in
// its own goroutine; the per-account lock inside the upload service keeps
// same-account uploads serialized.
func (g *Gateway) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := g.bot.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		g.logger.Info(ctx, "Stopping gateway...")
		g.bot.StopReceivingUpdates()
	}()

	g.logger.Info(ctx, "Starting gateway", "bot", g.bot.Self.UserName)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		msg := update.Message
		go g.handleMessage(ctx, msg)
	}

	return nil
}

func (g *Gateway) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	accountID := strconv.FormatInt(m.From.ID, 10)
	chatID := m.Chat.ID

	switch {
	case m.IsCommand() && m.Command() == "start":
		g.handleStart(ctx, m, accountID, chatID)
	case m.Document != nil:
		g.handleDocument(ctx, m, accountID, chatID)
	case m.Text == btnAddToken:
		g.setAwaitingToken(chatID, true)
		g.reply(ctx, chatID, "🔑 Send me your storage provider API token.")
	case m.Text == btnUpload:
		g.handleUploadPrompt(ctx, accountID, chatID)
	case m.Text == btnMyFiles:
		g.handleMyFiles(ctx, accountID, chatID)
	case m.Text == btnUsage:
		g.handleUsage(ctx, accountID, chatID)
	default:
		if g.takeAwaitingToken(chatID) {
			g.handleToken(ctx, m, accountID, chatID)
		}
	}
}

func (g *Gateway) handleStart(ctx context.Context, m *tgbotapi.Message, accountID string, chatID int64) {
	if err := g.accounts.Contact(ctx, accountID, m.From.FirstName); err != nil {
		g.logger.Error(ctx, "contact failed", "account_id", accountID, "error", err)
		g.reply(ctx, chatID, "❌ Something went wrong. Try /start again.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "👋 Welcome! Use the menu below:")
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddToken),
			tgbotapi.NewKeyboardButton(btnUpload),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMyFiles),
			tgbotapi.NewKeyboardButton(btnUsage),
		),
	)
	if _, err := g.bot.Send(msg); err != nil {
		g.logger.Warn(ctx, "send failed", "error", err)
	}
}

func (g *Gateway) handleToken(ctx context.Context, m *tgbotapi.Message, accountID string, chatID int64) {
	if err := g.accounts.SetCredential(ctx, accountID, m.Text); err != nil {
		g.logger.Warn(ctx, "credential rejected", "account_id", accountID, "error", err)
		g.reply(ctx, chatID, "❌ Token was not accepted. Use "+btnAddToken+" to try again.")
		return
	}
	g.reply(ctx, chatID, "✅ Token saved!")
}

func (g *Gateway) handleUploadPrompt(ctx context.Context, accountID string, chatID int64) {
	account, err := g.accounts.Get(ctx, accountID)
	if err != nil || !account.HasCredential() {
		g.reply(ctx, chatID, "❌ Please add your API token first ("+btnAddToken+").")
		return
	}
	g.reply(ctx, chatID, "📎 Send the file now (max 100 MiB).")
}

func (g *Gateway) handleDocument(ctx context.Context, m *tgbotapi.Message, accountID string, chatID int64) {
	doc := m.Document
	g.reply(ctx, chatID, "⏳ Uploading to the storage provider...")

	req := services.UploadRequest{
		AccountID: accountID,
		Name:      doc.FileName,
		Size:      int64(doc.FileSize),
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			return g.openDocument(ctx, doc.FileID)
		},
	}

	// Terminal outcomes are reported through Notify by the upload service.
	if _, err := g.uploads.Upload(ctx, req); err != nil {
		g.logger.Warn(ctx, "upload not committed", "account_id", accountID, "error", err)
	}
}

// openDocument streams the document's bytes from the Bot API file storage.
func (g *Gateway) openDocument(ctx context.Context, fileID string) (io.ReadCloser, error) {
	url, err := g.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download from chat platform: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download from chat platform: %s", resp.Status)
	}
	return resp.Body, nil
}

func (g *Gateway) handleMyFiles(ctx context.Context, accountID string, chatID int64) {
	view, err := g.dashboard.Summarize(ctx, accountID, recentFilesShown)
	if err != nil || len(view.Files) == 0 {
		g.reply(ctx, chatID, "📂 No files uploaded yet.")
		return
	}

	text := "Your files:\n"
	for _, f := range view.Files {
		sizeMB := float64(f.Size) / (1024 * 1024)
		text += fmt.Sprintf("- %s (%.2f MB): https://%s.ipfs.dweb.link\n", f.Name, sizeMB, f.ContentID)
	}
	g.reply(ctx, chatID, text)
}

func (g *Gateway) handleUsage(ctx context.Context, accountID string, chatID int64) {
	view, err := g.dashboard.Summarize(ctx, accountID, 0)
	if err != nil {
		g.reply(ctx, chatID, "❌ Usage is unavailable right now. Try again later.")
		return
	}

	gbUsed := float64(view.UsedBytes) / (1 << 30)
	gbQuota := float64(view.QuotaBytes) / (1 << 30)
	g.reply(ctx, chatID, fmt.Sprintf("🧠 Storage used: %.2f GB / %.0f GB (%.2f%%)\n💎 Points: %d",
		gbUsed, gbQuota, view.UsedPercent, view.Points))
}

func (g *Gateway) reply(ctx context.Context, chatID int64, text string) {
	if _, err := g.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		g.logger.Warn(ctx, "send failed", "error", err)
	}
}

func (g *Gateway) setAwaitingToken(chatID int64, v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if v {
		g.awaitingToken[chatID] = true
	} else {
		delete(g.awaitingToken, chatID)
	}
}

// takeAwaitingToken reports and clears the pending-token mark for the chat.
func (g *Gateway) takeAwaitingToken(chatID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.awaitingToken[chatID] {
		delete(g.awaitingToken, chatID)
		return true
	}
	return false
}

var _ services.Notifier = (*Gateway)(nil)
