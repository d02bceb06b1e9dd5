package telegram

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/mm-relief/lostfound-bot/bot"
)

var log = logrus.WithField("prefix", "telegram")

// Client implements bot.Transport over the Telegram Bot API and runs the
// long-poll loop that feeds the conversation engine.
type Client struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
}

func NewClient(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorization: %w", err)
	}
	log.Infof("authorized as @%s", api.Self.UserName)

	return &Client{
		api: api,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Run polls for updates until the context is cancelled. Updates are handled
// in arrival order, which preserves the per-chat sequencing the engine
// relies on.
func (c *Client) Run(ctx context.Context, engine *bot.Engine) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := c.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			engine.HandleUpdate(convert(update.Message))
		}
	}
}

func convert(m *tgbotapi.Message) bot.Message {
	msg := bot.Message{
		ChatID: m.Chat.ID,
		Text:   m.Text,
	}

	if m.From != nil {
		msg.From = bot.User{
			ID:        m.From.ID,
			FirstName: m.From.FirstName,
			LastName:  m.From.LastName,
			Username:  m.From.UserName,
		}
	}
	if m.IsCommand() {
		msg.Command = m.Command()
	}
	if len(m.Photo) > 0 {
		// Sizes come smallest first; the last one is the best quality.
		msg.PhotoFileID = m.Photo[len(m.Photo)-1].FileID
	}
	if m.Location != nil {
		msg.Location = &bot.Coordinates{
			Latitude:  m.Location.Latitude,
			Longitude: m.Location.Longitude,
		}
	}
	return msg
}

func (c *Client) Send(chatID int64, text string, keyboard bot.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	switch {
	case keyboard == nil:
		// leave the current keyboard alone
	case len(keyboard) == 0:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	default:
		msg.ReplyMarkup = replyKeyboard(keyboard)
	}

	_, err := c.api.Send(msg)
	return err
}

func (c *Client) SendPhoto(chatID int64, fileID string, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	photo.Caption = caption
	_, err := c.api.Send(photo)
	return err
}

func (c *Client) Broadcast(destination string, fileID string, text string) error {
	if fileID != "" {
		photo := tgbotapi.NewPhotoToChannel(destination, tgbotapi.FileID(fileID))
		photo.Caption = text
		_, err := c.api.Send(photo)
		return err
	}

	_, err := c.api.Send(tgbotapi.NewMessageToChannel(destination, text))
	return err
}

// DownloadFile fetches the bytes behind a platform file handle, used to
// mirror report photos into object storage.
func (c *Client) DownloadFile(fileID string) ([]byte, error) {
	url, err := c.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download: unexpected status %s", resp.Status)
	}
	return ioutil.ReadAll(resp.Body)
}

func replyKeyboard(kb bot.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{}
	for _, labels := range kb {
		row := []tgbotapi.KeyboardButton{}
		for _, label := range labels {
			row = append(row, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, row)
	}

	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = true
	markup.ResizeKeyboard = true
	return markup
}
