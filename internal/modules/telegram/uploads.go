package telegram

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegrambridge/internal/core"
)

// SendPhoto загружает локальный файл как фото.
func (c *Client) SendPhoto(ctx context.Context, args core.SendPhotoArgs) (core.SendResult, error) {
	if args.ChatID.IsZero() || args.PhotoPath == "" {
		return core.SendResult{}, core.RequestError("Missing required parameters 'chat_id' or 'photo_path'.")
	}
	id, username := chatTarget(args.ChatID)

	var msg tgbotapi.Message
	err := c.upload(ctx, args.PhotoPath, "Error sending photo", func(file tgbotapi.RequestFileData) error {
		cfg := tgbotapi.NewPhoto(id, file)
		cfg.ChannelUsername = username
		cfg.Caption = args.Caption
		var err error
		msg, err = c.api.Send(cfg)
		return err
	})
	if err != nil {
		return core.SendResult{}, err
	}
	return core.SendResult{Status: "Photo successfully sent.", MessageID: msg.MessageID}, nil
}

// SendDocument загружает локальный файл как документ.
func (c *Client) SendDocument(ctx context.Context, args core.SendDocumentArgs) (core.SendResult, error) {
	if args.ChatID.IsZero() || args.DocumentPath == "" {
		return core.SendResult{}, core.RequestError("Missing required parameters 'chat_id' or 'document_path'.")
	}
	id, username := chatTarget(args.ChatID)

	var msg tgbotapi.Message
	err := c.upload(ctx, args.DocumentPath, "Error sending document", func(file tgbotapi.RequestFileData) error {
		cfg := tgbotapi.NewDocument(id, file)
		cfg.ChannelUsername = username
		cfg.Caption = args.Caption
		var err error
		msg, err = c.api.Send(cfg)
		return err
	})
	if err != nil {
		return core.SendResult{}, err
	}
	return core.SendResult{Status: "Document successfully sent.", MessageID: msg.MessageID}, nil
}

// upload держит файл открытым только на время одного вызова send.
// Если файл не открылся, удаленный вызов не выполняется.
func (c *Client) upload(ctx context.Context, path, op string, send func(tgbotapi.RequestFileData) error) error {
	f, err := os.Open(path) // #nosec G304 -- путь задает вызывающий процесс, файл только читается.
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.RequestError("File not found: %s", path)
		}
		return core.RequestError("Cannot open file %s: %v", path, openReason(err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return core.RequestError("Cannot open file %s: %v", path, openReason(err))
	}
	if info.IsDir() {
		return core.RequestError("Cannot open file %s: is a directory", path)
	}

	return c.call(ctx, op, func() error {
		return send(tgbotapi.FileReader{Name: filepath.Base(path), Reader: f})
	})
}

func openReason(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
