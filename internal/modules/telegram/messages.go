package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegrambridge/internal/core"
)

// SendMessage отправляет текст в чат.
func (c *Client) SendMessage(ctx context.Context, args core.SendMessageArgs) (core.SendResult, error) {
	if args.ChatID.IsZero() || args.Text == "" {
		return core.SendResult{}, core.RequestError("Missing required parameters 'chat_id' or 'text'.")
	}
	id, username := chatTarget(args.ChatID)
	cfg := tgbotapi.NewMessage(id, args.Text)
	cfg.ChannelUsername = username

	var msg tgbotapi.Message
	err := c.call(ctx, "Error sending message", func() error {
		var err error
		msg, err = c.api.Send(cfg)
		return err
	})
	if err != nil {
		return core.SendResult{}, err
	}
	return core.SendResult{
		Status:    "Message successfully sent to chat " + args.ChatID.String() + ".",
		MessageID: msg.MessageID,
	}, nil
}

// EditMessageText заменяет текст ранее отправленного сообщения.
func (c *Client) EditMessageText(ctx context.Context, args core.EditMessageTextArgs) (core.StatusResult, error) {
	if args.ChatID.IsZero() || args.MessageID == 0 || args.Text == "" {
		return core.StatusResult{}, core.RequestError("Missing required parameters 'chat_id', 'message_id', or 'text'.")
	}
	id, username := chatTarget(args.ChatID)
	cfg := tgbotapi.NewEditMessageText(id, args.MessageID, args.Text)
	cfg.ChannelUsername = username

	err := c.call(ctx, "Error editing message", func() error {
		_, err := c.api.Request(cfg)
		return err
	})
	if err != nil {
		return core.StatusResult{}, err
	}
	return core.StatusResult{Status: "Message successfully edited."}, nil
}

// DeleteMessage удаляет сообщение.
func (c *Client) DeleteMessage(ctx context.Context, args core.DeleteMessageArgs) (core.StatusResult, error) {
	if args.ChatID.IsZero() || args.MessageID == 0 {
		return core.StatusResult{}, core.RequestError("Missing required parameters 'chat_id' or 'message_id'.")
	}
	id, username := chatTarget(args.ChatID)
	cfg := tgbotapi.NewDeleteMessage(id, args.MessageID)
	cfg.ChannelUsername = username

	err := c.call(ctx, "Error deleting message", func() error {
		_, err := c.api.Request(cfg)
		return err
	})
	if err != nil {
		return core.StatusResult{}, err
	}
	return core.StatusResult{Status: "Message successfully deleted."}, nil
}

// ReadMessages делает один long-poll запрос getUpdates. Повторов нет:
// на один вызов процесса приходится один poll.
func (c *Client) ReadMessages(ctx context.Context, args core.ReadMessagesArgs) (core.ReadResult, error) {
	timeout := c.opts.DefaultPollTimeout
	if args.Timeout != nil {
		timeout = *args.Timeout
	}
	if timeout < 0 {
		return core.ReadResult{}, core.RequestError("Invalid parameter 'timeout': must not be negative.")
	}
	cfg := tgbotapi.NewUpdate(args.Offset)
	cfg.Timeout = timeout
	cfg.Limit = c.opts.PollLimit
	c.pollDeadline(timeout)

	var updates []tgbotapi.Update
	err := c.call(ctx, "Error reading messages", func() error {
		var err error
		updates, err = c.api.GetUpdates(cfg)
		return err
	})
	if err != nil {
		return core.ReadResult{}, err
	}
	return collectMessages(updates, args.Offset, args.ChatID), nil
}

// collectMessages сдвигает offset за каждое полученное обновление, даже
// если оно не попадает в результат: иначе оно пришло бы снова.
// filter == nil означает "без фильтра"; пустой или нулевой chat_id не совпадает ни с одним чатом.
func collectMessages(updates []tgbotapi.Update, offset int, filter *core.ChatRef) core.ReadResult {
	res := core.ReadResult{Messages: []core.InboundMessage{}, Offset: offset}
	var want string
	if filter != nil {
		want = strings.TrimSpace(filter.String())
	}
	for _, upd := range updates {
		res.Offset = upd.UpdateID + 1
		msg := upd.Message
		if msg == nil {
			msg = upd.EditedMessage
		}
		if msg == nil || msg.Text == "" || msg.Chat == nil {
			continue
		}
		// ids сравниваются строками: API отдает их то числом, то строкой.
		if filter != nil && formatChatID(msg.Chat.ID) != want {
			continue
		}
		res.Messages = append(res.Messages, core.InboundMessage{
			UpdateID: upd.UpdateID,
			ChatID:   msg.Chat.ID,
			Text:     msg.Text,
		})
	}
	return res
}
