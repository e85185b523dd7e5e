package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegrambridge/internal/core"
)

// GetMe возвращает профиль бота.
func (c *Client) GetMe(ctx context.Context) (core.Profile, error) {
	const op = "Error getting bot info"
	var me tgbotapi.User
	err := c.call(ctx, op, func() error {
		var err error
		me, err = c.api.GetMe()
		return err
	})
	if err != nil {
		return nil, err
	}
	return marshalProfile(me, op)
}

// GetChat возвращает профиль чата.
func (c *Client) GetChat(ctx context.Context, args core.ChatArgs) (core.Profile, error) {
	const op = "Error getting chat info"
	if args.ChatID.IsZero() {
		return nil, core.RequestError("Missing required parameter 'chat_id'.")
	}
	cfg := tgbotapi.ChatInfoConfig{ChatConfig: chatConfig(args.ChatID)}

	var chat tgbotapi.Chat
	err := c.call(ctx, op, func() error {
		var err error
		chat, err = c.api.GetChat(cfg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return marshalProfile(chat, op)
}

// GetChatAdministrators возвращает администраторов чата.
func (c *Client) GetChatAdministrators(ctx context.Context, args core.ChatArgs) (core.AdministratorsResult, error) {
	const op = "Error getting chat administrators"
	if args.ChatID.IsZero() {
		return core.AdministratorsResult{}, core.RequestError("Missing required parameter 'chat_id'.")
	}
	cfg := tgbotapi.ChatAdministratorsConfig{ChatConfig: chatConfig(args.ChatID)}

	var members []tgbotapi.ChatMember
	err := c.call(ctx, op, func() error {
		var err error
		members, err = c.api.GetChatAdministrators(cfg)
		return err
	})
	if err != nil {
		return core.AdministratorsResult{}, err
	}
	res := core.AdministratorsResult{Administrators: make([]core.Profile, 0, len(members))}
	for _, m := range members {
		p, err := marshalProfile(m, op)
		if err != nil {
			return core.AdministratorsResult{}, err
		}
		res.Administrators = append(res.Administrators, p)
	}
	return res, nil
}

// AnswerCallbackQuery отвечает на нажатие inline-кнопки.
func (c *Client) AnswerCallbackQuery(ctx context.Context, args core.AnswerCallbackQueryArgs) (core.StatusResult, error) {
	if args.CallbackQueryID == "" {
		return core.StatusResult{}, core.RequestError("Missing required parameter 'callback_query_id'.")
	}
	cfg := tgbotapi.NewCallback(args.CallbackQueryID, args.Text)

	err := c.call(ctx, "Error answering callback query", func() error {
		_, err := c.api.Request(cfg)
		return err
	})
	if err != nil {
		return core.StatusResult{}, err
	}
	return core.StatusResult{Status: "Callback query answered successfully."}, nil
}
