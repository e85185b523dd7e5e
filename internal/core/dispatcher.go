package core

import (
	"context"
	"fmt"
	"sort"
)

// Command задает закрытый набор команд моста.
type Command int

const (
	CommandSendMessage Command = iota + 1
	CommandReadMessages
	CommandGetMe
	CommandGetChat
	CommandEditMessageText
	CommandDeleteMessage
	CommandSendPhoto
	CommandSendDocument
	CommandGetChatAdministrators
	CommandAnswerCallbackQuery
)

var commandNames = map[Command]string{
	CommandSendMessage:           "send_message",
	CommandReadMessages:          "read",
	CommandGetMe:                 "get_me",
	CommandGetChat:               "get_chat",
	CommandEditMessageText:       "edit_message_text",
	CommandDeleteMessage:         "delete_message",
	CommandSendPhoto:             "send_photo",
	CommandSendDocument:          "send_document",
	CommandGetChatAdministrators: "get_chat_administrators",
	CommandAnswerCallbackQuery:   "answer_callback_query",
}

// commandTable остается единственным местом, где имя из argv превращается в команду.
var commandTable = map[string]Command{
	"send_message":            CommandSendMessage,
	"read":                    CommandReadMessages,
	"read_messages":           CommandReadMessages,
	"get_me":                  CommandGetMe,
	"get_chat":                CommandGetChat,
	"edit_message_text":       CommandEditMessageText,
	"delete_message":          CommandDeleteMessage,
	"send_photo":              CommandSendPhoto,
	"send_document":           CommandSendDocument,
	"get_chat_administrators": CommandGetChatAdministrators,
	"answer_callback_query":   CommandAnswerCallbackQuery,
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// LookupCommand находит команду по имени из argv.
func LookupCommand(name string) (Command, bool) {
	cmd, ok := commandTable[name]
	return cmd, ok
}

// CommandNames возвращает все допустимые имена команд, включая алиасы.
func CommandNames() []string {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type handler func(ctx context.Context, f Facade, args Args) (interface{}, error)

var handlers = map[Command]handler{
	CommandSendMessage: func(ctx context.Context, f Facade, a Args) (interface{}, error) {
		var in SendMessageArgs
		if err := a.bind(CommandSendMessage,
			chatField("chat_id", &in.ChatID),
			stringField("text", &in.Text),
		); err != nil {
			return nil, err
		}
		return f.SendMessage(ctx, in)
	},
	CommandReadMessages: func(ctx context.Context, f Facade, a Args) (interface{}, error) {
		var in ReadMessagesArgs
		if err := a.bind(CommandReadMessages,
			optionalChatField("chat_id", &in.ChatID),
			intField("offset", &in.Offset),
			optionalIntField("timeout", &in.Timeout),
		); err != nil {
			return nil, err
		}
		return f.ReadMessages(ctx, in)
	},
	CommandGetMe: func(ctx context.Context, f Facade, a Args) (interface{}, error) {
		if err := a.bind(CommandGetMe); err != nil {
			return nil, err
		}
		return f.GetMe(ctx)
	},
	CommandGetChat: func(ctx context.Context, f Facade, a Args) (interface{}, error) {
		var in ChatArgs
		if err := a.bind(CommandGetChat, chatField("chat_id", &in.ChatID)); err != nil {
			return nil, err
		}
		return f.GetChat(ctx, in)
	},
	CommandEditMessageText: func(ctx context.Context, f Facade, a Args) (interface{}, error) {
		var in EditMessageTextArgs
		if err := a.bind(CommandEditMessageText,
			chatField("chat_id", &in.ChatID),
			intField("message_id", &in.MessageID),
			stringField("text", &in.Text),
		); err != nil {
			return nil, err
		}
		return f.EditMessageText(ctx, in)
	},
	CommandDeleteMessage: func(ctx context.Context, f Facade, a Args) (interface{}, error) {
		var in DeleteMessageArgs
		if err := a.bind(CommandDeleteMessage,
			chatField("chat_id", &in.ChatID),
			intField("message_id", &in.MessageID),
		); err != nil {
			return nil, err
		}
		return f.DeleteMessage(ctx, in)
	},
	CommandSendPhoto: func(ctx context.Context, f Facade, a Args) (interface{}, error) {
		var in SendPhotoArgs
		if err := a.bind(CommandSendPhoto,
			chatField("chat_id", &in.ChatID),
			stringField("photo_path", &in.PhotoPath),
			stringField("caption", &in.Caption),
		); err != nil {
			return nil, err
		}
		return f.SendPhoto(ctx, in)
	},
	CommandSendDocument: func(ctx context.Context, f Facade, a Args) (interface{}, error) {
		var in SendDocumentArgs
		if err := a.bind(CommandSendDocument,
			chatField("chat_id", &in.ChatID),
			stringField("document_path", &in.DocumentPath),
			stringField("caption", &in.Caption),
		); err != nil {
			return nil, err
		}
		return f.SendDocument(ctx, in)
	},
	CommandGetChatAdministrators: func(ctx context.Context, f Facade, a Args) (interface{}, error) {
		var in ChatArgs
		if err := a.bind(CommandGetChatAdministrators, chatField("chat_id", &in.ChatID)); err != nil {
			return nil, err
		}
		return f.GetChatAdministrators(ctx, in)
	},
	CommandAnswerCallbackQuery: func(ctx context.Context, f Facade, a Args) (interface{}, error) {
		var in AnswerCallbackQueryArgs
		if err := a.bind(CommandAnswerCallbackQuery,
			stringField("callback_query_id", &in.CallbackQueryID),
			stringField("text", &in.Text),
		); err != nil {
			return nil, err
		}
		return f.AnswerCallbackQuery(ctx, in)
	},
}

// Dispatcher сопоставляет имя команды с методом фасада.
type Dispatcher struct {
	facade Facade
}

// NewDispatcher создает диспетчер поверх фасада.
func NewDispatcher(facade Facade) *Dispatcher {
	return &Dispatcher{facade: facade}
}

// Dispatch выполняет команду по имени. Неизвестное имя дает RequestError
// независимо от аргументов; ошибки фасада возвращаются без изменений.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args Args) (interface{}, error) {
	cmd, ok := LookupCommand(name)
	if !ok {
		return nil, RequestError("Unknown command: %s", name)
	}
	if args == nil {
		args = Args{}
	}
	return handlers[cmd](ctx, d.facade, args)
}
