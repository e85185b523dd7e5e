package core

import (
	"context"
	"encoding/json"
)

// StatusResult описывает ответ операций без возвращаемой сущности.
type StatusResult struct {
	Status string `json:"status"`
}

// SendResult описывает ответ операций, создающих сообщение.
type SendResult struct {
	Status    string `json:"status"`
	MessageID int    `json:"message_id"`
}

// InboundMessage хранит текстовое сообщение, полученное через read.
type InboundMessage struct {
	UpdateID int    `json:"update_id"`
	ChatID   int64  `json:"chat_id"`
	Text     string `json:"text"`
}

// ReadResult содержит результат одного long-poll запроса.
type ReadResult struct {
	Messages []InboundMessage `json:"messages"`
	Offset   int              `json:"offset"`
}

// Profile хранит объект профиля (бот, чат, участник) в JSON-представлении Bot API.
type Profile = json.RawMessage

// AdministratorsResult содержит список администраторов чата.
type AdministratorsResult struct {
	Administrators []Profile `json:"administrators"`
}

// Facade определяет контракт удаленного клиента: по методу на команду.
type Facade interface {
	SendMessage(ctx context.Context, args SendMessageArgs) (SendResult, error)
	ReadMessages(ctx context.Context, args ReadMessagesArgs) (ReadResult, error)
	GetMe(ctx context.Context) (Profile, error)
	GetChat(ctx context.Context, args ChatArgs) (Profile, error)
	EditMessageText(ctx context.Context, args EditMessageTextArgs) (StatusResult, error)
	DeleteMessage(ctx context.Context, args DeleteMessageArgs) (StatusResult, error)
	SendPhoto(ctx context.Context, args SendPhotoArgs) (SendResult, error)
	SendDocument(ctx context.Context, args SendDocumentArgs) (SendResult, error)
	GetChatAdministrators(ctx context.Context, args ChatArgs) (AdministratorsResult, error)
	AnswerCallbackQuery(ctx context.Context, args AnswerCallbackQueryArgs) (StatusResult, error)
}
