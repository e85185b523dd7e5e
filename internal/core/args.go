package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var errNotInteger = errors.New("not an integer")

// Args хранит объект аргументов из stdin: имя аргумента и сырое JSON-значение.
type Args map[string]json.RawMessage

// ParseArgs разбирает stdin. Всё, что не является JSON-объектом, дает пустой набор:
// тогда точную ошибку выдаст проверка аргументов конкретной команды.
func ParseArgs(data []byte) Args {
	var args Args
	if err := json.Unmarshal(data, &args); err != nil || args == nil {
		return Args{}
	}
	return args
}

// Keys возвращает имена аргументов в отсортированном порядке.
func (a Args) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChatRef хранит chat_id в текстовом виде: число ("-100123") или имя канала ("@news").
type ChatRef string

// IsZero сообщает, что chat_id не задан, пуст или равен нулю.
func (c ChatRef) IsZero() bool {
	s := strings.TrimSpace(string(c))
	return s == "" || s == "0"
}

// Int64 возвращает числовой id, если ChatRef числовой.
func (c ChatRef) Int64() (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(string(c)), 10, 64)
	return id, err == nil
}

func (c ChatRef) String() string { return string(c) }

// SendMessageArgs содержит аргументы send_message.
type SendMessageArgs struct {
	ChatID ChatRef
	Text   string
}

// ReadMessagesArgs содержит аргументы read. ChatID == nil означает чтение без фильтра,
// Timeout == nil означает значение из конфигурации.
type ReadMessagesArgs struct {
	ChatID  *ChatRef
	Offset  int
	Timeout *int
}

// ChatArgs содержит аргументы команд, которым нужен только chat_id.
type ChatArgs struct {
	ChatID ChatRef
}

// EditMessageTextArgs содержит аргументы edit_message_text.
type EditMessageTextArgs struct {
	ChatID    ChatRef
	MessageID int
	Text      string
}

// DeleteMessageArgs содержит аргументы delete_message.
type DeleteMessageArgs struct {
	ChatID    ChatRef
	MessageID int
}

// SendPhotoArgs содержит аргументы send_photo.
type SendPhotoArgs struct {
	ChatID    ChatRef
	PhotoPath string
	Caption   string
}

// SendDocumentArgs содержит аргументы send_document.
type SendDocumentArgs struct {
	ChatID       ChatRef
	DocumentPath string
	Caption      string
}

// AnswerCallbackQueryArgs содержит аргументы answer_callback_query.
type AnswerCallbackQueryArgs struct {
	CallbackQueryID string
	Text            string
}

type field struct {
	name string
	set  func(raw json.RawMessage) error
}

// bind заполняет поля аргументов команды. Незнакомый ключ и значение
// неверного типа дают RequestError; null равносилен отсутствию ключа.
func (a Args) bind(cmd Command, fields ...field) error {
	known := make(map[string]field, len(fields))
	for _, f := range fields {
		known[f.name] = f
	}
	for _, key := range a.Keys() {
		f, ok := known[key]
		if !ok {
			return RequestError("Unexpected argument '%s' for command %s.", key, cmd)
		}
		raw := bytes.TrimSpace(a[key])
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		if err := f.set(raw); err != nil {
			return &Error{
				Kind: KindRequest,
				Msg:  fmt.Sprintf("Invalid value for argument '%s' of command %s.", key, cmd),
				Err:  err,
			}
		}
	}
	return nil
}

func stringField(name string, dst *string) field {
	return field{name: name, set: func(raw json.RawMessage) error {
		return json.Unmarshal(raw, dst)
	}}
}

func intField(name string, dst *int) field {
	return field{name: name, set: func(raw json.RawMessage) error {
		n, err := decodeInt(raw)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}}
}

func optionalIntField(name string, dst **int) field {
	return field{name: name, set: func(raw json.RawMessage) error {
		n, err := decodeInt(raw)
		if err != nil {
			return err
		}
		*dst = &n
		return nil
	}}
}

func chatField(name string, dst *ChatRef) field {
	return field{name: name, set: func(raw json.RawMessage) error {
		if raw[0] == '"' {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			*dst = ChatRef(strings.TrimSpace(s))
			return nil
		}
		var id int64
		if err := json.Unmarshal(raw, &id); err != nil {
			return err
		}
		*dst = ChatRef(strconv.FormatInt(id, 10))
		return nil
	}}
}

func optionalChatField(name string, dst **ChatRef) field {
	return field{name: name, set: func(raw json.RawMessage) error {
		var ref ChatRef
		if err := chatField(name, &ref).set(raw); err != nil {
			return err
		}
		*dst = &ref
		return nil
	}}
}

// decodeInt принимает JSON-число или строку с целым числом.
func decodeInt(raw json.RawMessage) (int, error) {
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("%q: %w", s, errNotInteger)
		}
		return n, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n, nil
}
