package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegrambridge/internal/core"
)

const (
	msgTokenNotFound = "Bot token not found."
	redacted         = "<redacted>"
)

// API описывает подмножество *tgbotapi.BotAPI, которым пользуется фасад.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	GetMe() (tgbotapi.User, error)
	GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error)
	GetChatAdministrators(config tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error)
}

// Options задает параметры соединения и long-poll.
type Options struct {
	// APIEndpoint задается printf-шаблоном вида "https://api.telegram.org/bot%s/%s".
	APIEndpoint        string
	// RequestTimeout ограничивает обычный запрос; для getUpdates к нему добавляется timeout poll.
	RequestTimeout     time.Duration
	DefaultPollTimeout int
	PollLimit          int
	Logger             *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.APIEndpoint == "" {
		o.APIEndpoint = tgbotapi.APIEndpoint
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	if o.DefaultPollTimeout < 0 {
		o.DefaultPollTimeout = 0
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return o
}

// Client реализует фасад Bot API: по методу на команду, локальная проверка
// аргументов и приведение ошибок к core.Error.
type Client struct {
	token string
	api   API
	http  *http.Client
	opts  Options
	log   *slog.Logger
}

var _ core.Facade = (*Client)(nil)

// New создает клиента с настоящим SDK. Сеть не трогается: стандартный
// конструктор SDK вызвал бы getMe, поэтому handle собирается вручную.
func New(token string, opts Options) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, core.AuthError(msgTokenNotFound)
	}
	opts = opts.withDefaults()
	httpClient := &http.Client{Timeout: opts.RequestTimeout}
	bot := &tgbotapi.BotAPI{
		Token:  token,
		Buffer: 100,
		Client: httpClient,
	}
	bot.SetAPIEndpoint(opts.APIEndpoint)
	c, err := NewWithAPI(token, bot, opts)
	if err != nil {
		return nil, err
	}
	c.http = httpClient
	return c, nil
}

// NewWithAPI создает клиента поверх готового handle (в тестах fake).
func NewWithAPI(token string, api API, opts Options) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, core.AuthError(msgTokenNotFound)
	}
	opts = opts.withDefaults()
	return &Client{
		token: token,
		api:   api,
		opts:  opts,
		log:   opts.Logger,
	}, nil
}

// call выполняет ровно один удаленный вызов; любая ошибка SDK
// превращается в RequestError с префиксом операции.
func (c *Client) call(ctx context.Context, op string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return c.wrap(err, op)
	}
	start := time.Now()
	err := fn()
	if err != nil {
		wrapped := c.wrap(err, op)
		c.log.Debug("bot api call failed", "op", op, "duration", time.Since(start), "err", wrapped.Error())
		return wrapped
	}
	c.log.Debug("bot api call", "op", op, "duration", time.Since(start))
	return nil
}

// pollDeadline растягивает HTTP-таймаут на время long-poll запроса.
func (c *Client) pollDeadline(pollTimeout int) {
	if c.http == nil {
		return
	}
	c.http.Timeout = c.opts.RequestTimeout + time.Duration(pollTimeout)*time.Second
}

// wrap вырезает токен: ошибки транспорта содержат URL вида .../bot<token>/method.
func (c *Client) wrap(err error, op string) error {
	msg := err.Error()
	if c.token != "" {
		msg = strings.ReplaceAll(msg, c.token, redacted)
	}
	return &core.Error{Kind: core.KindRequest, Msg: op + ": " + msg, Err: err}
}

// chatTarget раскладывает chat_id на числовой id или имя канала для SDK.
func chatTarget(ref core.ChatRef) (int64, string) {
	if id, ok := ref.Int64(); ok {
		return id, ""
	}
	return 0, strings.TrimSpace(ref.String())
}

func chatConfig(ref core.ChatRef) tgbotapi.ChatConfig {
	id, username := chatTarget(ref)
	return tgbotapi.ChatConfig{ChatID: id, SuperGroupUsername: username}
}

// marshalProfile сохраняет объект Bot API как есть, без HTML-экранирования.
func marshalProfile(v interface{}, op string) (core.Profile, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, core.WrapRequest(err, op)
	}
	return core.Profile(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func formatChatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
