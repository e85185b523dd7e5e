package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"telegrambridge/internal/config"
	"telegrambridge/internal/core"
	"telegrambridge/internal/modules/host"
	"telegrambridge/internal/modules/telegram"
	"telegrambridge/internal/storage"
	"telegrambridge/internal/storage/sqlite"
	"telegrambridge/internal/transports/common"
)

// App агрегирует зависимости одного вызова моста.
type App struct {
	Config config.Config
	Logger *slog.Logger
	Store  storage.Store
	host   string

	// NewFacade подменяется в тестах; по умолчанию строит telegram.Client.
	NewFacade func(token string, opts telegram.Options) (core.Facade, error)
}

// NewApp строит приложение: журнал аудита открывается только при audit.enabled.
func NewApp(ctx context.Context, cfg config.Config, lg *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: lg, NewFacade: newTelegramFacade}
	if cfg.Audit.Enabled {
		st, err := sqlite.Open(cfg.Audit.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open audit storage: %w", err)
		}
		a.Store = st
		a.host = host.Name(ctx)
	}
	return a, nil
}

func newTelegramFacade(token string, opts telegram.Options) (core.Facade, error) {
	c, err := telegram.New(token, opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ClientOptions переводит конфигурацию в параметры фасада.
func (a *App) ClientOptions() telegram.Options {
	tg := a.Config.Telegram
	return telegram.Options{
		APIEndpoint:        tg.APIEndpoint,
		RequestTimeout:     time.Duration(tg.RequestTimeoutMS) * time.Millisecond,
		DefaultPollTimeout: tg.DefaultPollTimeoutS,
		PollLimit:          tg.PollLimit,
		Logger:             a.Logger,
	}
}

// Run выполняет команду с данным токеном и аргументами.
func (a *App) Run(ctx context.Context, command, token string, args core.Args) (interface{}, error) {
	svc := &common.Service{
		Source: "cli",
		Connect: func() (core.Facade, error) {
			return a.NewFacade(token, a.ClientOptions())
		},
		Host:   a.host,
		Logger: a.Logger,
	}
	if a.Store != nil {
		if sink, ok := a.Store.(common.AuditSink); ok {
			svc.AuditSink = sink
		}
	}
	return svc.Execute(ctx, command, args)
}

// Close высвобождает ресурсы приложения.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
