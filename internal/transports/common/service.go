package common

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"telegrambridge/internal/core"
	"telegrambridge/internal/storage"
)

var errNoConnector = errors.New("service has no facade connector")

// Service объединяет общий пайплайн connect->dispatch->audit.
type Service struct {
	Source    string
	Connect   func() (core.Facade, error)
	AuditSink AuditSink
	Host      string
	Logger    *slog.Logger
}

// Execute выполняет одну команду моста. Фасад создается до разбора команды,
// поэтому ошибка авторизации всегда опережает ошибку неизвестной команды.
func (s *Service) Execute(ctx context.Context, command string, args core.Args) (interface{}, error) {
	start := time.Now()
	res, err := s.execute(ctx, command, args)
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.logger().Debug("command finished",
		slog.String("command", command),
		slog.String("status", status),
		slog.Duration("took", time.Since(start)),
	)
	s.writeAudit(ctx, command, args, status, err)
	return res, err
}

func (s *Service) execute(ctx context.Context, command string, args core.Args) (interface{}, error) {
	if s.Connect == nil {
		return nil, errNoConnector
	}
	facade, err := s.Connect()
	if err != nil {
		return nil, err
	}
	return core.NewDispatcher(facade).Dispatch(ctx, command, args)
}

func (s *Service) writeAudit(ctx context.Context, command string, args core.Args, status string, cause error) {
	if s.AuditSink == nil {
		return
	}
	ev := storage.AuditEvent{
		Command:   command,
		Target:    auditTarget(args),
		Source:    s.Source,
		Status:    status,
		RequestID: newRequestID(),
		Host:      s.Host,
		Payload:   buildAuditPayload(command, args),
		TS:        time.Now().UTC(),
	}
	if cause != nil {
		ev.Error = cause.Error()
	}
	if err := s.AuditSink.Write(ctx, ev); err != nil {
		s.logger().Warn("audit write failed", slog.String("command", command), slog.Any("err", err))
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
