package storage

import (
	"context"
	"time"
)

// AuditEvent фиксирует один вызов моста.
type AuditEvent struct {
	Command   string
	Target    string
	Source    string
	Status    string
	Error     string
	RequestID string
	Host      string
	Payload   []byte
	TS        time.Time
}

// Store описывает журнал аудита. Мост только пишет в него.
type Store interface {
	SaveAudit(ctx context.Context, ev AuditEvent) error
	Close() error
}
