package common

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"telegrambridge/internal/core"
	"telegrambridge/internal/storage"
)

// AuditSink записывает аудиторные события.
type AuditSink interface {
	Write(ctx context.Context, ev storage.AuditEvent) error
}

func newRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// buildAuditPayload сохраняет только имена аргументов: тексты сообщений в журнал не попадают.
func buildAuditPayload(command string, args core.Args) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"command": command,
		"args":    args.Keys(),
	})
	return payload
}

// auditTarget извлекает chat_id, если он передан строкой или числом.
func auditTarget(args core.Args) string {
	raw, ok := args["chat_id"]
	if !ok {
		return ""
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
