package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegrambridge/internal/storage"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "audit", "bridge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// readAll возвращает записи журнала в порядке вставки.
func readAll(t *testing.T, st *Store) []storage.AuditEvent {
	t.Helper()
	rows, err := st.db.Query(`SELECT command, target, source, status, error, request_id, host, payload, ts FROM invocations ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var events []storage.AuditEvent
	for rows.Next() {
		var ev storage.AuditEvent
		require.NoError(t, rows.Scan(&ev.Command, &ev.Target, &ev.Source, &ev.Status, &ev.Error, &ev.RequestID, &ev.Host, &ev.Payload, &ev.TS))
		events = append(events, ev)
	}
	require.NoError(t, rows.Err())
	return events
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}

func TestSaveAudit(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.SaveAudit(ctx, storage.AuditEvent{
		Command: "send_message", Target: "42", Source: "cli", Status: "ok",
		RequestID: "r1", Host: "srv1", Payload: []byte(`{"args":["chat_id","text"]}`), TS: base,
	}))
	require.NoError(t, st.Write(ctx, storage.AuditEvent{
		Command: "get_me", Source: "cli", Status: "error", Error: "Bot token not found.",
		RequestID: "r2",
	}))

	events := readAll(t, st)
	require.Len(t, events, 2)
	assert.Equal(t, "send_message", events[0].Command)
	assert.Equal(t, "42", events[0].Target)
	assert.Equal(t, "srv1", events[0].Host)
	assert.JSONEq(t, `{"args":["chat_id","text"]}`, string(events[0].Payload))
	assert.True(t, events[0].TS.Equal(base))

	assert.Equal(t, "get_me", events[1].Command)
	assert.Equal(t, "Bot token not found.", events[1].Error)
	assert.False(t, events[1].TS.IsZero(), "zero timestamp is replaced with now")
}

func TestOpen_ReusesExistingSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.SaveAudit(context.Background(), storage.AuditEvent{Command: "get_me", Status: "ok"}))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	assert.Len(t, readAll(t, st), 1)
}
