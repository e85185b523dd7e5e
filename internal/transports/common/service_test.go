package common

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegrambridge/internal/core"
	"telegrambridge/internal/storage"
)

type stubFacade struct {
	core.Facade
	sent []core.SendMessageArgs
}

func (f *stubFacade) SendMessage(_ context.Context, args core.SendMessageArgs) (core.SendResult, error) {
	f.sent = append(f.sent, args)
	return core.SendResult{Status: "Message successfully sent to chat " + args.ChatID.String() + ".", MessageID: 5}, nil
}

type memorySink struct {
	events []storage.AuditEvent
	err    error
}

func (m *memorySink) Write(_ context.Context, ev storage.AuditEvent) error {
	m.events = append(m.events, ev)
	return m.err
}

func TestExecute_SuccessIsAudited(t *testing.T) {
	facade := &stubFacade{}
	sink := &memorySink{}
	svc := &Service{
		Source:    "cli",
		Connect:   func() (core.Facade, error) { return facade, nil },
		AuditSink: sink,
		Host:      "srv1",
	}

	args := core.ParseArgs([]byte(`{"chat_id":42,"text":"secret text"}`))
	res, err := svc.Execute(context.Background(), "send_message", args)
	require.NoError(t, err)
	assert.Equal(t, core.SendResult{Status: "Message successfully sent to chat 42.", MessageID: 5}, res)
	require.Len(t, facade.sent, 1)

	require.Len(t, sink.events, 1)
	ev := sink.events[0]
	assert.Equal(t, "send_message", ev.Command)
	assert.Equal(t, "42", ev.Target)
	assert.Equal(t, "cli", ev.Source)
	assert.Equal(t, "ok", ev.Status)
	assert.Equal(t, "srv1", ev.Host)
	assert.Empty(t, ev.Error)
	assert.NotEmpty(t, ev.RequestID)
	assert.False(t, ev.TS.IsZero())
	assert.NotContains(t, string(ev.Payload), "secret text")

	var payload struct {
		Command string   `json:"command"`
		Args    []string `json:"args"`
	}
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "send_message", payload.Command)
	assert.Equal(t, []string{"chat_id", "text"}, payload.Args)
}

func TestExecute_AuthErrorPrecedesDispatch(t *testing.T) {
	sink := &memorySink{}
	svc := &Service{
		Source:    "cli",
		Connect:   func() (core.Facade, error) { return nil, core.AuthError("Bot token not found.") },
		AuditSink: sink,
	}

	_, err := svc.Execute(context.Background(), "no_such_command", core.Args{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrAuth))
	assert.Equal(t, "Bot token not found.", err.Error())
	require.Len(t, sink.events, 1)
	assert.Equal(t, "error", sink.events[0].Status)
	assert.Equal(t, "Bot token not found.", sink.events[0].Error)
}

func TestExecute_UnknownCommand(t *testing.T) {
	svc := &Service{Connect: func() (core.Facade, error) { return &stubFacade{}, nil }}

	_, err := svc.Execute(context.Background(), "nope", core.Args{})
	require.Error(t, err)
	assert.Equal(t, "Unknown command: nope", err.Error())
}

func TestExecute_AuditFailureDoesNotChangeResult(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	svc := &Service{
		Connect:   func() (core.Facade, error) { return &stubFacade{}, nil },
		AuditSink: sink,
	}

	res, err := svc.Execute(context.Background(), "send_message", core.ParseArgs([]byte(`{"chat_id":"@news","text":"hi"}`)))
	require.NoError(t, err)
	assert.Equal(t, 5, res.(core.SendResult).MessageID)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "@news", sink.events[0].Target)
}

func TestExecute_WithoutConnector(t *testing.T) {
	svc := &Service{}
	_, err := svc.Execute(context.Background(), "get_me", core.Args{})
	assert.ErrorIs(t, err, errNoConnector)
}

func TestAuditTarget(t *testing.T) {
	cases := map[string]string{
		`{"chat_id":"-100123"}`:        "-100123",
		`{"chat_id":-100123}`:          "-100123",
		`{"chat_id":null}`:             "",
		`{"text":"x"}`:                 "",
		`{"chat_id":{"nested":true}}`: "",
	}
	for in, want := range cases {
		assert.Equal(t, want, auditTarget(core.ParseArgs([]byte(in))), in)
	}
}
