package core

import (
	"errors"
	"fmt"
)

// Kind различает виды ошибок, видимых вызывающему процессу.
type Kind int

const (
	// KindAuth: токен отсутствует или пуст.
	KindAuth Kind = iota + 1
	// KindRequest: неверные аргументы, неизвестная команда, локальный файл, ошибка API.
	KindRequest
)

var (
	// ErrAuth позволяет проверять ошибки авторизации через errors.Is.
	ErrAuth = errors.New("auth error")
	// ErrRequest позволяет проверять ошибки запроса через errors.Is.
	ErrRequest = errors.New("request error")
)

// Error описывает общий тип ошибок моста. Msg уходит в stderr как есть.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Is сопоставляет ошибку с ErrAuth/ErrRequest по виду.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrAuth:
		return e.Kind == KindAuth
	case ErrRequest:
		return e.Kind == KindRequest
	default:
		return false
	}
}

// AuthError создает ошибку авторизации.
func AuthError(msg string) error {
	return &Error{Kind: KindAuth, Msg: msg}
}

// RequestError создает ошибку запроса с форматированным сообщением.
func RequestError(format string, args ...interface{}) error {
	return &Error{Kind: KindRequest, Msg: fmt.Sprintf(format, args...)}
}

// WrapRequest оборачивает причину: "<prefix>: <cause>".
func WrapRequest(cause error, prefix string) error {
	return &Error{Kind: KindRequest, Msg: fmt.Sprintf("%s: %v", prefix, cause), Err: cause}
}
