package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const testToken = "123456:TEST-token"

type fakeAPI struct {
	calls map[string]int
	sent  []tgbotapi.Chattable

	sendMsg  tgbotapi.Message
	updates  []tgbotapi.Update
	me       tgbotapi.User
	chat     tgbotapi.Chat
	admins   []tgbotapi.ChatMember
	err      error
	onSend   func(c tgbotapi.Chattable)
	updCfg   tgbotapi.UpdateConfig
	chatCfg  tgbotapi.ChatConfig
	requests []tgbotapi.Chattable
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.calls["send"]++
	f.sent = append(f.sent, c)
	if f.onSend != nil {
		f.onSend(c)
	}
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	return f.sendMsg, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.calls["request"]++
	f.requests = append(f.requests, c)
	if f.err != nil {
		return nil, f.err
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	f.calls["get_updates"]++
	f.updCfg = config
	if f.err != nil {
		return nil, f.err
	}
	return f.updates, nil
}

func (f *fakeAPI) GetMe() (tgbotapi.User, error) {
	f.calls["get_me"]++
	if f.err != nil {
		return tgbotapi.User{}, f.err
	}
	return f.me, nil
}

func (f *fakeAPI) GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error) {
	f.calls["get_chat"]++
	f.chatCfg = config.ChatConfig
	if f.err != nil {
		return tgbotapi.Chat{}, f.err
	}
	return f.chat, nil
}

func (f *fakeAPI) GetChatAdministrators(config tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error) {
	f.calls["get_chat_administrators"]++
	f.chatCfg = config.ChatConfig
	if f.err != nil {
		return nil, f.err
	}
	return f.admins, nil
}
