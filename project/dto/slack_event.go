package dto

import "emotion-bot/project/domain"

// Slack Events API のタイプ定数
const (
	URLVerificationType = "url_verification"
	EventCallbackType   = "event_callback"
	MessageEventType    = "message"
)

// SlackEventRequest は Slack Events API のリクエスト全体を表します。
// url_verification とメッセージイベントの両方をこの形で受けます
type SlackEventRequest struct {
	Token     string            `json:"token"`
	APIAppID  string            `json:"api_app_id,omitempty"`
	Type      string            `json:"type"` // "event_callback", "url_verification"
	Challenge string            `json:"challenge,omitempty"`
	EventID   string            `json:"event_id,omitempty"`
	EventTime int64             `json:"event_time,omitempty"`
	Event     SlackMessageEvent `json:"event,omitempty"`
}

// SlackMessageEvent はメッセージイベント本体です
type SlackMessageEvent struct {
	Type        string `json:"type"`         // "message"
	Channel     string `json:"channel"`      // チャンネルID
	ChannelType string `json:"channel_type"` // "channel", "im"
	User        string `json:"user"`         // 送信者のユーザーID
	Text        string `json:"text"`         // メッセージ本文
	EventTS     string `json:"event_ts"`     // メッセージのタイムスタンプ
	SubType     string `json:"subtype,omitempty"`
	BotID       string `json:"bot_id,omitempty"`
}

// ChallengeResponse は url_verification への応答ボディです
type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}

// ToDomain はリクエストをドメインのメッセージイベントへ変換します
func (r SlackEventRequest) ToDomain() *domain.MessageEvent {
	return &domain.MessageEvent{
		EventID:     r.EventID,
		UserID:      r.Event.User,
		Timestamp:   r.EventTime,
		ChannelID:   r.Event.Channel,
		ChannelType: r.Event.ChannelType,
		EventTS:     r.Event.EventTS,
		Text:        r.Event.Text,
		SubType:     r.Event.SubType,
		BotID:       r.Event.BotID,
	}
}
