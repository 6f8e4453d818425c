package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// チャンネル種別（Slackのchannel_type）
const (
	ChannelTypeChannel = "channel"
	ChannelTypeDirect  = "im"
)

// EmotionScores は1つのメッセージに対する7種類の感情スコアです。
// 各スコアは 0.0〜1.0 を想定しますが、抽出層では範囲を強制しません。
// 一度生成された後は変更されません
type EmotionScores struct {
	Anger    float64 `json:"anger" firestore:"anger" jsonschema:"description=Score for anger, ranging from 0.0 to 1.0."`
	Contempt float64 `json:"contempt" firestore:"contempt" jsonschema:"description=Score for contempt, ranging from 0.0 to 1.0."`
	Disgust  float64 `json:"disgust" firestore:"disgust" jsonschema:"description=Score for disgust, ranging from 0.0 to 1.0."`
	Fear     float64 `json:"fear" firestore:"fear" jsonschema:"description=Score for fear, ranging from 0.0 to 1.0."`
	Joy      float64 `json:"joy" firestore:"joy" jsonschema:"description=Score for joy, ranging from 0.0 to 1.0."`
	Sad      float64 `json:"sad" firestore:"sad" jsonschema:"description=Score for sad, ranging from 0.0 to 1.0."`
	Surprise float64 `json:"surprise" firestore:"surprise" jsonschema:"description=Score for surprise, ranging from 0.0 to 1.0."`
}

// ScoreLine はアドバイス生成プロンプト用に1行のJSON文字列へ変換します
func (s EmotionScores) ScoreLine() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("domain: スコアのJSON化失敗: %w", err)
	}
	return string(b), nil
}

// DailyAdvice は1ユーザー・1日分のAIアドバイスです。
// 集計実行ごとに生成され、永続化はされません
type DailyAdvice struct {
	Advice string `json:"advice" jsonschema:"description=The one sentence advice."`
	Song   string `json:"song" jsonschema:"description=The name of the song."`
}

// MessageEvent はチャットプラットフォームから受信したメッセージイベントです
type MessageEvent struct {
	// EventID は外部イベントID（永続化キー）
	EventID string

	// UserID は送信者のSlackユーザーID
	UserID string

	// Timestamp はイベント発生時刻（Unix秒）
	Timestamp int64

	// ChannelID はメッセージが投稿されたチャンネルのID
	ChannelID string

	// ChannelType は "channel" または "im"
	ChannelType string

	// EventTS はメッセージ自身のタイムスタンプ（アラートのスレッド返信先）
	EventTS string

	// Text はメッセージ本文
	Text string

	// SubType はメッセージのサブタイプ（通常メッセージでは空）
	SubType string

	// BotID はBot投稿の場合のみ設定されます
	BotID string
}

// Validate は取り込みポリシーを検証します。
// Bot投稿・対象外サブタイプ・空テキストは ErrInvalid を返します
func (e MessageEvent) Validate() error {
	if strings.TrimSpace(e.EventID) == "" {
		return fmt.Errorf("%w: EventIDは必須項目です", ErrInvalid)
	}
	if strings.TrimSpace(e.UserID) == "" {
		return fmt.Errorf("%w: UserIDは必須項目です", ErrInvalid)
	}
	if e.Timestamp <= 0 {
		return fmt.Errorf("%w: Timestampは0より大きい必要があります", ErrInvalid)
	}
	if e.BotID != "" {
		return fmt.Errorf("%w: Botメッセージは対象外です", ErrInvalid)
	}
	if e.SubType != "" {
		if strings.Contains(e.SubType, "bot") ||
			strings.Contains(e.SubType, "channel") ||
			strings.Contains(e.SubType, "notification") {
			return fmt.Errorf("%w: 対象外サブタイプです (subtype=%s)", ErrInvalid, e.SubType)
		}
	}
	if e.Text == "" {
		return fmt.Errorf("%w: テキストが空です", ErrInvalid)
	}
	return nil
}

// EmotionEntry はイベントストアに永続化される1件のレコードです。
// MessageEvent に感情スコアと派生日付を付与したもので、作成後は更新・削除されません
type EmotionEntry struct {
	EventID     string        `firestore:"event_id"`
	UserID      string        `firestore:"user_id"`
	Timestamp   int64         `firestore:"timestamp"`
	Date        string        `firestore:"date"`
	Month       string        `firestore:"month"`
	ChannelID   string        `firestore:"channel_id"`
	ChannelType string        `firestore:"channel_type"`
	Text        string        `firestore:"text"`
	Scores      EmotionScores `firestore:"scores"`
}

// NewEmotionEntry はメッセージイベントとスコアからレコードを作成します。
// date/month はイベント時刻からJST固定オフセットで導出されます
func NewEmotionEntry(ev *MessageEvent, scores EmotionScores) (*EmotionEntry, error) {
	if err := ev.Validate(); err != nil {
		return nil, fmt.Errorf("domain: レコード作成検証失敗: %w", err)
	}
	date, month := DateMonth(ev.Timestamp)
	return &EmotionEntry{
		EventID:     ev.EventID,
		UserID:      ev.UserID,
		Timestamp:   ev.Timestamp,
		Date:        date,
		Month:       month,
		ChannelID:   ev.ChannelID,
		ChannelType: ev.ChannelType,
		Text:        ev.Text,
		Scores:      scores,
	}, nil
}
