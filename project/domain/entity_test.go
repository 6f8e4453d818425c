package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func validMessageEvent() MessageEvent {
	return MessageEvent{
		EventID:     "Ev12345",
		UserID:      "U1",
		Timestamp:   1728783000,
		ChannelID:   "C1",
		ChannelType: ChannelTypeChannel,
		EventTS:     "1728783000.000100",
		Text:        "おはようございます",
	}
}

func TestMessageEventValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*MessageEvent)
		ok     bool
	}{
		{"通常メッセージは有効", func(e *MessageEvent) {}, true},
		{"DMメッセージは有効", func(e *MessageEvent) { e.ChannelType = ChannelTypeDirect }, true},
		{"EventID必須", func(e *MessageEvent) { e.EventID = "" }, false},
		{"UserID必須", func(e *MessageEvent) { e.UserID = "" }, false},
		{"Timestamp必須", func(e *MessageEvent) { e.Timestamp = 0 }, false},
		{"Bot投稿は除外", func(e *MessageEvent) { e.BotID = "B123" }, false},
		{"botサブタイプは除外", func(e *MessageEvent) { e.SubType = "bot_message" }, false},
		{"channelサブタイプは除外", func(e *MessageEvent) { e.SubType = "channel_join" }, false},
		{"notificationサブタイプは除外", func(e *MessageEvent) { e.SubType = "app_notification" }, false},
		{"その他サブタイプは許可", func(e *MessageEvent) { e.SubType = "file_share" }, true},
		{"空テキストは除外", func(e *MessageEvent) { e.Text = "" }, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ev := validMessageEvent()
			tc.mutate(&ev)
			err := ev.Validate()
			if tc.ok && err != nil {
				t.Fatalf("想定外のエラー: %v", err)
			}
			if !tc.ok {
				if !errors.Is(err, ErrInvalid) {
					t.Fatalf("ErrInvalid を期待: %v", err)
				}
			}
		})
	}
}

func TestScoreLineRoundTrip(t *testing.T) {
	t.Parallel()

	in := EmotionScores{
		Anger:    0.51,
		Contempt: 0.0,
		Disgust:  0.125,
		Fear:     0.1,
		Joy:      0.6,
		Sad:      0.1,
		Surprise: 1.0,
	}

	line, err := in.ScoreLine()
	if err != nil {
		t.Fatalf("ScoreLine: %v", err)
	}

	var out EmotionScores
	if err := json.Unmarshal([]byte(line), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("往復後に値が変化: in=%+v out=%+v", in, out)
	}
}

func TestNewEmotionEntry(t *testing.T) {
	t.Parallel()

	ev := validMessageEvent()
	scores := EmotionScores{Anger: 0.9}

	entry, err := NewEmotionEntry(&ev, scores)
	if err != nil {
		t.Fatalf("NewEmotionEntry: %v", err)
	}
	if entry.EventID != ev.EventID {
		t.Fatalf("EventID=%q", entry.EventID)
	}
	if entry.Date == "" || entry.Month == "" {
		t.Fatalf("date/month未導出: %+v", entry)
	}
	wantDate, wantMonth := DateMonth(ev.Timestamp)
	if entry.Date != wantDate || entry.Month != wantMonth {
		t.Fatalf("date=%q month=%q", entry.Date, entry.Month)
	}
	if entry.Scores != scores {
		t.Fatalf("scores=%+v", entry.Scores)
	}
}

func TestNewEmotionEntry_InvalidEvent(t *testing.T) {
	t.Parallel()

	ev := validMessageEvent()
	ev.Text = ""
	if _, err := NewEmotionEntry(&ev, EmotionScores{}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("ErrInvalid を期待: %v", err)
	}
}
