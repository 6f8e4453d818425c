package slack

import (
	"context"
	"fmt"

	"emotion-bot/project/infrastructure/config"

	"github.com/slack-go/slack"
)

// SlackClient は service.SlackPort の Slack SDK 実装です。
// 単一ワークスペースのBotトークンで動作します
type SlackClient struct {
	cli             *slack.Client
	resultChannelID string
}

// NewSlackClient は Slack クライアントを初期化します
func NewSlackClient(cfg *config.Config) *SlackClient {
	return &SlackClient{
		cli:             slack.New(cfg.SlackBotToken),
		resultChannelID: cfg.ResultChannelID,
	}
}

// PostWarning は高スコア検知時の警告を元メッセージのスレッドに投稿します
func (sc *SlackClient) PostWarning(ctx context.Context, channelID, threadTS, userID, text string) error {
	message := fmt.Sprintf(":warning: <@%s> :warning:\n%s", userID, text)

	_, _, err := sc.cli.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("slack: 警告投稿失敗 (channel=%s, ts=%s): %w", channelID, threadTS, err)
	}

	return nil
}

// PostDailyHeader は日次集計のヘッダーを結果チャンネルへ投稿し、
// サマリーのスレッド返信先となるタイムスタンプを返します
func (sc *SlackClient) PostDailyHeader(ctx context.Context, date string) (string, error) {
	message := fmt.Sprintf(":star: :star: *%s* :star: :star:\nCheck out how everyone did yesterday!", date)

	_, ts, err := sc.cli.PostMessageContext(
		ctx,
		sc.resultChannelID,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		return "", fmt.Errorf("slack: 日次ヘッダー投稿失敗 (channel=%s): %w", sc.resultChannelID, err)
	}

	return ts, nil
}

// PostDailySummary はユーザーごとのサマリーをヘッダーのスレッドに投稿します
func (sc *SlackClient) PostDailySummary(ctx context.Context, threadTS, userID, text string) error {
	message := fmt.Sprintf(":heart: <@%s> :heart:\n%s", userID, text)

	_, _, err := sc.cli.PostMessageContext(
		ctx,
		sc.resultChannelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("slack: 日次サマリー投稿失敗 (ts=%s, user=%s): %w", threadTS, userID, err)
	}

	return nil
}
