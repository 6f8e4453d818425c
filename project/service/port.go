package service

import (
	"context"

	"emotion-bot/project/domain"
	"emotion-bot/project/dto"
)

// SlackPort は Slack API 呼び出しのポートです
type SlackPort interface {
	// PostWarning は発言のスレッドに警告メッセージを投稿します
	// threadTS は対象メッセージ自身のタイムスタンプです
	PostWarning(ctx context.Context, channelID, threadTS, userID, text string) error

	// PostDailyHeader は集計結果チャンネルにその日のヘッダーを投稿し、
	// スレッドの起点となるタイムスタンプを返します
	PostDailyHeader(ctx context.Context, date string) (string, error)

	// PostDailySummary はヘッダーのスレッドにユーザー宛のサマリーを投稿します
	PostDailySummary(ctx context.Context, threadTS, userID, text string) error
}

// TaskPort はスコアリングジョブのキュー投入のポートです
type TaskPort interface {
	// EnqueueScoreBatch はスコアリングバッチをキューに登録します
	EnqueueScoreBatch(ctx context.Context, payload *dto.ScoreBatchPayload) error
}

// ExtractorPort はLLMによる構造化抽出のポートです
type ExtractorPort interface {
	// ScoreEmotion はテキストの感情スコアを抽出します
	ScoreEmotion(ctx context.Context, text string) (domain.EmotionScores, error)

	// AdviseDaily は1日分のスコア列（送信時刻昇順）からアドバイスを生成します
	AdviseDaily(ctx context.Context, scores []domain.EmotionScores) (domain.DailyAdvice, error)
}

// ObjectStorePort はオブジェクトストレージ操作のポートです
type ObjectStorePort interface {
	// ListObjects は指定プレフィックス配下のオブジェクトキーを列挙します
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)

	// CopyObject は同一バケット内でオブジェクトをコピーします
	CopyObject(ctx context.Context, bucket, srcKey, dstKey string) error

	// DeleteObjects は指定キーのオブジェクトを削除します
	DeleteObjects(ctx context.Context, bucket string, keys []string) error
}

// ExportPort はイベントストアの一括エクスポート起動のポートです
type ExportPort interface {
	// StartExport は感情コレクションのバケットへのエクスポートを開始します。
	// 完了を待たずに返ります（完了はストレージ通知で検知します）
	StartExport(ctx context.Context) error
}
