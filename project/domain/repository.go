package domain

import (
	"context"
)

// PageCursor は日付インデックス検索の継続トークンです。
// timestamp 昇順・同時刻はイベントIDで安定ソートした位置を指します
type PageCursor struct {
	Timestamp int64
	EventID   string
}

// EmotionRepository は感情レコードの永続化を担当します
type EmotionRepository interface {
	// Save はレコードをイベントIDをキーとして保存します。
	// 同一イベントIDの既存レコードがある場合は上書きします（再配送に対して安全）
	// バリデーションエラー時は domain.ErrInvalid を返します
	Save(ctx context.Context, entry *EmotionEntry) error

	// QueryByDate は指定日付のレコードを1ページ分取得します。
	// cursor が nil の場合は先頭から取得します。
	// 続きがある場合は次ページのカーソルを返し、最終ページでは nil を返します
	QueryByDate(ctx context.Context, date string, cursor *PageCursor) ([]EmotionEntry, *PageCursor, error)
}
