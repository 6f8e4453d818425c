package store

import (
	"context"
	"fmt"

	"emotion-bot/project/domain"
	"emotion-bot/project/infrastructure/config"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// pageSize は日付クエリの1ページあたりの最大件数です
const pageSize = 100

// isNotFound は Firestore の NotFound エラーを判定するヘルパー関数です
func isNotFound(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.NotFound
}

// FirestoreRepo は domain.EmotionRepository の Firestore 実装です
type FirestoreRepo struct {
	cli         *firestore.Client
	emotionsCol string
}

// NewFirestoreRepo は Firestore リポジトリを初期化します
func NewFirestoreRepo(ctx context.Context, cfg *config.Config) (*FirestoreRepo, error) {
	client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID)
	if err != nil {
		return nil, fmt.Errorf("firestore: クライアント初期化失敗: %w", err)
	}

	return &FirestoreRepo{
		cli:         client,
		emotionsCol: cfg.CollectionEmotions,
	}, nil
}

// Save は感情レコードを保存します（同一イベントIDは上書き）
func (repo *FirestoreRepo) Save(ctx context.Context, entry *domain.EmotionEntry) error {
	docRef := repo.cli.Collection(repo.emotionsCol).Doc(entry.EventID)

	// Firestore保存用のマップ
	data := map[string]interface{}{
		"event_id":     entry.EventID,
		"user_id":      entry.UserID,
		"timestamp":    entry.Timestamp,
		"date":         entry.Date,
		"month":        entry.Month,
		"channel_id":   entry.ChannelID,
		"channel_type": entry.ChannelType,
		"text":         entry.Text,
		"scores": map[string]interface{}{
			"anger":    entry.Scores.Anger,
			"contempt": entry.Scores.Contempt,
			"disgust":  entry.Scores.Disgust,
			"fear":     entry.Scores.Fear,
			"joy":      entry.Scores.Joy,
			"sad":      entry.Scores.Sad,
			"surprise": entry.Scores.Surprise,
		},
	}

	if _, err := docRef.Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore: 感情レコード保存失敗 (docID=%s): %w", entry.EventID, err)
	}

	return nil
}

// QueryByDate は指定日付のレコードを timestamp 昇順で1ページ分取得します。
// 同時刻のレコードはイベントIDで安定ソートします
func (repo *FirestoreRepo) QueryByDate(ctx context.Context, date string, cursor *domain.PageCursor) ([]domain.EmotionEntry, *domain.PageCursor, error) {
	query := repo.cli.Collection(repo.emotionsCol).
		Where("date", "==", date).
		OrderBy("timestamp", firestore.Asc).
		OrderBy("event_id", firestore.Asc).
		Limit(pageSize)

	if cursor != nil {
		query = query.StartAfter(cursor.Timestamp, cursor.EventID)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var entries []domain.EmotionEntry
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if isNotFound(err) {
				return nil, nil, fmt.Errorf("firestore: クエリ対象が存在しません (date=%s): %w", date, domain.ErrNotFound)
			}
			return nil, nil, fmt.Errorf("firestore: 日付クエリ失敗 (date=%s): %w", date, err)
		}

		// Firestore ドキュメントから domain.EmotionEntry へ写経
		var entry domain.EmotionEntry
		if err := snapshot.DataTo(&entry); err != nil {
			return nil, nil, fmt.Errorf("firestore: 感情レコード構造体変換失敗 (docID=%s): %w", snapshot.Ref.ID, err)
		}
		entries = append(entries, entry)
	}

	// ページが満杯の場合のみ継続カーソルを返す
	var next *domain.PageCursor
	if len(entries) == pageSize {
		last := entries[len(entries)-1]
		next = &domain.PageCursor{Timestamp: last.Timestamp, EventID: last.EventID}
	}

	return entries, next, nil
}

// Close は Firestore クライアントを閉じます
func (repo *FirestoreRepo) Close() error {
	if repo.cli != nil {
		return repo.cli.Close()
	}
	return nil
}
