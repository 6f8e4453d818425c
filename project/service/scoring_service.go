package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"emotion-bot/project/domain"
	"emotion-bot/project/dto"
	"emotion-bot/project/infrastructure/config"
)

// 閾値超過時にスレッドへ投稿する警告文（感情ごとに独立）
const (
	angerWarning    = "Your anger level seems high. Take a deep breath and step away from the keyboard for a moment."
	disgustWarning  = "Your disgust level seems high. A short break might help you reset."
	contemptWarning = "Your contempt level seems high. Try rephrasing before you hit send."
)

// ScoringService はキューから届いたメッセージの感情スコアリングを管理するサービスです
type ScoringService interface {
	// ProcessBatch はバッチ内の各レコードを順に処理します。
	// 不正なレコードと抽出失敗はそのレコードのみスキップし、
	// 永続化・投稿の失敗は呼び出し全体を中断します
	ProcessBatch(ctx context.Context, batch *dto.ScoreBatchPayload) error
}

// scoringService は ScoringService の実装です
type scoringService struct {
	cfg  *config.Config
	repo domain.EmotionRepository
	sp   SlackPort
	ep   ExtractorPort
}

// NewScoringService は ScoringService のインスタンスを作成します
func NewScoringService(
	cfg *config.Config,
	repo domain.EmotionRepository,
	sp SlackPort,
	ep ExtractorPort,
) ScoringService {
	return &scoringService{
		cfg:  cfg,
		repo: repo,
		sp:   sp,
		ep:   ep,
	}
}

// ProcessBatch はバッチを順番に処理します（並列化しません）
func (ss *scoringService) ProcessBatch(ctx context.Context, batch *dto.ScoreBatchPayload) error {
	for _, record := range batch.Records {
		if err := ss.processRecord(ctx, &record); err != nil {
			if errors.Is(err, domain.ErrInvalid) || errors.Is(err, domain.ErrExtractionFailed) {
				// このレコードだけスキップして残りを処理する
				log.Printf("ProcessBatch: レコードをスキップ: %v", err)
				continue
			}
			return fmt.Errorf("ProcessBatch: レコード処理失敗: %w", err)
		}
	}
	return nil
}

// processRecord は1件のレコードを検証・スコアリング・永続化し、警告を投稿します
func (ss *scoringService) processRecord(ctx context.Context, record *dto.ScoreRecordPayload) error {
	// 送信元キューの照合（防御的チェック）
	if record.Source != ss.cfg.TasksQueueScore {
		return fmt.Errorf("%w: 送信元キューが一致しません (source=%s)", domain.ErrInvalid, record.Source)
	}

	ev := record.Body.ToDomain()
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("processRecord: イベント検証失敗: %w", err)
	}

	// 感情スコア抽出（失敗はこのレコードのみ中断）
	scores, err := ss.ep.ScoreEmotion(ctx, ev.Text)
	if err != nil {
		return fmt.Errorf("processRecord: 感情スコア抽出失敗 (event_id=%s): %w", ev.EventID, err)
	}

	// イベントIDをキーとした上書き保存（再配送に対して安全）
	entry, err := domain.NewEmotionEntry(ev, scores)
	if err != nil {
		return fmt.Errorf("processRecord: レコード作成失敗: %w", err)
	}
	if err := ss.repo.Save(ctx, entry); err != nil {
		return fmt.Errorf("processRecord: レコード保存失敗 (event_id=%s): %w", ev.EventID, err)
	}

	// 3つの閾値判定は互いに独立（複数超過なら複数投稿）
	threshold := ss.cfg.WarningThreshold
	if scores.Anger > threshold {
		if err := ss.sp.PostWarning(ctx, ev.ChannelID, ev.EventTS, ev.UserID, angerWarning); err != nil {
			return fmt.Errorf("processRecord: anger警告投稿失敗: %w", err)
		}
	}
	if scores.Disgust > threshold {
		if err := ss.sp.PostWarning(ctx, ev.ChannelID, ev.EventTS, ev.UserID, disgustWarning); err != nil {
			return fmt.Errorf("processRecord: disgust警告投稿失敗: %w", err)
		}
	}
	if scores.Contempt > threshold {
		if err := ss.sp.PostWarning(ctx, ev.ChannelID, ev.EventTS, ev.UserID, contemptWarning); err != nil {
			return fmt.Errorf("processRecord: contempt警告投稿失敗: %w", err)
		}
	}

	return nil
}
