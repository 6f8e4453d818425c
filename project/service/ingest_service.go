package service

import (
	"context"
	"fmt"

	"emotion-bot/project/domain"
	"emotion-bot/project/dto"
	"emotion-bot/project/infrastructure/config"
	"emotion-bot/project/infrastructure/httpsec"
)

// IngestService はWebhookで受けたイベントの検証とキュー投入を管理するサービスです
type IngestService interface {
	// VerifyChallenge は url_verification リクエストのトークンを検証します
	VerifyChallenge(req *dto.SlackEventRequest) bool

	// OnMessageEvent は受信イベントを検証し、有効ならスコアリングキューへ投入します
	// ポリシー対象外のイベントは domain.ErrInvalid を返します（呼び出し側は正常応答してください）
	OnMessageEvent(ctx context.Context, req *dto.SlackEventRequest) error
}

// ingestService は IngestService の実装です
type ingestService struct {
	cfg *config.Config
	tp  TaskPort
}

// NewIngestService は IngestService のインスタンスを作成します
func NewIngestService(cfg *config.Config, tp TaskPort) IngestService {
	return &ingestService{cfg: cfg, tp: tp}
}

// VerifyChallenge は検証トークンの一致を定時間比較で確認します
func (is *ingestService) VerifyChallenge(req *dto.SlackEventRequest) bool {
	if req.Type != dto.URLVerificationType {
		return false
	}
	return httpsec.VerifyVerificationToken(is.cfg.SlackVerificationToken, req.Token)
}

// OnMessageEvent はイベント種別と取り込みポリシーを確認し、キューへ投入します
func (is *ingestService) OnMessageEvent(ctx context.Context, req *dto.SlackEventRequest) error {
	if req.Type != dto.EventCallbackType || req.Event.Type != dto.MessageEventType {
		return fmt.Errorf("%w: 対象外イベント種別です (type=%s, event_type=%s)", domain.ErrInvalid, req.Type, req.Event.Type)
	}

	if err := req.ToDomain().Validate(); err != nil {
		return fmt.Errorf("OnMessageEvent: イベント検証失敗: %w", err)
	}

	payload := &dto.ScoreBatchPayload{
		Records: []dto.ScoreRecordPayload{
			{Source: is.cfg.TasksQueueScore, Body: *req},
		},
	}

	if err := is.tp.EnqueueScoreBatch(ctx, payload); err != nil {
		return fmt.Errorf("OnMessageEvent: スコアリングバッチ投入失敗: %w", err)
	}

	return nil
}
