package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"emotion-bot/project/domain"
	"emotion-bot/project/dto"
	"emotion-bot/project/infrastructure/httpsec"
	"emotion-bot/project/service"
)

// EventsHandler は Slack Events API からのイベントを処理します
type EventsHandler struct {
	verificationToken string
	ingestService     service.IngestService
}

// NewEventsHandler はイベントハンドラーを作成します
func NewEventsHandler(verificationToken string, ingestService service.IngestService) *EventsHandler {
	return &EventsHandler{
		verificationToken: verificationToken,
		ingestService:     ingestService,
	}
}

// ServeHTTP は Slack イベント受信エンドポイントです
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// リクエスト本体を読み込む
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "リクエスト本体の読み込み失敗", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// JSON パース
	var req dto.SlackEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "JSON パース失敗", http.StatusBadRequest)
		return
	}

	// URL 検証（Events API の購読開始時に1度だけ届く）
	if req.Type == dto.URLVerificationType {
		if !h.ingestService.VerifyChallenge(&req) {
			http.Error(w, "トークン検証失敗", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(dto.ChallengeResponse{Challenge: req.Challenge})
		return
	}

	// 検証トークンの照合（url_verification 以外のリクエスト）
	if !httpsec.VerifyVerificationToken(h.verificationToken, req.Token) {
		http.Error(w, "トークン検証失敗", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.ingestService.OnMessageEvent(ctx, &req); err != nil {
		// ポリシー対象外のイベントは正常応答で受け流す（Slackの再送を防ぐ）
		if errors.Is(err, domain.ErrInvalid) {
			log.Printf("EventsHandler: 対象外イベントをスキップ (event_id=%s): %v", req.EventID, err)
			w.WriteHeader(http.StatusOK)
			return
		}
		log.Printf("EventsHandler: イベント処理エラー (event_id=%s): %v", req.EventID, err)
		http.Error(w, "イベント処理失敗", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
