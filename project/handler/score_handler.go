package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"emotion-bot/project/dto"
	"emotion-bot/project/service"
)

// ScoreHandler は Cloud Tasks から配送されるスコアリングバッチを処理します
type ScoreHandler struct {
	scoringService service.ScoringService
}

// NewScoreHandler はスコアリングハンドラーを作成します
func NewScoreHandler(scoringService service.ScoringService) *ScoreHandler {
	return &ScoreHandler{scoringService: scoringService}
}

// ServeHTTP はスコアリングタスクの受信エンドポイントです。
// 非2xx応答で Cloud Tasks が再配送するため、処理失敗は 500 を返します
func (h *ScoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "リクエスト本体の読み込み失敗", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var payload dto.ScoreBatchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		// パース不能なタスクは再配送しても成功しない
		log.Printf("ScoreHandler: ペイロードのパース失敗: %v", err)
		http.Error(w, "JSON パース失敗", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := h.scoringService.ProcessBatch(ctx, &payload); err != nil {
		log.Printf("ScoreHandler: バッチ処理エラー: %v", err)
		http.Error(w, "バッチ処理失敗", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
