package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"emotion-bot/project/service"
)

// DailyHandler は Cloud Scheduler から起動される日次集計を処理します
type DailyHandler struct {
	dailyService service.DailyService
}

// NewDailyHandler は日次集計ハンドラーを作成します
func NewDailyHandler(dailyService service.DailyService) *DailyHandler {
	return &DailyHandler{dailyService: dailyService}
}

// ServeHTTP は日次集計の起動エンドポイントです
func (h *DailyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 対象ユーザー数に応じてLLM呼び出しが続くため、タイムアウトは長めに取る
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := h.dailyService.RunDaily(ctx); err != nil {
		log.Printf("DailyHandler: 日次集計エラー: %v", err)
		http.Error(w, "日次集計失敗", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
