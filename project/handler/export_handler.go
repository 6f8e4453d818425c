package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"emotion-bot/project/service"
)

// ExportHandler は Cloud Scheduler から起動されるエクスポート開始を処理します
type ExportHandler struct {
	archiveService service.ArchiveService
}

// NewExportHandler はエクスポートハンドラーを作成します
func NewExportHandler(archiveService service.ArchiveService) *ExportHandler {
	return &ExportHandler{archiveService: archiveService}
}

// ServeHTTP はエクスポート開始エンドポイントです（完了待ちはしません）
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.archiveService.StartExport(ctx); err != nil {
		log.Printf("ExportHandler: エクスポート開始エラー: %v", err)
		http.Error(w, "エクスポート開始失敗", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
