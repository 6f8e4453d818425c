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

// StorageHandler は Pub/Sub push で届くストレージのオブジェクト通知を処理します
type StorageHandler struct {
	archiveService service.ArchiveService
}

// NewStorageHandler はストレージ通知ハンドラーを作成します
func NewStorageHandler(archiveService service.ArchiveService) *StorageHandler {
	return &StorageHandler{archiveService: archiveService}
}

// ServeHTTP はオブジェクト通知の受信エンドポイントです。
// 非2xx応答で Pub/Sub が再配送するため、移動処理の失敗は 500 を返します
func (h *StorageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "リクエスト本体の読み込み失敗", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req dto.PubSubPushRequest
	if err := json.Unmarshal(body, &req); err != nil {
		// パース不能な通知は再配送しても成功しないため正常応答で捨てる
		log.Printf("StorageHandler: 通知のパース失敗: %v", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	event := req.Message.ToStorageObjectEvent()
	if event.EventType != dto.EventTypeObjectFinalize {
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := h.archiveService.OnObjectCreated(ctx, event); err != nil {
		log.Printf("StorageHandler: オブジェクト通知処理エラー (key=%s): %v", event.ObjectKey, err)
		http.Error(w, "通知処理失敗", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
