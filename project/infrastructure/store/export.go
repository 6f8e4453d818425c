package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"emotion-bot/project/domain"
	"emotion-bot/project/infrastructure/config"

	firestoreadmin "cloud.google.com/go/firestore/apiv1/admin"
	"cloud.google.com/go/firestore/apiv1/admin/adminpb"
)

// ExportClient は Firestore のマネージドエクスポートを起動するクライアントです。
// エクスポート先は設定されたバケットの export/ プレフィックス配下です
type ExportClient struct {
	cli        *firestoreadmin.FirestoreAdminClient
	projectID  string
	collection string
	bucket     string
}

// NewExportClient は Firestore Admin クライアントを初期化します
func NewExportClient(ctx context.Context, cfg *config.Config) (*ExportClient, error) {
	client, err := firestoreadmin.NewFirestoreAdminClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: Admin クライアント初期化失敗: %w", err)
	}

	return &ExportClient{
		cli:        client,
		projectID:  cfg.FirestoreProjectID,
		collection: cfg.CollectionEmotions,
		bucket:     cfg.BucketName,
	}, nil
}

// StartExport は感情コレクションのエクスポートを開始します。
// 長時間実行オペレーションの完了は待ちません（完了はストレージ通知で検知します）
func (e *ExportClient) StartExport(ctx context.Context) error {
	database := fmt.Sprintf("projects/%s/databases/(default)", e.projectID)
	date, _ := domain.DateMonth(time.Now().Unix())
	outputPrefix := fmt.Sprintf("gs://%s/export/%s", e.bucket, date)

	op, err := e.cli.ExportDocuments(ctx, &adminpb.ExportDocumentsRequest{
		Name:            database,
		CollectionIds:   []string{e.collection},
		OutputUriPrefix: outputPrefix,
	})
	if err != nil {
		return fmt.Errorf("export: エクスポート開始失敗 (output=%s): %w", outputPrefix, err)
	}

	log.Printf("StartExport: エクスポートを開始しました (operation=%s, output=%s)", op.Name(), outputPrefix)
	return nil
}

// Close は Admin クライアントを閉じます
func (e *ExportClient) Close() error {
	if e.cli != nil {
		return e.cli.Close()
	}
	return nil
}
