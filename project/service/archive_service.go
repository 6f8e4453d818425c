package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"emotion-bot/project/dto"
	"emotion-bot/project/infrastructure/config"
)

// エクスポート結果の構成（マニフェストと同じフォルダ階層にデータが置かれます）
const (
	// ManifestFileName はエクスポート完了を示すマニフェストのファイル名です
	ManifestFileName = "manifest-files.json"

	// dataFolder はマニフェストと並ぶデータフォルダ名です
	dataFolder = "data/"
)

// ArchiveService はエクスポートの起動と、完了済みデータの
// 処理済みプレフィックスへの移動を管理するサービスです
type ArchiveService interface {
	// StartExport はイベントストアの一括エクスポートを開始します
	StartExport(ctx context.Context) error

	// OnObjectCreated はストレージのオブジェクト作成通知を処理します。
	// 設定されたバケットのマニフェストオブジェクトのみに反応します
	OnObjectCreated(ctx context.Context, event dto.StorageObjectEvent) error
}

// archiveService は ArchiveService の実装です
type archiveService struct {
	cfg *config.Config
	op  ObjectStorePort
	xp  ExportPort
}

// NewArchiveService は ArchiveService のインスタンスを作成します
func NewArchiveService(cfg *config.Config, op ObjectStorePort, xp ExportPort) ArchiveService {
	return &archiveService{cfg: cfg, op: op, xp: xp}
}

// StartExport はエクスポートを開始します（完了待ちはしません）
func (as *archiveService) StartExport(ctx context.Context) error {
	if err := as.xp.StartExport(ctx); err != nil {
		return fmt.Errorf("StartExport: エクスポート開始失敗: %w", err)
	}
	return nil
}

// OnObjectCreated は通知を選別し、マニフェスト検知時にデータを移動します
func (as *archiveService) OnObjectCreated(ctx context.Context, event dto.StorageObjectEvent) error {
	if event.Bucket != as.cfg.BucketName {
		log.Printf("OnObjectCreated: 対象外バケットのためスキップ (bucket=%s)", event.Bucket)
		return nil
	}
	if !strings.Contains(event.ObjectKey, ManifestFileName) {
		return nil
	}
	return as.moveData(ctx, event.ObjectKey)
}

// moveData はエクスポートされたデータを処理済みプレフィックスへ移動します。
// コピーは1件ずつ行い、途中で失敗してもロールバックしません
func (as *archiveService) moveData(ctx context.Context, manifestKey string) error {
	bucket := as.cfg.BucketName
	prefix := as.cfg.ProcessedDataPrefix

	// 既存の処理済みオブジェクトを削除（リスト失敗は握りつぶして続行）
	if oldKeys, err := as.op.ListObjects(ctx, bucket, prefix); err != nil {
		log.Printf("moveData: 既存オブジェクトの列挙失敗のため削除をスキップ: %v", err)
	} else if len(oldKeys) > 0 {
		if err := as.op.DeleteObjects(ctx, bucket, oldKeys); err != nil {
			return fmt.Errorf("moveData: 既存オブジェクト削除失敗: %w", err)
		}
	}

	// マニフェストのファイル名をデータフォルダ名に置換して移動元を導出
	sourceFolder := strings.ReplaceAll(manifestKey, ManifestFileName, dataFolder)
	sourceKeys, err := as.op.ListObjects(ctx, bucket, sourceFolder)
	if err != nil {
		return fmt.Errorf("moveData: 移動元の列挙失敗 (folder=%s): %w", sourceFolder, err)
	}

	for _, key := range sourceKeys {
		// ディレクトリ階層は保持せず、ファイル名のみで配置する
		dstKey := prefix + baseFileName(key)
		if err := as.op.CopyObject(ctx, bucket, key, dstKey); err != nil {
			return fmt.Errorf("moveData: コピー失敗 (src=%s, dst=%s): %w", key, dstKey, err)
		}
	}

	return nil
}

// baseFileName はキーの末尾のファイル名部分を返します
func baseFileName(key string) string {
	parts := strings.Split(key, "/")
	return parts[len(parts)-1]
}
