package bucket

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSClient は service.ObjectStorePort の Cloud Storage 実装です
type GCSClient struct {
	cli *storage.Client
}

// NewGCSClient は Cloud Storage クライアントを初期化します
func NewGCSClient(ctx context.Context) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("bucket: クライアント初期化失敗: %w", err)
	}
	return &GCSClient{cli: client}, nil
}

// ListObjects は指定プレフィックス配下のオブジェクトキーを列挙します
func (g *GCSClient) ListObjects(ctx context.Context, bucket, prefix string) ([]string, error) {
	iter := g.cli.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var keys []string
	for {
		attrs, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bucket: オブジェクト列挙失敗 (bucket=%s, prefix=%s): %w", bucket, prefix, err)
		}
		keys = append(keys, attrs.Name)
	}

	return keys, nil
}

// CopyObject は同一バケット内でオブジェクトをコピーします
func (g *GCSClient) CopyObject(ctx context.Context, bucket, srcKey, dstKey string) error {
	src := g.cli.Bucket(bucket).Object(srcKey)
	dst := g.cli.Bucket(bucket).Object(dstKey)

	if _, err := dst.CopierFrom(src).Run(ctx); err != nil {
		return fmt.Errorf("bucket: コピー失敗 (src=%s, dst=%s): %w", srcKey, dstKey, err)
	}

	return nil
}

// DeleteObjects は指定キーのオブジェクトを1件ずつ削除します
func (g *GCSClient) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	for _, key := range keys {
		if err := g.cli.Bucket(bucket).Object(key).Delete(ctx); err != nil {
			return fmt.Errorf("bucket: 削除失敗 (key=%s): %w", key, err)
		}
	}
	return nil
}

// Close は Cloud Storage クライアントを閉じます
func (g *GCSClient) Close() error {
	if g.cli != nil {
		return g.cli.Close()
	}
	return nil
}
