package domain

import "errors"

// ドメインエラー定義
var (
	// ErrInvalid は不正な値・ポリシー対象外の入力に対するエラー
	ErrInvalid = errors.New("ドメイン: 不正な値です")

	// ErrNotFound は要求されたリソースが見つからない場合のエラー
	ErrNotFound = errors.New("ドメイン: リソースが見つかりません")

	// ErrExtractionFailed はLLM応答にスキーマを満たすツール呼び出しが無い場合のエラー
	ErrExtractionFailed = errors.New("ドメイン: 構造化抽出に失敗しました")

	// ErrConfigMissing は起動時に必須設定が欠けている場合のエラー
	ErrConfigMissing = errors.New("ドメイン: 必須設定がありません")
)
