package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"emotion-bot/project/domain"
	"emotion-bot/project/infrastructure/secret"
)

// Secret Manager 上のシークレット名
const (
	secretSlackVerificationToken = "slack-verification-token"
	secretSlackBotToken          = "slack-bot-token"
	secretOpenAIAPIKey           = "openai-api-key"
)

// Config は環境変数から読み込まれるアプリケーション設定を表します
type Config struct {
	// 基本設定
	GcpProject string
	Region     string

	// Firestore設定
	FirestoreProjectID string
	CollectionEmotions string

	// Slack設定
	ResultChannelID        string
	SlackVerificationToken string // Secret Manager から読み込み
	SlackBotToken          string // Secret Manager から読み込み

	// LLM設定
	ChatModel    string
	OpenAIAPIKey string // Secret Manager から読み込み

	// スコアリング設定
	WarningThreshold float64

	// Cloud Tasks設定
	TasksQueueScore     string
	TasksAudience       string
	TasksServiceAccount string

	// エクスポート・アーカイブ設定
	BucketName          string
	ProcessedDataPrefix string
}

// NewConfig は環境変数から設定を読み込み、Config構造体を返します
// センシティブな情報（Slackトークンなど）はSecret Managerから取得します
func NewConfig(ctx context.Context) (*Config, error) {
	gcpProject, err := getEnv("GCP_PROJECT")
	if err != nil {
		return nil, err
	}

	// Secret Manager クライアントを初期化
	secretMgr, err := secret.NewManager(ctx, gcpProject)
	if err != nil {
		return nil, fmt.Errorf("Secret Manager クライアント初期化失敗: %w", err)
	}
	defer secretMgr.Close()

	verificationToken, err := secretMgr.GetSecret(ctx, secretSlackVerificationToken)
	if err != nil {
		return nil, fmt.Errorf("SLACK_VERIFICATION_TOKEN 取得失敗: %w", err)
	}

	botToken, err := secretMgr.GetSecret(ctx, secretSlackBotToken)
	if err != nil {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN 取得失敗: %w", err)
	}

	openAIKey, err := secretMgr.GetSecret(ctx, secretOpenAIAPIKey)
	if err != nil {
		return nil, fmt.Errorf("OPENAI_API_KEY 取得失敗: %w", err)
	}

	config := &Config{
		GcpProject: gcpProject,

		SlackVerificationToken: verificationToken,
		SlackBotToken:          botToken,
		OpenAIAPIKey:           openAIKey,
	}

	// 必須の環境変数
	for _, item := range []struct {
		key  string
		dest *string
	}{
		{"REGION", &config.Region},
		{"FIRESTORE_PROJECT_ID", &config.FirestoreProjectID},
		{"FS_COLLECTION_EMOTIONS", &config.CollectionEmotions},
		{"RESULT_CHANNEL_ID", &config.ResultChannelID},
		{"CHAT_MODEL", &config.ChatModel},
		{"TASKS_QUEUE_SCORE", &config.TasksQueueScore},
		{"TASKS_AUDIENCE", &config.TasksAudience},
		{"TASKS_SERVICE_ACCOUNT", &config.TasksServiceAccount},
		{"BUCKET_NAME", &config.BucketName},
		{"PROCESSED_DATA_PREFIX", &config.ProcessedDataPrefix},
	} {
		value, err := getEnv(item.key)
		if err != nil {
			return nil, err
		}
		*item.dest = value
	}

	// アラート閾値
	thresholdRaw, err := getEnv("IMMEDIATE_WARNING_THRESHOLD")
	if err != nil {
		return nil, err
	}
	threshold, err := strconv.ParseFloat(thresholdRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid IMMEDIATE_WARNING_THRESHOLD format: %w", err)
	}
	config.WarningThreshold = threshold

	return config, nil
}

// getEnv は環境変数を取得し、存在しない場合は domain.ErrConfigMissing を返します
func getEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%w (key=%s)", domain.ErrConfigMissing, key)
	}
	return value, nil
}
