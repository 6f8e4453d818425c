package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"emotion-bot/project/handler"
	"emotion-bot/project/infrastructure/bucket"
	"emotion-bot/project/infrastructure/config"
	"emotion-bot/project/infrastructure/llm"
	"emotion-bot/project/infrastructure/slack"
	"emotion-bot/project/infrastructure/store"
	"emotion-bot/project/infrastructure/tasks"
	"emotion-bot/project/service"

	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// ローカル実行用。本番ではすべて環境変数で渡される
	if err := godotenv.Load(); err == nil {
		log.Printf(".env を読み込みました")
	}

	// 1. 設定を読み込む
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		log.Fatalf("設定読み込み失敗: %v", err)
	}

	// 2. 依存関係を初期化
	// Firestore リポジトリ
	repo, err := store.NewFirestoreRepo(ctx, cfg)
	if err != nil {
		log.Fatalf("Firestore 初期化失敗: %v", err)
	}
	defer repo.Close()

	// Firestore エクスポートクライアント
	exportClient, err := store.NewExportClient(ctx, cfg)
	if err != nil {
		log.Fatalf("エクスポートクライアント初期化失敗: %v", err)
	}
	defer exportClient.Close()

	// Cloud Storage クライアント
	gcsClient, err := bucket.NewGCSClient(ctx)
	if err != nil {
		log.Fatalf("Cloud Storage クライアント初期化失敗: %v", err)
	}
	defer gcsClient.Close()

	// Slack API ポート実装
	slackClient := slack.NewSlackClient(cfg)

	// LLM 抽出ポート実装
	llmClient := llm.NewClient(cfg.OpenAIAPIKey, cfg.ChatModel)

	// Cloud Tasks ポート実装
	tasksClient, err := tasks.NewCloudTasksClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Cloud Tasks クライアント初期化失敗: %v", err)
	}
	defer tasksClient.Close()

	// 3. サービス層を初期化
	ingestService := service.NewIngestService(cfg, tasksClient)
	scoringService := service.NewScoringService(cfg, repo, slackClient, llmClient)
	dailyService := service.NewDailyService(cfg, repo, slackClient, llmClient)
	archiveService := service.NewArchiveService(cfg, gcsClient, exportClient)

	// 4. HTTP ハンドラーを設定
	mux := http.NewServeMux()

	// Slack イベント受信
	mux.Handle("/slack/events", handler.NewEventsHandler(cfg.SlackVerificationToken, ingestService))

	// Cloud Tasks からのスコアリングタスク配送
	mux.Handle("/tasks/score", handler.NewScoreHandler(scoringService))

	// Cloud Scheduler からのジョブ起動
	mux.Handle("/jobs/daily", handler.NewDailyHandler(dailyService))
	mux.Handle("/jobs/export", handler.NewExportHandler(archiveService))

	// Pub/Sub push 経由のストレージ通知
	mux.Handle("/storage/events", handler.NewStorageHandler(archiveService))

	// ヘルスチェック
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// 5. サーバー起動
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("サーバー起動: %s", addr)

	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		log.Fatalf("サーバーエラー: %v", err)
	}
}
