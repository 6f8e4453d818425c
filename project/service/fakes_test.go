package service

import (
	"context"
	"fmt"

	"emotion-bot/project/domain"
	"emotion-bot/project/dto"
	"emotion-bot/project/infrastructure/config"
)

// テスト共通の設定
func testConfig() *config.Config {
	return &config.Config{
		TasksQueueScore:        "score-queue",
		WarningThreshold:       0.5,
		ResultChannelID:        "C-RESULT",
		BucketName:             "emotion-export",
		ProcessedDataPrefix:    "processed/",
		SlackVerificationToken: "verification-token",
	}
}

// ===== SlackPort =====

type warningCall struct {
	ChannelID string
	ThreadTS  string
	UserID    string
	Text      string
}

type summaryCall struct {
	ThreadTS string
	UserID   string
	Text     string
}

type fakeSlack struct {
	warnings   []warningCall
	warningErr error

	headerDates []string
	headerTS    string
	headerErr   error

	summaries  []summaryCall
	summaryErr error
}

func (f *fakeSlack) PostWarning(ctx context.Context, channelID, threadTS, userID, text string) error {
	if f.warningErr != nil {
		return f.warningErr
	}
	f.warnings = append(f.warnings, warningCall{channelID, threadTS, userID, text})
	return nil
}

func (f *fakeSlack) PostDailyHeader(ctx context.Context, date string) (string, error) {
	if f.headerErr != nil {
		return "", f.headerErr
	}
	f.headerDates = append(f.headerDates, date)
	return f.headerTS, nil
}

func (f *fakeSlack) PostDailySummary(ctx context.Context, threadTS, userID, text string) error {
	if f.summaryErr != nil {
		return f.summaryErr
	}
	f.summaries = append(f.summaries, summaryCall{threadTS, userID, text})
	return nil
}

// ===== ExtractorPort =====

type fakeExtractor struct {
	scoreFn   func(text string) (domain.EmotionScores, error)
	scoredFor []string

	adviseCalls [][]domain.EmotionScores
	advice      domain.DailyAdvice
	adviseErr   error
}

func (f *fakeExtractor) ScoreEmotion(ctx context.Context, text string) (domain.EmotionScores, error) {
	f.scoredFor = append(f.scoredFor, text)
	if f.scoreFn == nil {
		return domain.EmotionScores{}, nil
	}
	return f.scoreFn(text)
}

func (f *fakeExtractor) AdviseDaily(ctx context.Context, scores []domain.EmotionScores) (domain.DailyAdvice, error) {
	copied := append([]domain.EmotionScores(nil), scores...)
	f.adviseCalls = append(f.adviseCalls, copied)
	if f.adviseErr != nil {
		return domain.DailyAdvice{}, f.adviseErr
	}
	return f.advice, nil
}

// ===== EmotionRepository =====

type fakeRepo struct {
	saved   map[string]*domain.EmotionEntry
	saveErr error

	pages    [][]domain.EmotionEntry
	pageIdx  int
	queryErr error
	queries  []*domain.PageCursor
}

func (f *fakeRepo) Save(ctx context.Context, entry *domain.EmotionEntry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.saved == nil {
		f.saved = make(map[string]*domain.EmotionEntry)
	}
	f.saved[entry.EventID] = entry
	return nil
}

func (f *fakeRepo) QueryByDate(ctx context.Context, date string, cursor *domain.PageCursor) ([]domain.EmotionEntry, *domain.PageCursor, error) {
	f.queries = append(f.queries, cursor)
	if f.queryErr != nil {
		return nil, nil, f.queryErr
	}
	if f.pageIdx >= len(f.pages) {
		return nil, nil, nil
	}
	page := f.pages[f.pageIdx]
	f.pageIdx++
	if f.pageIdx < len(f.pages) {
		return page, &domain.PageCursor{Timestamp: int64(f.pageIdx)}, nil
	}
	return page, nil, nil
}

// ===== TaskPort =====

type fakeTasks struct {
	batches []*dto.ScoreBatchPayload
	err     error
}

func (f *fakeTasks) EnqueueScoreBatch(ctx context.Context, payload *dto.ScoreBatchPayload) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, payload)
	return nil
}

// ===== ObjectStorePort =====

type copyCall struct {
	Src string
	Dst string
}

type fakeObjectStore struct {
	listFn func(prefix string) ([]string, error)

	copies  []copyCall
	copyErr map[string]error

	deleted [][]string
	delErr  error
}

func (f *fakeObjectStore) ListObjects(ctx context.Context, bucket, prefix string) ([]string, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(prefix)
}

func (f *fakeObjectStore) CopyObject(ctx context.Context, bucket, srcKey, dstKey string) error {
	if err, ok := f.copyErr[srcKey]; ok {
		return err
	}
	f.copies = append(f.copies, copyCall{Src: srcKey, Dst: dstKey})
	return nil
}

func (f *fakeObjectStore) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, keys)
	return nil
}

// ===== ExportPort =====

type fakeExport struct {
	calls int
	err   error
}

func (f *fakeExport) StartExport(ctx context.Context) error {
	f.calls++
	return f.err
}

// ===== テストデータ =====

func scoreBatchRecord(source, eventID, text string) dto.ScoreRecordPayload {
	return dto.ScoreRecordPayload{
		Source: source,
		Body:   slackMessageRequest(eventID, text),
	}
}

func slackMessageRequest(eventID, text string) dto.SlackEventRequest {
	return dto.SlackEventRequest{
		Token:     "verification-token",
		Type:      dto.EventCallbackType,
		EventID:   eventID,
		EventTime: 1728783000,
		Event: dto.SlackMessageEvent{
			Type:        dto.MessageEventType,
			Channel:     "C1",
			ChannelType: domain.ChannelTypeChannel,
			User:        "U1",
			Text:        text,
			EventTS:     fmt.Sprintf("1728783000.%s", eventID),
		},
	}
}
