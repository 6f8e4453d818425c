package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"emotion-bot/project/domain"
	"emotion-bot/project/infrastructure/config"
)

// quoteThreshold 以上の最大値を持つ感情のみ、該当メッセージを引用します
const quoteThreshold = 0.4

// DailyService は前営業日分の集計とサマリー投稿を管理するサービスです
type DailyService interface {
	// RunDaily は前営業日のレコードを集計し、ユーザーごとのサマリーを
	// スレッドに投稿します。対象レコードが無い場合は何もしません
	RunDaily(ctx context.Context) error
}

// dailyService は DailyService の実装です
type dailyService struct {
	cfg  *config.Config
	repo domain.EmotionRepository
	sp   SlackPort
	ep   ExtractorPort
	now  func() time.Time
}

// NewDailyService は DailyService のインスタンスを作成します
func NewDailyService(
	cfg *config.Config,
	repo domain.EmotionRepository,
	sp SlackPort,
	ep ExtractorPort,
) DailyService {
	return &dailyService{
		cfg:  cfg,
		repo: repo,
		sp:   sp,
		ep:   ep,
		now:  time.Now,
	}
}

// userRecord は1ユーザーの(スコア, テキスト)の組です（送信時刻順）
type userRecord struct {
	Scores domain.EmotionScores
	Text   string
}

// RunDaily は前営業日のレコードをページ単位で集め、ユーザー別に処理します
func (ds *dailyService) RunDaily(ctx context.Context) error {
	date := domain.PreviousBusinessDay(ds.now())

	// 継続トークンが尽きるまで逐次ページング
	var entries []domain.EmotionEntry
	var cursor *domain.PageCursor
	for {
		page, next, err := ds.repo.QueryByDate(ctx, date, cursor)
		if err != nil {
			return fmt.Errorf("RunDaily: 日付検索失敗 (date=%s): %w", date, err)
		}
		entries = append(entries, page...)
		if next == nil {
			break
		}
		cursor = next
	}

	if len(entries) == 0 {
		log.Printf("RunDaily: 対象レコードなし (date=%s)", date)
		return nil
	}

	// ユーザーごとにグループ化（ユーザー内の時系列は維持）
	grouped := groupByUser(entries)

	threadTS, err := ds.sp.PostDailyHeader(ctx, date)
	if err != nil {
		return fmt.Errorf("RunDaily: ヘッダー投稿失敗 (date=%s): %w", date, err)
	}

	for userID, records := range grouped {
		scores := make([]domain.EmotionScores, 0, len(records))
		for _, r := range records {
			scores = append(scores, r.Scores)
		}

		// 抽出失敗は残りのユーザーも含めて中断（投稿済み分は残る）
		advice, err := ds.ep.AdviseDaily(ctx, scores)
		if err != nil {
			return fmt.Errorf("RunDaily: アドバイス生成失敗 (user=%s): %w", userID, err)
		}

		maxAnger := maxByScore(records, func(s domain.EmotionScores) float64 { return s.Anger })
		maxContempt := maxByScore(records, func(s domain.EmotionScores) float64 { return s.Contempt })
		maxDisgust := maxByScore(records, func(s domain.EmotionScores) float64 { return s.Disgust })

		summary := buildSummary(advice, maxAnger, maxContempt, maxDisgust)
		if err := ds.sp.PostDailySummary(ctx, threadTS, userID, summary); err != nil {
			return fmt.Errorf("RunDaily: サマリー投稿失敗 (user=%s): %w", userID, err)
		}
	}

	return nil
}

// groupByUser はレコードをユーザーIDでまとめます。
// 入力の順序（時系列）はユーザー内でそのまま保持されます
func groupByUser(entries []domain.EmotionEntry) map[string][]userRecord {
	grouped := make(map[string][]userRecord)
	for _, entry := range entries {
		grouped[entry.UserID] = append(grouped[entry.UserID], userRecord{
			Scores: entry.Scores,
			Text:   entry.Text,
		})
	}
	return grouped
}

// maxByScore は score が最大のレコードを返します。
// 厳密な大なり比較のため、同値の場合は先に現れたレコードが維持されます
func maxByScore(records []userRecord, score func(domain.EmotionScores) float64) userRecord {
	best := records[0]
	for _, r := range records[1:] {
		if score(r.Scores) > score(best.Scores) {
			best = r
		}
	}
	return best
}

// buildSummary はユーザー宛サマリー本文を組み立てます。
// 各感情の引用行は最大値が quoteThreshold 以上の場合のみ含めます
func buildSummary(advice domain.DailyAdvice, maxAnger, maxContempt, maxDisgust userRecord) string {
	var b strings.Builder
	if maxAnger.Scores.Anger >= quoteThreshold {
		fmt.Fprintf(&b, "*Message with max anger (%v)*: %s\n", maxAnger.Scores.Anger, maxAnger.Text)
	}
	if maxContempt.Scores.Contempt >= quoteThreshold {
		fmt.Fprintf(&b, "*Message with max contempt (%v)*: %s\n", maxContempt.Scores.Contempt, maxContempt.Text)
	}
	if maxDisgust.Scores.Disgust >= quoteThreshold {
		fmt.Fprintf(&b, "*Message with max disgust (%v)*: %s\n", maxDisgust.Scores.Disgust, maxDisgust.Text)
	}
	fmt.Fprintf(&b, "*Advice*: %s\n", advice.Advice)
	fmt.Fprintf(&b, "*Song Recommendation*: %s", advice.Song)
	return b.String()
}
