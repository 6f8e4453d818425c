package dto

// ScoreBatchPayload は Cloud Tasks 経由でスコアリングへ渡されるバッチです。
// 配送は at-least-once・順序保証なしの前提で処理します
type ScoreBatchPayload struct {
	Records []ScoreRecordPayload `json:"records"`
}

// ScoreRecordPayload はバッチ内の1件です。
// Source には投入時のキュー名が入り、受信側で自身のキュー名と照合します
type ScoreRecordPayload struct {
	Source string            `json:"source"`
	Body   SlackEventRequest `json:"body"`
}
