package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"emotion-bot/project/domain"
)

func TestDecodeToolUse_FirstValidCandidateWins(t *testing.T) {
	t.Parallel()

	tool := EmotionScoresTool()
	blocks := []ContentBlock{
		TextBlock{Text: "考え中です"},
		// 必須キー欠落の候補は読み飛ばして次を試す
		ToolUseBlock{Name: tool.Name, Input: json.RawMessage(`{"anger":0.5}`)},
		ToolUseBlock{Name: tool.Name, Input: json.RawMessage(
			`{"anger":0.9,"contempt":0.1,"disgust":0.2,"fear":0.0,"joy":0.0,"sad":0.3,"surprise":0.0}`)},
	}

	scores, err := decodeToolUse[domain.EmotionScores](blocks, tool)
	if err != nil {
		t.Fatalf("decodeToolUse: %v", err)
	}
	if scores.Anger != 0.9 || scores.Sad != 0.3 {
		t.Fatalf("scores=%+v", scores)
	}
}

func TestDecodeToolUse_NoToolUseBlocks(t *testing.T) {
	t.Parallel()

	tool := EmotionScoresTool()
	blocks := []ContentBlock{
		TextBlock{Text: "ツールは使いませんでした"},
		OtherBlock{Kind: "custom"},
	}

	if _, err := decodeToolUse[domain.EmotionScores](blocks, tool); !errors.Is(err, domain.ErrExtractionFailed) {
		t.Fatalf("ErrExtractionFailed を期待: %v", err)
	}
}

func TestDecodeToolUse_NameMismatchSkipped(t *testing.T) {
	t.Parallel()

	tool := DailyAdviceTool()
	blocks := []ContentBlock{
		ToolUseBlock{Name: "print_emotion_scores", Input: json.RawMessage(`{"advice":"x","song":"y"}`)},
	}

	if _, err := decodeToolUse[domain.DailyAdvice](blocks, tool); !errors.Is(err, domain.ErrExtractionFailed) {
		t.Fatalf("ErrExtractionFailed を期待: %v", err)
	}
}

func TestDecodeToolUse_MalformedThenValid(t *testing.T) {
	t.Parallel()

	tool := DailyAdviceTool()
	blocks := []ContentBlock{
		ToolUseBlock{Name: tool.Name, Input: json.RawMessage(`not-json`)},
		ToolUseBlock{Name: tool.Name, Input: json.RawMessage(`{"advice":"早めに休みましょう","song":"Lemon"}`)},
	}

	advice, err := decodeToolUse[domain.DailyAdvice](blocks, tool)
	if err != nil {
		t.Fatalf("decodeToolUse: %v", err)
	}
	if advice.Advice != "早めに休みましょう" || advice.Song != "Lemon" {
		t.Fatalf("advice=%+v", advice)
	}
}

func TestCheckRequired(t *testing.T) {
	t.Parallel()

	required := []string{"advice", "song"}

	if err := checkRequired(json.RawMessage(`{"advice":"a","song":"b"}`), required); err != nil {
		t.Fatalf("想定外のエラー: %v", err)
	}
	if err := checkRequired(json.RawMessage(`{"advice":"a"}`), required); err == nil {
		t.Fatalf("必須キー欠落でエラーになるべき")
	}
	if err := checkRequired(json.RawMessage(`[1,2]`), required); err == nil {
		t.Fatalf("非オブジェクトでエラーになるべき")
	}
}
