package llm

import (
	"encoding/json"
	"fmt"
	"log"

	"emotion-bot/project/domain"

	openaigo "github.com/openai/openai-go/v3"
)

// ContentBlock はLLM応答メッセージ内の1ブロックです。
// Text / ToolUse / Other の判別共用体として網羅的に扱います
type ContentBlock interface {
	isContentBlock()
}

// TextBlock は自由文のブロックです
type TextBlock struct {
	Text string
}

// ToolUseBlock はツール呼び出しのブロックです
type ToolUseBlock struct {
	Name  string
	Input json.RawMessage
}

// OtherBlock は上記以外のブロックです（スキャン時は読み飛ばします）
type OtherBlock struct {
	Kind string
}

func (TextBlock) isContentBlock()    {}
func (ToolUseBlock) isContentBlock() {}
func (OtherBlock) isContentBlock()   {}

// messageBlocks は応答メッセージをContentBlockの列へ変換します
func messageBlocks(msg openaigo.ChatCompletionMessage) []ContentBlock {
	var blocks []ContentBlock
	if msg.Content != "" {
		blocks = append(blocks, TextBlock{Text: msg.Content})
	}
	for _, tc := range msg.ToolCalls {
		if tc.Type != "function" {
			blocks = append(blocks, OtherBlock{Kind: tc.Type})
			continue
		}
		call := tc.AsFunction()
		blocks = append(blocks, ToolUseBlock{
			Name:  call.Function.Name,
			Input: json.RawMessage(call.Function.Arguments),
		})
	}
	return blocks
}

// decodeToolUse はブロック列を走査し、ツール名が一致して検証を通る
// 最初のツール呼び出しを T として返します。
// 候補が1つも無い・全て検証に失敗した場合は domain.ErrExtractionFailed を返します
func decodeToolUse[T any](blocks []ContentBlock, tool ToolDefinition) (T, error) {
	var zero T
	for _, block := range blocks {
		switch b := block.(type) {
		case ToolUseBlock:
			if b.Name != tool.Name {
				continue
			}
			if err := checkRequired(b.Input, tool.Required); err != nil {
				// 1つの候補の失敗では中断せず、次のブロックを確認する
				log.Printf("llm: ツール入力の検証失敗 (tool=%s): %v", tool.Name, err)
				continue
			}
			var out T
			if err := json.Unmarshal(b.Input, &out); err != nil {
				log.Printf("llm: ツール入力のデコード失敗 (tool=%s): %v", tool.Name, err)
				continue
			}
			return out, nil
		case TextBlock, OtherBlock:
			continue
		}
	}
	return zero, fmt.Errorf("llm: 有効なツール呼び出しが応答にありません (tool=%s): %w", tool.Name, domain.ErrExtractionFailed)
}

// checkRequired はペイロードがJSONオブジェクトであり、
// 必須キーを全て含むことを確認します
func checkRequired(input json.RawMessage, required []string) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(input, &payload); err != nil {
		return fmt.Errorf("ペイロードがオブジェクトではありません: %w", err)
	}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			return fmt.Errorf("必須キーがありません (key=%s)", key)
		}
	}
	return nil
}
