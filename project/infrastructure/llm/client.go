package llm

import (
	"context"
	"fmt"
	"strings"

	"emotion-bot/project/domain"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/shared"
)

// Client は service.ExtractorPort のOpenAI実装です。
// ツールを1つだけ渡し、tool_choice でそのツールを強制することで
// 応答を構造化ペイロードとして受け取ります
type Client struct {
	api   openaigo.Client
	model string
}

// NewClient は抽出クライアントを初期化します
func NewClient(apiKey, model string) *Client {
	return &Client{
		api:   openaigo.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}
}

// Extract はシステムプロンプトとツール定義で1回のチャット補完を行い、
// 応答ブロックから T を抽出します
func Extract[T any](ctx context.Context, c *Client, systemPrompt string, tool ToolDefinition, text string) (T, error) {
	var zero T

	params := openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(c.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage(systemPrompt),
			openaigo.UserMessage(text),
		},
		Tools: []openaigo.ChatCompletionToolUnionParam{
			openaigo.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: param.NewOpt(tool.Description),
				Parameters:  shared.FunctionParameters(tool.Schema),
			}),
		},
		ToolChoice: openaigo.ChatCompletionToolChoiceOptionUnionParam{
			OfFunctionToolChoice: &openaigo.ChatCompletionNamedToolChoiceParam{
				Function: openaigo.ChatCompletionNamedToolChoiceFunctionParam{
					Name: tool.Name,
				},
			},
		},
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return zero, fmt.Errorf("llm: チャット補完呼び出し失敗 (tool=%s): %w", tool.Name, err)
	}
	if len(resp.Choices) == 0 {
		return zero, fmt.Errorf("llm: 応答に選択肢がありません (tool=%s): %w", tool.Name, domain.ErrExtractionFailed)
	}

	return decodeToolUse[T](messageBlocks(resp.Choices[0].Message), tool)
}

// ScoreEmotion はテキストの感情スコアを抽出します
func (c *Client) ScoreEmotion(ctx context.Context, text string) (domain.EmotionScores, error) {
	tool := EmotionScoresTool()
	message := fmt.Sprintf("<text>%s</text>", text)
	return Extract[domain.EmotionScores](ctx, c, emotionSystemPrompt(tool.Name), tool, message)
}

// AdviseDaily は1ユーザーの1日分のスコア列（送信時刻昇順）から
// アドバイスと推薦曲を生成します
func (c *Client) AdviseDaily(ctx context.Context, scores []domain.EmotionScores) (domain.DailyAdvice, error) {
	tool := DailyAdviceTool()
	message, err := scoresMessage(scores)
	if err != nil {
		return domain.DailyAdvice{}, err
	}
	return Extract[domain.DailyAdvice](ctx, c, adviceSystemPrompt(tool.Name), tool, message)
}

// emotionSystemPrompt は感情評価用のシステムプロンプトを組み立てます
func emotionSystemPrompt(toolName string) string {
	return fmt.Sprintf(`You will be acting as an AI Empath.
You are an expert at reading emotions within text messages and chats.
The text given will be a message sent to a Slack channel of a company.
The target text will be surrounded by <text></text>.
You have to use %s to print out the score for each emotion.`, toolName)
}

// adviceSystemPrompt はアドバイス生成用のシステムプロンプトを組み立てます
func adviceSystemPrompt(toolName string) string {
	return fmt.Sprintf(`You are a mental health professional.
You give advice to employees based on the emotion scores evaluated for the text messages they sent to Slack throughout the day.
The emotion scores for a single employee in a single day will be given in the following format.

<scores>
{"anger":0.6,"contempt":0.0,"disgust":0.0,"fear":0.1,"joy":0.6,"sad":0.1,"surprise":0.0}
{"anger":0.8,"contempt":0.0,"disgust":0.0,"fear":0.1,"joy":0.0,"sad":0.1,"surprise":0.0}
...
</scores>

Each line represents a set of emotion scores for a single text message.
Lines are in the order of when the text message is sent. Earliest comes first.
Each score is evaluated in the range of 0.0 to 1.0.

Your job is to
- Give a one sentence advice
- Recommend a song to listen to.

You have to use %s to print out the advice and the recommended song.`, toolName)
}

// scoresMessage はスコア列を1行1スコアの形式へ変換します
func scoresMessage(scores []domain.EmotionScores) (string, error) {
	lines := make([]string, 0, len(scores))
	for _, s := range scores {
		line, err := s.ScoreLine()
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return fmt.Sprintf("<scores>\n%s\n</scores>", strings.Join(lines, "\n")), nil
}
