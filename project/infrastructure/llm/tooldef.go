package llm

import (
	"encoding/json"

	"emotion-bot/project/domain"

	"github.com/invopop/jsonschema"
)

// ToolDefinition はLLMに強制するツールの形を表します。
// スキーマはモデルへの制約と応答の検証の両方に使用されます
type ToolDefinition struct {
	// Name はツール名（応答ブロックの照合キー）
	Name string

	// Description はツールの説明文
	Description string

	// Schema はJSONスキーマ（function parameters）
	Schema map[string]any

	// Required は応答ペイロードに必須のトップレベルキー
	Required []string
}

// EmotionScoresTool は感情スコア出力ツールの定義を返します
func EmotionScoresTool() ToolDefinition {
	return newToolDefinition[domain.EmotionScores](
		"print_emotion_scores",
		"Print emotion score of a given text.",
	)
}

// DailyAdviceTool はアドバイス出力ツールの定義を返します
func DailyAdviceTool() ToolDefinition {
	return newToolDefinition[domain.DailyAdvice](
		"print_advice_recommendation",
		"Print advice and song recommendation.",
	)
}

// newToolDefinition はGo構造体からツール定義を生成します
func newToolDefinition[T any](name, description string) ToolDefinition {
	schema := generateSchema[T]()
	return ToolDefinition{
		Name:        name,
		Description: description,
		Schema:      schema,
		Required:    requiredKeys(schema),
	}
}

// generateSchema は構造体をリフレクションしてJSONスキーマのマップを生成します
func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	m, err := schemaToMap(schema)
	if err != nil {
		panic(err)
	}
	ensureRequiredProperties(m)
	return m
}

// schemaToMap はスキーマをJSON経由で素のマップへ変換します
func schemaToMap(schema *jsonschema.Schema) (map[string]any, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

// ensureRequiredProperties はobject型の全プロパティを required にし、
// 追加プロパティを禁止します（ネストも再帰的に処理）
func ensureRequiredProperties(schema map[string]any) {
	if schemaType, ok := schema[typeKey].(string); ok && schemaType == "object" {
		schema[additionalPropertiesKey] = false

		if properties, ok := schema[propertiesKey].(map[string]any); ok {
			var requiredFields []string
			for propName := range properties {
				requiredFields = append(requiredFields, propName)
			}
			if len(requiredFields) > 0 {
				schema[requiredKey] = requiredFields
			}
		}
	}

	if properties, ok := schema[propertiesKey].(map[string]any); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]any); ok {
				ensureRequiredProperties(propMap)
			}
		}
	}

	if items, ok := schema[itemsKey].(map[string]any); ok {
		ensureRequiredProperties(items)
	}
}

// requiredKeys はスキーマのトップレベル required キー一覧を取り出します
func requiredKeys(schema map[string]any) []string {
	switch req := schema[requiredKey].(type) {
	case []string:
		return req
	case []any:
		keys := make([]string, 0, len(req))
		for _, k := range req {
			if s, ok := k.(string); ok {
				keys = append(keys, s)
			}
		}
		return keys
	}
	return nil
}
