package llm

import (
	"encoding/json"
	"fmt"
)

// decodeJSON 解析 LLM 输出中的 JSON 对象。
// 模型常把 JSON 包在说明文字或代码块里，先截取首个平衡的对象再解码。
func decodeJSON(content string, v interface{}) error {
	if err := json.Unmarshal([]byte(extractJSON(content)), v); err != nil {
		return fmt.Errorf("failed to parse model output as JSON: %w", err)
	}
	return nil
}

// extractJSON 从文本中提取 JSON 部分
func extractJSON(content string) string {
	start := -1
	end := -1
	depth := 0

	for i, ch := range content {
		if ch == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 && start != -1 {
				end = i + 1
				break
			}
		}
	}

	if start >= 0 && end > start {
		return content[start:end]
	}

	return content
}
