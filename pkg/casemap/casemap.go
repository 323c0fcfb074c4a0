// Package casemap 在后端 REST 的 snake_case 键与 GraphQL 的 camelCase 键之间转换。
//
// 结构化实体通过 Go 字段名（GraphQL）与 json 标签（REST）一次性声明映射；
// 本包只处理形状不固定的 JSON 负载（爬虫检查结果、投标详情、SQL 查询行等）。
package casemap

import (
	"strings"
	"unicode"
)

// SnakeToCamel "org_name" → "orgName"，"detail_url" → "detailUrl"
// 首段保持原样，空段（连续下划线）被忽略。
func SnakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	first := true
	for _, p := range parts {
		if p == "" {
			continue
		}
		if first {
			b.WriteString(p)
			first = false
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// CamelToSnake "orgName" → "org_name"，"NoticeID" → "notice_id"
// 连续大写（缩写）视为一个词。
func CamelToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				next := rune(0)
				if i+1 < len(runes) {
					next = runes[i+1]
				}
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && unicode.IsLower(next)) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToCamelKeys 递归地把 map 键转换为 camelCase，返回新值，不修改入参。
func ToCamelKeys(v interface{}) interface{} {
	return convertKeys(v, SnakeToCamel)
}

// ToSnakeKeys 递归地把 map 键转换为 snake_case。
func ToSnakeKeys(v interface{}) interface{} {
	return convertKeys(v, CamelToSnake)
}

func convertKeys(v interface{}, fn func(string) string) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fn(k)] = convertKeys(val, fn)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = convertKeys(val, fn)
		}
		return out
	default:
		return v
	}
}
