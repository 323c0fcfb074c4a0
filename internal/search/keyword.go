// Package search 实现公告标题的关键词加权检索：
// 解析 "공사*3,설계*2,용역" 形式的权重串，构造参数化的评分表达式与排除条件。
package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyKeywords 关键词串解析后为空
var ErrEmptyKeywords = errors.New("关键词不能为空")

// KeywordWeight 单个关键词及其权重
type KeywordWeight struct {
	Keyword string `json:"keyword"`
	Weight  int32  `json:"weight"`
}

const (
	termSeparator   = ","
	weightSeparator = "*"
	defaultWeight   = 1
)

// ParseKeywordWeights 解析逗号分隔的关键词串，每项可带 "*权重"（整数，缺省 1）。
// 同一关键词重复出现时保留最后一次的权重，顺序以首次出现为准。
func ParseKeywordWeights(s string) ([]KeywordWeight, error) {
	var (
		result []KeywordWeight
		index  = map[string]int{}
	)
	for _, raw := range strings.Split(s, termSeparator) {
		term := strings.TrimSpace(raw)
		if term == "" {
			continue
		}

		weight := int64(defaultWeight)
		if i := strings.LastIndex(term, weightSeparator); i >= 0 {
			// "공사*" 视为缺省权重
			if raw := strings.TrimSpace(term[i+1:]); raw != "" {
				w, err := strconv.ParseInt(raw, 10, 32)
				if err != nil {
					return nil, fmt.Errorf("关键词 %q 的权重无效: %w", term, err)
				}
				weight = w
			}
			term = strings.TrimSpace(term[:i])
			if term == "" {
				continue
			}
		}

		if pos, ok := index[term]; ok {
			result[pos].Weight = int32(weight)
			continue
		}
		index[term] = len(result)
		result = append(result, KeywordWeight{Keyword: term, Weight: int32(weight)})
	}
	return result, nil
}

// ParseNots 解析排除词串（逗号分隔），忽略权重后缀。
func ParseNots(s string) []string {
	var nots []string
	for _, raw := range strings.Split(s, termSeparator) {
		term := strings.TrimSpace(raw)
		if i := strings.Index(term, weightSeparator); i >= 0 {
			term = strings.TrimSpace(term[:i])
		}
		if term != "" {
			nots = append(nots, term)
		}
	}
	return nots
}

// Score 在给定标题上按关键词计算得分。
// 与 MySQL _ci 排序规则下的 LIKE 一致，匹配不区分大小写。
func Score(title string, weights []KeywordWeight) int32 {
	folded := strings.ToLower(title)
	var total int32
	for _, kw := range weights {
		if strings.Contains(folded, strings.ToLower(kw.Keyword)) {
			total += kw.Weight
		}
	}
	return total
}

// Excluded 标题包含任一排除词时返回 true，不区分大小写。
func Excluded(title string, nots []string) bool {
	folded := strings.ToLower(title)
	for _, n := range nots {
		if strings.Contains(folded, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// EscapeLike 转义 LIKE 模式中的通配符
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
