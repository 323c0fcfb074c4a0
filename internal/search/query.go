package search

import (
	"fmt"
	"regexp"
	"strings"
)

// Expr 参数化 SQL 片段
type Expr struct {
	SQL  string
	Args []interface{}
}

// ScoreExpr 构造评分表达式：
// (CASE WHEN title LIKE ? THEN w ELSE 0 END + ...)
func ScoreExpr(column string, weights []KeywordWeight) (Expr, error) {
	if len(weights) == 0 {
		return Expr{}, ErrEmptyKeywords
	}
	parts := make([]string, 0, len(weights))
	args := make([]interface{}, 0, len(weights))
	for _, kw := range weights {
		parts = append(parts, fmt.Sprintf("(CASE WHEN %s LIKE ? THEN %d ELSE 0 END)", column, kw.Weight))
		args = append(args, "%"+EscapeLike(kw.Keyword)+"%")
	}
	return Expr{SQL: "(" + strings.Join(parts, " + ") + ")", Args: args}, nil
}

// NotExpr 构造排除条件：title NOT LIKE ? AND ...；无排除词时返回空 Expr。
func NotExpr(column string, nots []string) Expr {
	if len(nots) == 0 {
		return Expr{}
	}
	parts := make([]string, 0, len(nots))
	args := make([]interface{}, 0, len(nots))
	for _, n := range nots {
		parts = append(parts, column+" NOT LIKE ?")
		args = append(args, "%"+EscapeLike(n)+"%")
	}
	return Expr{SQL: strings.Join(parts, " AND "), Args: args}
}

// ── addWhere 解析 ──

// addWhereColumns 允许出现在附加条件中的列
var addWhereColumns = map[string]bool{
	"nid":            true,
	"title":          true,
	"org_name":       true,
	"org_region":     true,
	"posted_date":    true,
	"posted_by":      true,
	"category":       true,
	"registration":   true,
	"bid_no":         true,
	"budget":         true,
	"classification": true,
	"is_selected":    true,
}

// termPattern 从串首匹配一个 "列 运算符 '值'" 项，值内的 '' 表示单引号；
// 第 4 组非空表示后面还接着 AND
var termPattern = regexp.MustCompile(`(?i)^\s*([a-z_]+)\s*(NOT\s+LIKE|LIKE|!=|<>|>=|<=|=|>|<)\s*'((?:[^']|'')*)'\s*(?:(AND)\s+|$)`)

// ParseAddWhere 把 "category = '공사' AND org_region LIKE '서울%'" 形式的附加条件
// 解析为参数化表达式。只接受白名单列、比较运算符与单引号字面量，其余一律拒绝。
// 逐项消费字面量后再找 AND，值里出现的 and 不会被当成连接词。
func ParseAddWhere(s string) (Expr, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return Expr{}, nil
	}

	var (
		parts []string
		args  []interface{}
	)
	for {
		m := termPattern.FindStringSubmatch(rest)
		if m == nil {
			return Expr{}, fmt.Errorf("无法解析的附加条件: %q", rest)
		}
		column := strings.ToLower(m[1])
		if !addWhereColumns[column] {
			return Expr{}, fmt.Errorf("附加条件不允许使用列 %q", m[1])
		}
		op := strings.ToUpper(strings.Join(strings.Fields(m[2]), " "))
		parts = append(parts, fmt.Sprintf("%s %s ?", column, op))
		args = append(args, strings.ReplaceAll(m[3], "''", "'"))

		rest = rest[len(m[0]):]
		if m[4] == "" {
			break
		}
		if strings.TrimSpace(rest) == "" {
			return Expr{}, fmt.Errorf("附加条件以 AND 结尾: %q", s)
		}
	}
	return Expr{SQL: strings.Join(parts, " AND "), Args: args}, nil
}
