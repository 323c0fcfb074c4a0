package dto

import (
	"encoding/json"
	"fmt"
)

// 时间格式
const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

// JSON 自由结构 JSON 值，对应 GraphQL 自定义标量 JSON
type JSON struct {
	Value interface{}
}

// NewJSON 包装任意值
func NewJSON(v interface{}) *JSON {
	return &JSON{Value: v}
}

// ImplementsGraphQLType 声明对应的 GraphQL 标量名
func (JSON) ImplementsGraphQLType(name string) bool { return name == "JSON" }

// UnmarshalGraphQL 接收 GraphQL 输入（变量或字面量）
func (j *JSON) UnmarshalGraphQL(input interface{}) error {
	switch input.(type) {
	case map[string]interface{}, []interface{}, string, bool, float64, int32, int64, nil:
		j.Value = input
		return nil
	default:
		return fmt.Errorf("JSON 标量不支持的输入类型 %T", input)
	}
}

// MarshalJSON 输出原始值
func (j JSON) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Value)
}

// UnmarshalJSON 便于直接解码 REST 响应
func (j *JSON) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &j.Value)
}

// ── 输入默认值辅助 ──

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func i32(p *int32, def int32) int32 {
	if p == nil {
		return def
	}
	return *p
}

func boolean(p *bool) bool {
	return p != nil && *p
}
