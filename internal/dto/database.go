package dto

// TableInfo 数据表结构
type TableInfo struct {
	Name    string
	Columns []*ColumnInfo
}

// ColumnInfo 列信息
type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
	Key      string
}

// QueryResult 只读 SQL 查询结果，行以列名为键
type QueryResult struct {
	Columns   []string
	Rows      JSON
	RowCount  int32
	Truncated bool
}
