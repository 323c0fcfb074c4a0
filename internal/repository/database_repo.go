package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

// ColumnMeta information_schema.columns 中的一列
type ColumnMeta struct {
	TableName  string `gorm:"column:table_name"`
	ColumnName string `gorm:"column:column_name"`
	ColumnType string `gorm:"column:column_type"`
	IsNullable string `gorm:"column:is_nullable"`
	ColumnKey  string `gorm:"column:column_key"`
}

// QueryRows 只读查询结果
type QueryRows struct {
	Columns   []string
	Rows      []map[string]interface{}
	Truncated bool
}

// DatabaseRepository 管理员数据库浏览接口
type DatabaseRepository interface {
	// Columns 当前库所有表的列，按表名与列序排列
	Columns(ctx context.Context) ([]ColumnMeta, error)
	// Query 在只读事务中执行单条语句，最多读取 maxRows 行
	Query(ctx context.Context, stmt string, maxRows int) (*QueryRows, error)
}

type databaseRepo struct {
	db *gorm.DB
}

// NewDatabaseRepo 创建 DatabaseRepository 实例
func NewDatabaseRepo(db *gorm.DB) DatabaseRepository {
	return &databaseRepo{db: db}
}

func (r *databaseRepo) Columns(ctx context.Context) ([]ColumnMeta, error) {
	var cols []ColumnMeta
	err := r.db.WithContext(ctx).Raw(`
		SELECT table_name AS table_name, column_name AS column_name, column_type AS column_type,
		       is_nullable AS is_nullable, column_key AS column_key
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		ORDER BY table_name, ordinal_position`).
		Scan(&cols).Error
	return cols, err
}

func (r *databaseRepo) Query(ctx context.Context, stmt string, maxRows int) (*QueryRows, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	tx, err := sqlDB.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("开启只读事务失败: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	rows, err := tx.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &QueryRows{Columns: columns, Rows: []map[string]interface{}{}}
	for rows.Next() {
		if len(result.Rows) >= maxRows {
			result.Truncated = true
			break
		}
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}
