package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/model"
	"bidwatch/backend/internal/repository"
)

// ── 数据库浏览模块业务错误 ──

var (
	ErrStatementRequired = errors.New("SQL 不能为空")
	ErrStatementNotRead  = errors.New("只允许单条 SELECT / SHOW / DESCRIBE 语句")
)

// 只读语句的开头关键字；导出到文件的子句一律拒绝
var (
	readOnlyStatement = regexp.MustCompile(`(?is)^(SELECT|SHOW|DESCRIBE|DESC|EXPLAIN)\s`)
	fileWriteClause   = regexp.MustCompile(`(?i)\bINTO\s+(OUTFILE|DUMPFILE)\b`)
)

// DatabaseService 管理员数据库浏览业务接口
type DatabaseService interface {
	Tables(ctx context.Context, caller *dto.Caller) ([]*dto.TableInfo, error)
	Query(ctx context.Context, caller *dto.Caller, stmt string) (*dto.QueryResult, error)
}

type databaseService struct {
	repo    *repository.Repository
	maxRows int
	logger  *zap.Logger
}

// NewDatabaseService 创建 DatabaseService 实例
func NewDatabaseService(repo *repository.Repository, maxRows int, logger *zap.Logger) DatabaseService {
	return &databaseService{repo: repo, maxRows: maxRows, logger: logger}
}

func (s *databaseService) Tables(ctx context.Context, caller *dto.Caller) ([]*dto.TableInfo, error) {
	if !caller.HasRole(model.RoleAdmin) {
		return nil, ErrNoPermission
	}
	cols, err := s.repo.Database.Columns(ctx)
	if err != nil {
		s.logger.Error("读取表结构失败", zap.Error(err))
		return nil, err
	}

	var (
		tables []*dto.TableInfo
		cur    *dto.TableInfo
	)
	for _, c := range cols {
		if cur == nil || cur.Name != c.TableName {
			cur = &dto.TableInfo{Name: c.TableName, Columns: []*dto.ColumnInfo{}}
			tables = append(tables, cur)
		}
		cur.Columns = append(cur.Columns, &dto.ColumnInfo{
			Name:     c.ColumnName,
			Type:     c.ColumnType,
			Nullable: strings.EqualFold(c.IsNullable, "YES"),
			Key:      c.ColumnKey,
		})
	}
	if tables == nil {
		tables = []*dto.TableInfo{}
	}
	return tables, nil
}

func (s *databaseService) Query(ctx context.Context, caller *dto.Caller, stmt string) (*dto.QueryResult, error) {
	if !caller.HasRole(model.RoleAdmin) {
		return nil, ErrNoPermission
	}
	stmt, err := normalizeStatement(stmt)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.Database.Query(ctx, stmt, s.maxRows)
	if err != nil {
		s.logger.Warn("执行只读查询失败", zap.String("sql", stmt), zap.Error(err))
		return nil, err
	}

	rows := make([]interface{}, 0, len(res.Rows))
	for _, r := range res.Rows {
		for k, v := range r {
			if t, ok := v.(time.Time); ok {
				r[k] = t.Format(dto.TimeLayout)
			}
		}
		rows = append(rows, r)
	}
	return &dto.QueryResult{
		Columns:   res.Columns,
		Rows:      dto.JSON{Value: rows},
		RowCount:  int32(len(rows)),
		Truncated: res.Truncated,
	}, nil
}

// normalizeStatement 去掉结尾分号，拒绝多语句与写语句
func normalizeStatement(stmt string) (string, error) {
	stmt = strings.TrimSpace(stmt)
	stmt = strings.TrimSpace(strings.TrimRight(stmt, ";"))
	if stmt == "" {
		return "", ErrStatementRequired
	}
	if strings.Contains(stmt, ";") || !readOnlyStatement.MatchString(stmt+" ") || fileWriteClause.MatchString(stmt) {
		return "", ErrStatementNotRead
	}
	return stmt, nil
}
