package graph

import (
	"context"

	"go.uber.org/zap"

	"bidwatch/backend/internal/dto"
)

func (r *Resolver) DatabaseTables(ctx context.Context) ([]*dto.TableInfo, error) {
	rows, err := r.svc.Database.Tables(ctx, caller(ctx))
	return list(r, "databaseTables", rows, err)
}

// DatabaseQuery 执行失败时把数据库错误原文返回给管理员，便于修改语句
func (r *Resolver) DatabaseQuery(ctx context.Context, args struct{ SQL string }) (*dto.QueryResult, error) {
	res, err := r.svc.Database.Query(ctx, caller(ctx), args.SQL)
	if err == nil {
		return res, nil
	}
	if code, ok := classify(err); ok {
		return nil, &Error{Message: err.Error(), Code: code}
	}
	r.logger.Warn("GraphQL 查询失败", zap.String("op", "databaseQuery"), zap.Error(err))
	return nil, &Error{Message: "Query failed: " + err.Error(), Code: CodeBadRequest}
}
