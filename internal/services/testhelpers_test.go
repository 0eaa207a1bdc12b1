package services

import (
	"context"

	"github.com/yungbote/personamatch-backend/internal/platform/dbctx"
)

func testDBC(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }
