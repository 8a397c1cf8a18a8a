package dbctx

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/trainwise-backend/internal/platform/ctxutil"
)

// Context is the request context plus the transaction a repo call joins, if any.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// New wraps ctx with no transaction.
func New(ctx context.Context) Context {
	return Context{Ctx: ctx}
}

// DB returns the handle a repo should query through: the open transaction
// when there is one, otherwise base. Both are bound to Ctx.
func (c Context) DB(base *gorm.DB) *gorm.DB {
	ctx := ctxutil.Default(c.Ctx)
	if c.Tx != nil {
		return c.Tx.WithContext(ctx)
	}
	return base.WithContext(ctx)
}
