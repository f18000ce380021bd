package routes

import (
	"github.com/fundbridge/fundbridge/internal/apperr"
	"github.com/fundbridge/fundbridge/internal/database"
	"github.com/fundbridge/fundbridge/internal/middleware"
)

// NewAuth builds the /auth group. Its requests are rate limited per client IP
// when limit is enabled.
func NewAuth(db database.Handle, errs *apperr.Handler, limit middleware.RateLimitConfig) *Group {
	limit.Group = AuthName
	return newGroup(AuthName, AuthPrefix, db, errs, middleware.RateLimitIP(limit))
}

// NewStartups builds the /api/startups group.
func NewStartups(db database.Handle, errs *apperr.Handler) *Group {
	return newGroup(StartupsName, StartupsPrefix, db, errs)
}

// NewInvestments builds the /api/investments group.
func NewInvestments(db database.Handle, errs *apperr.Handler) *Group {
	return newGroup(InvestmentsName, InvestmentsPrefix, db, errs)
}
