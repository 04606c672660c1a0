package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/pkg/token"
	"github.com/taskhive/backend/repository"
)

// Authenticate is the request-level authentication gate. It verifies the
// bearer token's signature and expiry, then requires the matching session
// to still exist in the active-token store, so a logged-out token fails
// immediately even before its exp claim passes. On success the resolved
// identities are attached as X-User-ID and X-Token-ID request headers.
func Authenticate(issuer *token.Issuer, sessions repository.SessionRepository, timeout time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractBearer(ctx)
			if tokenString == "" {
				unauthorized(ctx)
				return
			}

			userID, tokenID, err := issuer.Parse(tokenString)
			if err != nil {
				logger.Warn("rejected bearer token", zap.Error(err))
				unauthorized(ctx)
				return
			}

			stdCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			// The store evicts sessions on its own TTL, but the record's
			// expiry is still checked so a stale entry cannot outlive it.
			session, err := sessions.Get(stdCtx, userID, tokenID)
			if err != nil || session.IsExpired(time.Now()) {
				unauthorized(ctx)
				return
			}

			ctx.Request.Header.Set("X-User-ID", userID)
			ctx.Request.Header.Set("X-Token-ID", tokenID)
			next(ctx)
		}
	}
}

func unauthorized(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetBodyString(`{"status":"error","code":"UNAUTHORIZED","error":"please authenticate"}`)
}

func extractBearer(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
