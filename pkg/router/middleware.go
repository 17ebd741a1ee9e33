package router

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vriksha-lab/backend/internal/common"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/logger"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

func metricsMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		method := ctx.Request.Method + " " + ctx.FullPath()
		common.PromCounters[common.HTTPRequestTotal].WithLabelValues(method, status).Inc()
		common.PromHistograms[common.HTTPRequestDurationSeconds].
			WithLabelValues(method, status).
			Observe(time.Since(start).Seconds())
	}
}

// loggerMiddleware writes one line per request. Expected failures are
// warnings, anything else is an error.
func loggerMiddleware(l logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		info := fmt.Sprintf("%s | %s | %d | %s",
			ctx.Request.Method, ctx.Request.URL.Path, ctx.Writer.Status(), time.Since(start))

		err := ctx.Errors.Last()
		if err == nil {
			l.Infof(info)
			return
		}

		var errx errorx.Error
		if errors.As(err.Err, &errx) {
			l.Warnf("%s | %d", info, errx.Code)
		} else {
			l.Errorf("%s | %v", info, err.Err)
		}
	}
}

// RequireUser rejects requests that carry no user id header.
func RequireUser(ctx context.Context) (context.Context, error) {
	if xcontext.RequestUserID(ctx) == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require a signed in user")
	}
	return ctx, nil
}
