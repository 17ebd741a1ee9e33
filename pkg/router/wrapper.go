package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

// Downloadable responses are written as raw files instead of the JSON
// envelope.
type Downloadable interface {
	FileName() string
	ContentType() string
	Content() []byte
}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := router.newContext(ginCtx)

		for _, middleware := range router.middlewares {
			var err error
			if ctx, err = middleware(ctx); err != nil {
				writeError(ginCtx, err)
				return
			}
		}

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = ginCtx.ShouldBindQuery(&req)
		default:
			err = ginCtx.ShouldBind(&req)
		}
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
			writeError(ginCtx, errorx.New(errorx.BadRequest, "Invalid request: %v", err))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			writeError(ginCtx, err)
			return
		}

		if file, ok := any(resp).(Downloadable); ok {
			ginCtx.Header("Content-Disposition", `attachment; filename="`+file.FileName()+`"`)
			ginCtx.Data(http.StatusOK, file.ContentType(), file.Content())
			return
		}

		ginCtx.JSON(http.StatusOK, newResponse(resp))
	}
}

func (r *Router) newContext(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithHTTPRequest(ctx, ginCtx.Request)
	ctx = xcontext.WithRequestUserID(ctx, ginCtx.GetHeader(UserIDHeader))
	ctx = xcontext.WithSessionID(ctx, ginCtx.GetHeader(SessionIDHeader))
	return ctx
}

func writeError(ginCtx *gin.Context, err error) {
	_ = ginCtx.Error(err)
	ginCtx.AbortWithStatusJSON(statusOf(err), newErrorResponse(err))
}
