package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scavhunt/backend/pkg/errorx"
	"github.com/scavhunt/backend/pkg/router"
	"github.com/scavhunt/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		info := fmt.Sprintf("%s | %s | %s", req.Method, req.URL.Path, time.Since(xcontext.StartTime(ctx)))
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d | %s", info, errx.Code, errx.Message)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d | %v", info, -1, err)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
