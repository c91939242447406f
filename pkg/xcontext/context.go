package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/scavhunt/backend/config"
	"github.com/scavhunt/backend/pkg/logger"
	"github.com/scavhunt/backend/pkg/ws"

	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
	errorKey       struct{}
	startTimeKey   struct{}
	sessionIDKey   struct{}
	wsClientKey    struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Configs{}
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger returns the logger stored in ctx. A silent logger is returned if
// none was set, so callers never need a nil check.
func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.New("development", logger.SILENCE)
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the database handle (or the running transaction) bound to ctx.
func DB(ctx context.Context) *gorm.DB {
	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db.WithContext(ctx)
}

// Transaction runs fn inside a database transaction. The context given to fn
// carries the transaction, so repositories called with it join the
// transaction transparently.
func Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return DB(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithDB(ctx, tx))
	})
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, _ := ctx.Value(httpRequestKey{}).(*http.Request)
	return r
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, _ := ctx.Value(httpWriterKey{}).(http.ResponseWriter)
	return w
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err, _ := ctx.Value(errorKey{}).(error)
	return err
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionID returns the id of the realtime session handling the current
// event, or an empty string outside of a websocket session.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

func WithWSClient(ctx context.Context, c *ws.Client) context.Context {
	return context.WithValue(ctx, wsClientKey{}, c)
}

func WSClient(ctx context.Context) *ws.Client {
	c, _ := ctx.Value(wsClientKey{}).(*ws.Client)
	return c
}
