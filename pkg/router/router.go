package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/scavhunt/backend/config"
	"github.com/scavhunt/backend/pkg/errorx"
	"github.com/scavhunt/backend/pkg/ws"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)
type WebsocketHandlerFunc[Request any] func(ctx context.Context, req *Request) error

// MiddlewareFunc runs before the handler. It may enrich the context; a
// returned error aborts the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler, even when it failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx     context.Context
	mux     *http.ServeMux
	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(ctx context.Context) *Router {
	return &Router{
		ctx: ctx,
		mux: http.NewServeMux(),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

// Handle registers a raw http.Handler, bypassing middlewares and the
// response envelope.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) Handler(cfg config.ServerConfigs) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	}).Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(http.MethodGet+" "+pattern, wrapHandler(r, handler, bindQuery[Request]))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(http.MethodPost+" "+pattern, wrapHandler(r, handler, bindJSON[Request]))
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are filtered by the cors layer.
	CheckOrigin: func(*http.Request) bool { return true },
}

func Websocket[Request any](r *Router, pattern string, handler WebsocketHandlerFunc[Request]) {
	r.mux.HandleFunc(http.MethodGet+" "+pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newContext(w, req)
		defer func() { r.runClosers(ctx) }()

		ctx, err := r.runBefores(ctx)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
			return
		}

		request, err := bindQuery[Request](req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
			return
		}

		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot upgrade websocket: %v", err)
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Cannot upgrade websocket"))
			return
		}

		client := ws.NewClient(conn, xcontext.Configs(ctx).Realtime.SendBufferSize)
		defer client.Close()

		ctx = xcontext.WithWSClient(ctx, client)
		if err := handler(ctx, request); err != nil {
			ctx = xcontext.WithError(ctx, err)
		}
	})
}

func wrapHandler[Request, Response any](
	r *Router,
	handler HandlerFunc[Request, Response],
	bind func(*http.Request) (*Request, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newContext(w, req)
		defer func() { r.runClosers(ctx) }()

		ctx, err := r.runBefores(ctx)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
			return
		}

		request, err := bind(req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
			return
		}

		resp, err := handler(ctx, request)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
			return
		}

		if err := WriteJson(w, newResponse(resp)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		}
	}
}

func (r *Router) newContext(w http.ResponseWriter, req *http.Request) context.Context {
	ctx := xcontext.WithHTTPRequest(r.ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithStartTime(ctx, time.Now())
	return ctx
}

func (r *Router) runBefores(ctx context.Context) (context.Context, error) {
	for _, before := range r.befores {
		var err error
		ctx, err = before(ctx)
		if err != nil {
			return ctx, err
		}
	}

	return ctx, nil
}

// runClosers must be deferred through a closure so it sees the final ctx,
// including the error or response set by the handler.
func (r *Router) runClosers(ctx context.Context) {
	for _, closer := range r.closers {
		closer(ctx)
	}
}

func bindQuery[Request any](req *http.Request) (*Request, error) {
	values := map[string]any{}
	for key, v := range req.URL.Query() {
		if len(v) == 1 {
			values[key] = v[0]
		} else {
			values[key] = v
		}
	}

	var request Request
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &request,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(values); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid query: %v", err)
	}

	return &request, nil
}

func bindJSON[Request any](req *http.Request) (*Request, error) {
	var request Request
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid body: %v", err)
	}

	return &request, nil
}

func writeError(ctx context.Context, err error) {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		xcontext.Logger(ctx).Errorf("Unexpected error: %v", err)
	}

	if err := WriteJson(xcontext.HTTPWriter(ctx), newErrorResponse(err)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
