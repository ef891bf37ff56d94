package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/questdrop/backend/config"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/pkg/authenticator"
	"github.com/questdrop/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey      struct{}
	loggerKey       struct{}
	dbKey           struct{}
	httpClientKey   struct{}
	tokenEngineKey  struct{}
	sessionStoreKey struct{}
	requestUserKey  struct{}
	httpRequestKey  struct{}
	httpWriterKey   struct{}
	errorKey        struct{}
	responseKey     struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	if cfg, ok := ctx.Value(configsKey{}).(config.Configs); ok {
		return cfg
	}
	return config.Configs{}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}
	return logger.NewLogger(logger.INFO)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

func DB(ctx context.Context) *gorm.DB {
	if db, ok := ctx.Value(dbKey{}).(*gorm.DB); ok {
		return db
	}
	return nil
}

// WithDBTransaction runs fn with the context database replaced by a
// transaction. The transaction commits iff fn returns nil.
func WithDBTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return DB(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithDB(ctx, tx))
	})
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	if client, ok := ctx.Value(httpClientKey{}).(*http.Client); ok {
		return client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	if engine, ok := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken]); ok {
		return engine
	}
	return nil
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	if store, ok := ctx.Value(sessionStoreKey{}).(sessions.Store); ok {
		return store
	}
	return nil
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(requestUserKey{}).(string); ok {
		return id
	}
	return ""
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	if r, ok := ctx.Value(httpRequestKey{}).(*http.Request); ok {
		return r
	}
	return nil
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	if w, ok := ctx.Value(httpWriterKey{}).(http.ResponseWriter); ok {
		return w
	}
	return nil
}

// WithResponse records the response object a handler produced. It is only
// set when the handler succeeded, closers read it back via Response.
func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	if err, ok := ctx.Value(errorKey{}).(error); ok {
		return err
	}
	return nil
}
