package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/woodmart/storefront/internal/core/domain"
	"github.com/woodmart/storefront/internal/core/ports"
)

// DefaultCookieName is the cookie that carries the signed session id.
const DefaultCookieName = "session"

const sessionContextKey = "session"

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	Store      ports.SessionStore
	Secret     []byte
	CookieName string
	Secure     bool
	Log        zerolog.Logger
}

// Session loads the caller's session into the context, creating an empty
// one when the cookie is missing, tampered with or points to an expired
// session. The handler's response is held back until the session has been
// written to the store: if the write fails the buffered response is dropped
// and the store error is returned instead. A destroyed session expires the
// cookie; a session that signed in moves to a new id.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			sess, fresh, err := cfg.load(ctx, c)
			if err != nil {
				return err
			}
			WithSession(c, sess)

			res := c.Response()
			header := res.Header().Clone()
			buf := &bufferedWriter{ResponseWriter: res.Writer}
			res.Writer = buf
			defer func() { res.Writer = buf.ResponseWriter }()

			herr := next(c)

			if err := cfg.persist(ctx, c, sess, fresh); err != nil {
				discard(res, header)
				return err
			}
			if err := buf.flush(); err != nil {
				cfg.Log.Error().Err(err).Msg("failed to write response")
			}
			return herr
		}
	}
}

func (cfg SessionConfig) persist(ctx context.Context, c echo.Context, sess *domain.Session, fresh bool) error {
	if sess.Destroyed() {
		c.SetCookie(cfg.cookie("", -1))
		return nil
	}

	var stale string
	if sess.RenewalPending() {
		stale = sess.Renew(uuid.NewString())
		fresh = true
	}

	if err := cfg.Store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if stale != "" {
		if err := cfg.Store.Delete(ctx, stale); err != nil {
			cfg.Log.Warn().Err(err).Str("session", stale).Msg("failed to drop previous session")
		}
	}

	if fresh {
		token, err := SignSessionID(cfg.Secret, sess.ID)
		if err != nil {
			return fmt.Errorf("sign session cookie: %w", err)
		}
		c.SetCookie(cfg.cookie(token, 0))
	}
	return nil
}

// bufferedWriter holds the status and body written by the handler until
// flush is called.
type bufferedWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *bufferedWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

func (w *bufferedWriter) flush() error {
	if w.status == 0 {
		return nil
	}
	w.ResponseWriter.WriteHeader(w.status)
	_, err := w.body.WriteTo(w.ResponseWriter)
	return err
}

// discard resets res so the error handler can write a response of its own.
func discard(res *echo.Response, header http.Header) {
	h := res.Header()
	for k := range h {
		delete(h, k)
	}
	for k, v := range header {
		h[k] = v
	}
	res.Committed = false
	res.Status = http.StatusOK
	res.Size = 0
}

func (cfg SessionConfig) load(ctx context.Context, c echo.Context) (*domain.Session, bool, error) {
	if cookie, err := c.Cookie(cfg.CookieName); err == nil {
		if sid, err := parseSessionID(cfg.Secret, cookie.Value); err == nil {
			sess, err := cfg.Store.Load(ctx, sid)
			switch {
			case err == nil:
				return sess, false, nil
			case !errors.Is(err, domain.ErrSessionNotFound):
				return nil, false, fmt.Errorf("load session: %w", err)
			}
		}
	}
	return domain.NewSession(uuid.NewString()), true, nil
}

func (cfg SessionConfig) cookie(value string, maxAge int) *http.Cookie {
	ck := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
	if maxAge < 0 {
		ck.Expires = time.Unix(0, 0)
	}
	return ck
}

// SignSessionID returns the HS256 token stored in the session cookie.
func SignSessionID(secret []byte, sid string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:       sid,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})
	return token.SignedString(secret)
}

func parseSessionID(secret []byte, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if claims.ID == "" {
		return "", errors.New("session token without id")
	}
	return claims.ID, nil
}

// WithSession stores sess in the request context.
func WithSession(c echo.Context, sess *domain.Session) {
	c.Set(sessionContextKey, sess)
}

// SessionFrom returns the session loaded by the Session middleware, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}

// IdentityFrom derives the caller identity from the context session.
func IdentityFrom(c echo.Context) domain.Identity {
	return domain.IdentityFromSession(SessionFrom(c))
}
