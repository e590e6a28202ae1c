package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cozythreads/storefront/internal/logging"
	"github.com/cozythreads/storefront/internal/mykafka"
	"github.com/cozythreads/storefront/internal/session"
)

// SessionKey returns the cart-session id from the request cookie, minting a
// fresh session (and setting the cookie) when the cookie is missing or
// invalid. Carts are anonymous; the token only names the stored blob.
func SessionKey(c echo.Context, secret []byte) (string, error) {
	if cookie, err := c.Cookie(session.Cookie); err == nil && cookie.Value != "" {
		if sid, err := session.Parse(cookie.Value, secret); err == nil {
			return sid, nil
		}
	}

	sid := session.NewID()
	token, err := session.Sign(sid, secret)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "could not create cart session")
	}
	c.SetCookie(&http.Cookie{
		Name:     session.Cookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid, nil
}

func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("Kafka publish error", "topic", topic, "error", err)
	}
}
