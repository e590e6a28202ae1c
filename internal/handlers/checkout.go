package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cozythreads/storefront/internal/checkout"
	"github.com/cozythreads/storefront/internal/mykafka"
	"github.com/cozythreads/storefront/internal/payment"
)

type CheckoutHandler struct {
	Sessions      *checkout.Registry
	Producer      *mykafka.Producer
	SessionSecret []byte
}

// CreateIntent loads the session's cart and asks the processor for a payment
// intent covering the current total. The response mirrors the processor
// boundary: {clientSecret} on success, {error} with a non-2xx status otherwise.
func (h *CheckoutHandler) CreateIntent(c echo.Context) error {
	key, err := SessionKey(c, h.SessionSecret)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	o := h.Sessions.For(key)
	if o.State() == checkout.StateLoading {
		err = o.Load(ctx)
	} else {
		err = o.Refresh(ctx)
	}
	if err != nil {
		if errors.Is(err, checkout.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, map[string]any{"error": err.Error(), "state": o.State().String()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if o.State() == checkout.StateEmpty {
		return c.JSON(http.StatusConflict, map[string]any{
			"error": "cart is empty",
			"state": o.State().String(),
		})
	}

	// A repeat request with an unchanged cart hands back the held intent, so
	// a client that lost the secret (page reload) can resume paying.
	if o.State() == checkout.StatePaying {
		if secret := o.ClientSecret(); secret != "" {
			return c.JSON(http.StatusOK, map[string]any{"clientSecret": secret})
		}
	}

	err = o.RequestIntent(ctx)
	switch {
	case errors.Is(err, checkout.ErrIntentPending):
		return c.JSON(http.StatusAccepted, map[string]any{"state": o.State().String()})
	case errors.Is(err, checkout.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, map[string]any{"error": err.Error(), "state": o.State().String()})
	case err != nil:
		var ie *payment.IntentError
		if errors.As(err, &ie) {
			return c.JSON(http.StatusBadGateway, map[string]any{"error": ie.Message})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	secret := o.ClientSecret()
	if secret == "" {
		// The in-flight response was stale (cart changed mid-request).
		return c.JSON(http.StatusConflict, map[string]any{
			"error": "cart changed, request a new intent",
			"state": o.State().String(),
		})
	}

	publish(c, h.Producer, "checkout_events", key, map[string]any{
		"type":    "intent_created",
		"session": key,
		"total":   o.Total(),
	})
	return c.JSON(http.StatusOK, map[string]any{"clientSecret": secret})
}

// Complete reports the payment widget's confirmation result. Success clears
// the cart and ends the session; failure keeps the session in Paying with the
// processor's message surfaced for retry.
func (h *CheckoutHandler) Complete(c echo.Context) error {
	key, err := SessionKey(c, h.SessionSecret)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var req struct {
		Succeeded    bool   `json:"succeeded"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	o := h.Sessions.For(key)

	if req.Succeeded {
		if err := o.PaymentSucceeded(ctx); err != nil {
			if errors.Is(err, checkout.ErrInvalidTransition) {
				return c.JSON(http.StatusConflict, map[string]any{"error": err.Error(), "state": o.State().String()})
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		publish(c, h.Producer, "checkout_events", key, map[string]any{
			"type":    "payment_succeeded",
			"session": key,
		})
		return c.JSON(http.StatusOK, map[string]any{"state": o.State().String()})
	}

	if err := o.PaymentFailed(ctx, req.ErrorMessage); err != nil {
		if errors.Is(err, checkout.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, map[string]any{"error": err.Error(), "state": o.State().String()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{
		"state": o.State().String(),
		"error": req.ErrorMessage,
	})
}
