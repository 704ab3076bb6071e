package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usermgmt/user-management-api/internal/api/metrics"
	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

const blockedOrGoneMsg = "user account is blocked or doesn't exist"

// StatusGate re-reads the caller's account on every request and rejects when
// it is gone or blocked. The read is deliberately uncached: its whole point is
// to observe status changes made after token issuance, so a still-valid 7-day
// token is neutralized on the first request after an admin block. The gate
// fails closed: a missing identity claim or an unreachable store is
// unauthorized, never a pass-through.
func StatusGate(repo ports.UserRepository, auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get("user_id").(string)
			if id == "" {
				metrics.StatusGateRejectionsTotal.WithLabelValues("missing_identity").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := repo.GetByID(c.Request().Context(), id)
			if err != nil {
				reason := "store_error"
				if errors.Is(err, domain.ErrUserNotFound) {
					reason = "not_found"
				} else {
					log.Error().Err(err).Str("user_id", id).Msg("status gate store read failed")
				}
				metrics.StatusGateRejectionsTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, blockedOrGoneMsg)
			}

			if user.Status == domain.StatusBlocked {
				metrics.StatusGateRejectionsTotal.WithLabelValues("blocked").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, blockedOrGoneMsg)
			}

			// Best-effort activity touch; never blocks the request.
			if err := auth.UpdateActivity(c.Request().Context(), id); err != nil {
				log.Warn().Err(err).Str("user_id", id).Msg("activity update failed")
			}

			return next(c)
		}
	}
}
