package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"sso-portal/internal/domain"
)

// classifyError converts a domain error into a status code and a
// user-visible error page. Every login-flow failure gets its own page; none
// is masked behind a redirect to the home page, which would read as a
// silent success.
func classifyError(err error) (int, ErrorData) {
	switch {
	case errors.Is(err, domain.ErrMalformedEmail):
		return http.StatusBadRequest, ErrorData{
			Title:   "Invalid email address",
			Message: "Enter an address like you@company.com — the domain after the @ selects your identity provider.",
		}

	case errors.Is(err, domain.ErrUnknownOrganization):
		return http.StatusNotFound, ErrorData{
			Title:   "Unknown organization",
			Message: "No identity provider is configured for that email domain.",
		}

	case errors.Is(err, domain.ErrInvalidAccessCode):
		return http.StatusUnauthorized, ErrorData{
			Title:   "Sign-in failed",
			Message: "The sign-in code is invalid, expired, or was already used. Please start again from the home page.",
		}

	case errors.Is(err, domain.ErrBrokerUnavailable):
		return http.StatusBadGateway, ErrorData{
			Title:   "Service temporarily unavailable",
			Message: "The single sign-on service could not be reached. Please try again in a moment.",
		}

	case errors.Is(err, domain.ErrBrokerAuth):
		return http.StatusInternalServerError, ErrorData{
			Title:   "Service misconfigured",
			Message: "This application cannot authenticate with its single sign-on service. Please contact the administrator.",
		}

	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, ErrorData{
			Title:   "Too many attempts",
			Message: "Please wait a moment before trying again.",
		}

	default:
		return http.StatusInternalServerError, ErrorData{
			Title:   "Something went wrong",
			Message: "An unexpected error occurred. Please try again.",
		}
	}
}

// renderError writes the error page for err. A broker credential failure is
// a configuration fault of this service, not a per-user condition, so it is
// additionally logged at error severity.
func renderError(c echo.Context, r *Renderer, err error) error {
	ctx := c.Request().Context()
	if errors.Is(err, domain.ErrBrokerAuth) {
		slog.ErrorContext(ctx, "broker rejected service credentials, check SSOREADY_API_KEY",
			"error", err.Error())
	}

	status, data := classifyError(err)
	page, renderErr := r.Error(data)
	if renderErr != nil {
		slog.ErrorContext(ctx, "failed to render error page", "error", renderErr.Error())
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.HTMLBlob(status, page)
}
