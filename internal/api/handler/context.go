package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxAccount extracts the account claims injected by the Auth middleware.
// A missing account id means the middleware did not run or the token carried
// no subject; either way the request is not authenticated.
func ctxAccount(c echo.Context) (accountID string, err error) {
	accountID, _ = c.Get("account_id").(string)
	if accountID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return accountID, nil
}
