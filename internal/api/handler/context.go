package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware
// and fast-fails before any service call: a zero user id or empty email means
// the middleware did not run or the token carried no usable identity.
func ctxIdentity(c echo.Context) (userID int64, email string, err error) {
	userID, _ = c.Get("user_id").(int64)
	email, _ = c.Get("email").(string)
	if userID == 0 || email == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, email, nil
}
