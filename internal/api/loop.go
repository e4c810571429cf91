package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/base2go/internal/telemetry"
)

func registerLoopEndpoints(rest *echo.Echo, store *telemetry.Store) {
	group := rest.Group("/loop")

	group.GET("/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, store.Loop(), indentationChar)
	})
}
