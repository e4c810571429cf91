package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/base2go/internal/telemetry"
	"github.com/qdm12/reprint"
)

func registerWheelEndpoints(rest *echo.Echo, store *telemetry.Store) {
	group := rest.Group("/wheel")

	group.GET("/", func(c echo.Context) error {
		data := reprint.This(store.Wheels())
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		id := c.Param(urlParamId)
		data, exists := store.Wheel(id)
		if !exists {
			return returnNotFound(c, id)
		} else {
			return c.JSONPretty(http.StatusOK, data, indentationChar)
		}
	})
}
