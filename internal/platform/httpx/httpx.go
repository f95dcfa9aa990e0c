package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/validate"
)

// ParamID parses the :id path parameter as a positive integer.
func ParamID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid id")
	}
	return id, nil
}

// Bind decodes the JSON body into v.
func Bind(c echo.Context, v interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	return nil
}

// QueryInt64 reads an optional integer filter.
func QueryInt64(c echo.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperr.BadRequest("invalid " + name)
	}
	return &v, nil
}

// QueryInt reads an optional small integer filter.
func QueryInt(c echo.Context, name string) (*int, error) {
	v, err := QueryInt64(c, name)
	if err != nil || v == nil {
		return nil, err
	}
	n := int(*v)
	return &n, nil
}

// QueryDate reads an optional YYYY-MM-DD filter.
func QueryDate(c echo.Context, name string) (string, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return "", nil
	}
	if !validate.Date(raw) {
		return "", apperr.BadRequest("invalid " + name + ", expected YYYY-MM-DD")
	}
	return raw, nil
}

// QueryString reads an optional trimmed string filter.
func QueryString(c echo.Context, name string) string {
	return strings.TrimSpace(c.QueryParam(name))
}

// Envelope writes {message, key: v}.
func Envelope(c echo.Context, status int, message, key string, v interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"message": message,
		key:       v,
	})
}

// Created writes a 201 envelope.
func Created(c echo.Context, message, key string, v interface{}) error {
	return Envelope(c, http.StatusCreated, message, key, v)
}

// OK writes a 200 envelope.
func OK(c echo.Context, message, key string, v interface{}) error {
	return Envelope(c, http.StatusOK, message, key, v)
}

// Deleted writes the 200 body returned after a delete: {message, idKey: id}.
func Deleted(c echo.Context, message, idKey string, id int64) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": message,
		idKey:     id,
	})
}
