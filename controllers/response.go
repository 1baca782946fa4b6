package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"ecommerce-backend/logging"
	"ecommerce-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var kindStatus = map[models.ErrorKind]int{
	models.KindNotFound:     http.StatusNotFound,
	models.KindValidation:   http.StatusBadRequest,
	models.KindBusinessRule: http.StatusBadRequest,
	models.KindUnauthorized: http.StatusUnauthorized,
	models.KindUpstream:     http.StatusBadGateway,
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondPage[T any](c *gin.Context, message string, page models.Page[T]) {
	c.JSON(http.StatusOK, models.NewPaginationResponse(message, page))
}

// respondError maps err to a status and the error envelope. Errors that are
// not AppErrors are logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		_ = c.Error(err)
		logging.From(c).Error().Err(err).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Internal server error",
			Error:   "INTERNAL_ERROR",
		})
		return
	}

	status, ok := kindStatus[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	code := appErr.Code
	if code == "" {
		code = string(appErr.Kind)
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		logging.From(c).Error().Err(err).Str("code", code).Msg("request failed")
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Error:   code,
	})
}

// bindError turns a gin binding failure into a validation error response.
func bindError(c *gin.Context, err error) {
	respondError(c, models.ValidationError("%s", describeBindError(err)))
}

func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describeField(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return "malformed JSON body"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %s must be %s", typeErr.Field, typeErr.Type)
	}
	return "invalid request body"
}

func describeField(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	}
	return fmt.Sprintf("%s failed on %s", field, fe.Tag())
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.ValidationError("invalid %s: %q", name, c.Param(name))
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.ValidationError("%s must be an integer", name)
	}
	return v, nil
}

// parsePageRequest reads page (0-based), size, sortBy and sortDir.
func parsePageRequest(c *gin.Context) (models.PageRequest, error) {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return models.PageRequest{}, err
	}
	size, err := queryInt(c, "size", models.DefaultPageSize)
	if err != nil {
		return models.PageRequest{}, err
	}
	if page < 0 || page > models.MaxPage {
		return models.PageRequest{}, models.ValidationError("page must be between 0 and %d", models.MaxPage)
	}
	if size < 1 || size > models.MaxPageSize {
		return models.PageRequest{}, models.ValidationError("size must be between 1 and %d", models.MaxPageSize)
	}

	return models.PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  c.Query("sortBy"),
		SortDir: models.SortDirection(strings.ToUpper(c.Query("sortDir"))),
	}, nil
}
