package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/franciscosanchezn/gin-restaurant-api/internal/middleware"
	"github.com/franciscosanchezn/gin-restaurant-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)

	// Report validation failures with the JSON field names clients send
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// SetLogLevel aligns the package logger with the application log level
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// respondWithError maps an operation error to its HTTP status and body
func respondWithError(ctx *gin.Context, err error) {
	var validationErr models.ValidationError
	var constraintErr models.ConstraintError
	var notFoundErr models.NotFoundError

	fields := logrus.Fields{
		"request_id": ctx.GetString(middleware.RequestIDKey),
		"method":     ctx.Request.Method,
		"path":       ctx.Request.URL.Path,
	}

	switch {
	case errors.As(err, &validationErr):
		log.WithFields(fields).WithField("errors", validationErr.Errors).Debug("Request validation failed")
		ctx.JSON(http.StatusBadRequest, models.ErrorsResponse{Errors: validationErr.Errors})
	case errors.As(err, &constraintErr):
		log.WithFields(fields).WithError(constraintErr.Err).Warn("Write rejected by store constraint")
		ctx.JSON(http.StatusBadRequest, models.ErrorsResponse{Errors: []string{models.MsgValidationErrors}})
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, models.ErrorResponse{Error: notFoundErr.Error()})
	default:
		log.WithFields(fields).WithError(err).Error("Request failed")
		ctx.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.MsgInternalServer})
	}
}

// bindingErrorMessages turns a ShouldBindJSON failure into client-facing messages
func bindingErrorMessages(err error) []string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		var messages []string
		missing := false
		for _, fe := range fieldErrs {
			switch fe.Tag() {
			case "required":
				if !missing {
					missing = true
					messages = append(messages, models.MsgMissingRequiredFields)
				}
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
			}
		}
		return messages
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []string{fmt.Sprintf("%s must be a number", typeErr.Field)}
	}

	// An empty body carries none of the required fields
	if errors.Is(err, io.EOF) {
		return []string{models.MsgMissingRequiredFields}
	}

	return []string{models.MsgValidationErrors}
}
