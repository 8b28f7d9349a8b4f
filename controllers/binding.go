package controllers

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/services"
)

var errInvalidBody = errors.New("invalid request body")

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// Report JSON field names so handlers can map failures to messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
}

// bindStrictJSON decodes the body into dst, rejecting unknown fields and
// trailing data, then runs the binding validators.
func bindStrictJSON(ctx *gin.Context, dst interface{}) error {
	if ctx.Request.Body == nil {
		return errInvalidBody
	}
	dec := json.NewDecoder(ctx.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errInvalidBody
	}
	return binding.Validator.ValidateStruct(dst)
}

// failedField names the JSON field that made bindStrictJSON fail, or "".
func failedField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}
	return ""
}

// bindError maps a binding failure to the message registered for the failing
// field, falling back to a generic one.
func bindError(err error, messages map[string]string) string {
	if msg, ok := messages[failedField(err)]; ok {
		return msg
	}
	return "Invalid request body"
}

func respondError(ctx *gin.Context, svcErr *services.ServiceError) {
	ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
}
