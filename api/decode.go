package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/errs"
)

const maxJSONBodyBytes = 2 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so the panel can highlight the field
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a JSON body into dst. Bodies over maxJSONBodyBytes are
// rejected before decoding.
func decodeJSON(r *http.Request, payloadType string, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBodyBytes+1))
	if err != nil {
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	if len(body) > maxJSONBodyBytes {
		return errs.NewMaxBodySizeExceededError(maxJSONBodyBytes)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	return nil
}

// decodeAndValidate decodes the body and runs the struct's validate tags.
func decodeAndValidate(r *http.Request, payloadType string, dst any) error {
	if err := decodeJSON(r, payloadType, dst); err != nil {
		return err
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return errs.NewInvalidFieldError("payload", err.Error())
	}

	fe := validationErrs[0]
	field := fe.Field()
	if ns := fe.Namespace(); strings.Contains(ns, ".") {
		// drop the struct name: "Banner.image_url" -> "image_url"
		field = ns[strings.Index(ns, ".")+1:]
	}
	if fe.Tag() == "required" {
		return errs.NewMissingRequiredFieldError(field)
	}
	if fe.Param() != "" {
		return errs.NewInvalidFieldError(field, fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param()))
	}
	return errs.NewInvalidFieldError(field, "failed "+fe.Tag())
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a UUID")
	}
	return id, nil
}

// intQuery reads a non-negative integer query parameter.
func intQuery(r *http.Request, name string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errs.NewInvalidFieldError(name, "must be a non-negative integer")
	}
	return n, nil
}
