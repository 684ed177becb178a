package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"agent-bridge/internal/relay"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so errors read "Missing 'from' field".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// sendRequest fields are checked in declaration order.
type sendRequest struct {
	From    string `json:"from" validate:"required"`
	To      string `json:"to" validate:"required"`
	Content string `json:"content" validate:"required"`
}

var errNoBody = &relay.ValidationError{Field: "body", Message: "No JSON body provided"}

// decodeSend reads and shape-checks a send request. Only syntax errors are
// returned unwrapped from relay.ErrValidation and surface as 500s.
func decodeSend(r *http.Request) (sendRequest, error) {
	var body *sendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return sendRequest{}, errNoBody
		case errors.As(err, &typeErr):
			return sendRequest{}, wrongType(typeErr.Field)
		}
		return sendRequest{}, fmt.Errorf("decode request body: %w", err)
	}
	if body == nil {
		return sendRequest{}, errNoBody
	}
	if err := validate.Struct(body); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return sendRequest{}, relay.MissingField(verrs[0].Field())
		}
		return sendRequest{}, fmt.Errorf("validate request body: %w", err)
	}
	if _, err := relay.ParseAgent("sender", body.From); err != nil {
		return sendRequest{}, err
	}
	if _, err := relay.ParseAgent("recipient", body.To); err != nil {
		return sendRequest{}, err
	}
	return *body, nil
}

// wrongType rejects a field that is present but not a string. An empty
// field means the body itself was not an object.
func wrongType(field string) error {
	if field == "" {
		return errNoBody
	}
	return &relay.ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Invalid '%s' field. Must be a string", field),
	}
}

func pathAgent(r *http.Request) (relay.Agent, error) {
	return relay.ParseAgent("agent", r.PathValue("agent"))
}

// historyLimit reads ?limit=, defaulting when absent.
func historyLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return relay.DefaultHistoryLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &relay.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("Invalid 'limit' parameter '%s'. Must be a positive integer", raw),
		}
	}
	return n, nil
}

func clearRequested(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("clear"), "true")
}
