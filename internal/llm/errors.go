package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/sashabaranov/go-openai"
)

var ErrEmptyResponse = errors.New("empty response from model")

// Describe renders a generation failure as a single "ERROR [kind]: ..." line.
func Describe(err error) string {
	var (
		apiErr *openai.APIError
		reqErr *openai.RequestError
		netErr net.Error
		urlErr *url.Error
	)
	switch {
	case errors.Is(err, ErrEmptyResponse):
		return fmt.Sprintf("ERROR [EmptyResponse]: %v", err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Sprintf("ERROR [Timeout]: Request timed out: %v", err)
	case errors.As(err, &apiErr):
		return describeStatus(apiErr.HTTPStatusCode, apiErr.Message)
	case errors.As(err, &reqErr):
		msg := string(reqErr.Body)
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return describeStatus(reqErr.HTTPStatusCode, msg)
	case errors.As(err, &urlErr):
		return fmt.Sprintf("ERROR [Connection]: Could not connect to API: %v", urlErr.Err)
	default:
		return fmt.Sprintf("ERROR [Unexpected]: %v", err)
	}
}

func describeStatus(code int, msg string) string {
	if code == http.StatusTooManyRequests {
		return fmt.Sprintf("ERROR [RateLimit]: Rate limit exceeded: %s", msg)
	}
	return fmt.Sprintf("ERROR [API Status %d]: %s", code, msg)
}
