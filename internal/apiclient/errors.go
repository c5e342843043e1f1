package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Error is a non-2xx response from the catalog API.
type Error struct {
	Status int
	Code   string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("catalog api: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("catalog api: status %d", e.Status)
}

// DetailOf returns the server-provided detail carried by err, or "".
func DetailOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

const maxErrorBody = 64 << 10

func newError(status int, body io.Reader) *Error {
	e := &Error{Status: status}
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return e
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Code   string          `json:"code"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return e
	}
	e.Code = payload.Code
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		e.Detail = strings.TrimSpace(detail)
	}
	return e
}
