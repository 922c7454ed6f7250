package gqlerrors

import (
	"strings"

	"github.com/samber/lo"
)

const (
	UnauthenticatedError = "UNAUTHENTICATED"
	ForbiddenError       = "FORBIDDEN"
	UndefinedError       = "UNDEFINED_ERROR"
)

type Location struct {
	Line   int `json:"line,omitempty"`
	Column int `json:"column,omitempty"`
}

// Error is a single entry of the errors array of a GraphQL response
type Error struct {
	Extensions map[string]interface{} `json:"extensions,omitempty"`
	Message    string                 `json:"message"`
	Locations  []Location             `json:"locations,omitempty"`
	Path       []interface{}          `json:"path,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Code returns extensions.code, UndefinedError when absent
func (e *Error) Code() string {
	if code, ok := e.Extensions["code"].(string); ok && code != "" {
		return code
	}
	return UndefinedError
}

// NewError returns a graphql error with the given code and message
func NewError(code string, message string) *Error {
	return &Error{
		Message: message,
		Extensions: map[string]interface{}{
			"code": code,
		},
	}
}

// ErrorList is the errors array of a GraphQL response
type ErrorList []*Error

// Error returns a string representation of each error
func (list ErrorList) Error() string {
	return strings.Join(lo.Map(list, func(err *Error, _ int) string {
		return err.Error()
	}), ". ")
}

// HasCode reports whether any error carries the given extensions.code
func (list ErrorList) HasCode(code string) bool {
	return lo.SomeBy(list, func(err *Error) bool {
		return err.Code() == code
	})
}
