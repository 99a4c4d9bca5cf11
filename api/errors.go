package api

import (
	"errors"
	"fmt"
	"strings"
)

// TransportError はHTTPステータスが成功以外だった場合のエラーです
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GraphQL HTTP %d: %s", e.StatusCode, e.Body)
}

// GraphQLError はレスポンスの errors 配列の1要素です
type GraphQLError struct {
	Type    string        `json:"type,omitempty"`
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// ApplicationError はHTTP 200でも errors が返された場合のエラーです
type ApplicationError struct {
	Errors []GraphQLError
}

func (e *ApplicationError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		messages = append(messages, ge.Message)
	}
	return "GraphQL errors: " + strings.Join(messages, "; ")
}

// NotFound はすべてのエラーが NOT_FOUND 種別の場合に true を返します
func (e *ApplicationError) NotFound() bool {
	if len(e.Errors) == 0 {
		return false
	}
	for _, ge := range e.Errors {
		if ge.Type != "NOT_FOUND" {
			return false
		}
	}
	return true
}

// IsNotFound は err が「対象が存在しない」ことを示すかを判定します
func IsNotFound(err error) bool {
	var appErr *ApplicationError
	return errors.As(err, &appErr) && appErr.NotFound()
}
