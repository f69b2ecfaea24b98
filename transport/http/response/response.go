package response

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
)

// exposeInternal lets 500 responses carry the real error text. Only enabled in development.
var exposeInternal atomic.Bool

type Data[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type List[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    []T  `json:"data"`
}

type Error struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ExposeInternalErrors toggles whether 500 responses show the underlying error message.
func ExposeInternalErrors(enable bool) {
	exposeInternal.Store(enable)
}

// WithMessage sends a successful response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: true, Message: message})
}

// WithJSON sends a successful response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{Success: true, Data: jsonPayload})
}

// WithList sends a collection together with the number of items returned
func WithList[T any](writer http.ResponseWriter, code int, items []T) {
	if items == nil {
		items = []T{}
	}

	response(writer, code, List[T]{Success: true, Count: len(items), Data: items})
}

// WithError sends a response with an error message. Internal errors are masked outside development.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	if code >= http.StatusInternalServerError && !exposeInternal.Load() {
		errMsg = constant.ResponseErrorInternal
	}

	withFailure(writer, code, errMsg)
}

// WithNotFound sends the default response for an unknown route
func WithNotFound(writer http.ResponseWriter) {
	withFailure(writer, http.StatusNotFound, constant.ResponseErrorEndpointNotFound)
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	withFailure(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	withFailure(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func withFailure(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Error{Success: false, Error: message})
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
