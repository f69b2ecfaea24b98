package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Recover turns a handler panic into a 500 envelope instead of a dropped connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			// http.ErrAbortHandler is the documented way to abort a response; let net/http handle it.
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			log.Error().
				Str("panic", fmt.Sprint(rec)).
				Str("stack", string(debug.Stack())).
				Str("path", r.URL.Path).
				Msg("recovered from panic")

			response.WithError(w, failure.InternalError(fmt.Errorf("panic: %v", rec)))
		}()

		next.ServeHTTP(w, r)
	})
}
