package middleware

import (
	"log"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Logging writes one access line per request through logger.
func Logging(logger *log.Logger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&chimw.DefaultLogFormatter{Logger: logger, NoColor: true})
}
