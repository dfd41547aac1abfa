package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pmdash/pmdash/pkg/chat"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router) {
	r.Use(requestLogger)
	r.Use(chatUser)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)
		log.WithFields(log.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start),
		}).Debug("request handled")
	})
}

// chatUser propagates the X-Chat-User header into the request context.
func chatUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		userId := strings.TrimSpace(req.Header.Get(chat.HeaderUser))
		if userId == "" {
			next.ServeHTTP(w, req)
			return
		}
		if strings.Contains(userId, "/") {
			http.Error(w, "invalid chat user", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, req.WithContext(chat.WithUser(req.Context(), userId)))
	})
}
