package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// maxLogs bounds the in-memory request log
const maxLogs = 1000

// Server represents the mock HTTP server
type Server struct {
	config     *Config
	httpServer *http.Server
	listener   net.Listener
	logs       []RequestLog
	logsMutex  sync.RWMutex
	workdir    string
	log        *logrus.Entry
}

// NewServer creates a new mock server; relative body files resolve against
// workdir
func NewServer(config *Config, workdir string, logger *logrus.Logger) *Server {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.Host == "" {
		config.Host = "localhost"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Server{
		config:  config,
		logs:    make([]RequestLog, 0),
		workdir: workdir,
		log:     logger.WithField("component", "mock"),
	}
}

// Handler returns the request handler without binding a port
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleRequest)
}

// Start binds the listen address and serves in the background
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("Mock server stopped")
		}
	}()

	s.log.WithField("address", s.GetAddress()).Info("Mock server listening")
	return nil
}

// Run starts the server and blocks until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop()
}

// Stop stops the mock server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// handleRequest handles incoming HTTP requests
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	bodyBytes, _ := io.ReadAll(r.Body)
	r.Body.Close()
	requestBody := string(bodyBytes)

	route := s.findMatchingRoute(r)

	var status int
	var responseBody string
	var matchedRule string

	if route == nil {
		status = http.StatusNotFound
		w.Header().Set("Content-Type", "application/json")
		responseBody = fmt.Sprintf(`{"detail":"Mock server: no route configured for %s %s"}`, r.Method, r.URL.Path)
		matchedRule = "none"
	} else {
		if route.Delay > 0 {
			select {
			case <-time.After(time.Duration(route.Delay) * time.Millisecond):
			case <-r.Context().Done():
				return
			}
		}

		status = route.Status
		if status == 0 {
			status = http.StatusOK
		}

		for key, value := range route.Headers {
			w.Header().Set(key, value)
		}

		body, err := s.routeBody(route)
		if err != nil {
			status = http.StatusInternalServerError
			responseBody = fmt.Sprintf("Mock server: %v", err)
		} else {
			responseBody = body
		}

		if route.EchoFilters && err == nil {
			if echoed, err := echoFilters(responseBody, r.URL.Query()); err == nil {
				responseBody = echoed
			} else {
				s.log.WithError(err).Warn("Could not echo filters into a non-object body")
			}
		}

		matchedRule = route.Name
		if matchedRule == "" {
			matchedRule = fmt.Sprintf("%s %s", route.Method, route.Path)
		}
	}

	w.WriteHeader(status)
	w.Write([]byte(responseBody))

	duration := time.Since(start)

	if s.config.Logging {
		s.logRequest(RequestLog{
			Timestamp:   start,
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.RawQuery,
			Headers:     flattenHeaders(r.Header),
			Body:        requestBody,
			MatchedRule: matchedRule,
			Status:      status,
			Duration:    duration,
		})
	}
}

// routeBody resolves the inline body or the body file of a route
func (s *Server) routeBody(route *Route) (string, error) {
	if route.BodyFile == "" {
		return route.Body, nil
	}
	filePath := route.BodyFile
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(s.workdir, filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read body file %s: %w", route.BodyFile, err)
	}
	return string(data), nil
}

// echoFilters sets body.filters to the history filters present in query.
// Absent filters are reported as null, the way the analysis API does.
func echoFilters(body string, query map[string][]string) (string, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return "", err
	}

	filters := make(map[string]any, 3)
	for _, name := range []string{"search", "sentiment", "keyword"} {
		filters[name] = nil
		if values := query[name]; len(values) > 0 && strings.TrimSpace(values[0]) != "" {
			filters[name] = values[0]
		}
	}
	payload["filters"] = filters

	out, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// findMatchingRoute finds the first route that matches the method, path
// and required query parameters
func (s *Server) findMatchingRoute(r *http.Request) *Route {
	path := r.URL.Path
	query := r.URL.Query()

	for i := range s.config.Routes {
		route := &s.config.Routes[i]
		if !strings.EqualFold(route.Method, r.Method) {
			continue
		}

		pathType := route.PathType
		if pathType == "" {
			pathType = "exact"
		}

		matched := false
		switch pathType {
		case "exact":
			matched = route.Path == path
		case "prefix":
			matched = strings.HasPrefix(path, route.Path)
		case "regex":
			if re, err := regexp.Compile(route.Path); err == nil {
				matched = re.MatchString(path)
			}
		}
		if !matched {
			continue
		}

		queryMatched := true
		for key, want := range route.Query {
			if query.Get(key) != want {
				queryMatched = false
				break
			}
		}
		if queryMatched {
			return route
		}
	}

	return nil
}

// logRequest adds a request to the log
func (s *Server) logRequest(entry RequestLog) {
	s.log.WithFields(logrus.Fields{
		"method":   entry.Method,
		"path":     entry.Path,
		"query":    entry.Query,
		"rule":     entry.MatchedRule,
		"status":   entry.Status,
		"duration": entry.Duration,
	}).Info("Mock request")

	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}
}

// GetLogs returns all logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// ClearLogs clears all logged requests
func (s *Server) ClearLogs() {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = make([]RequestLog, 0)
}

// GetAddress returns the server address
func (s *Server) GetAddress() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port)))
}

// flattenHeaders converts http.Header to map[string]string (first value only)
func flattenHeaders(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if len(values) > 0 {
			result[key] = values[0]
		}
	}
	return result
}
