// Package apitest runs an in-memory stand-in for the RAG API so client code
// can be tested against real HTTP round trips.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"rag-console/internal/model"
)

const (
	RouteChat   = "chat"
	RouteList   = "list"
	RouteUpload = "upload"
	RouteDelete = "delete"
)

type Call struct {
	Route     string
	Method    string
	Path      string
	RequestID string
}

type failure struct {
	status int
	body   string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	docs     []model.Document
	calls    []Call
	failures map[string]failure
	nextID   int

	// ChatReply builds the reply text for a prompt. Defaults to an echo.
	ChatReply func(prompt string) string
	// Now stamps uploads.
	Now func() time.Time
}

// New starts a server that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		failures:  make(map[string]failure),
		ChatReply: func(prompt string) string { return "echo: " + prompt },
		Now:       func() time.Time { return time.Now().UTC() },
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

// Root is the API root the client should be pointed at.
func (s *Server) Root() string {
	return s.URL + "/api/v1"
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	v1.POST("/chat", s.record(RouteChat), s.chat)

	admin := v1.Group("/admin/documents")
	admin.GET("", s.record(RouteList), s.listDocuments)
	admin.POST("/upload", s.record(RouteUpload), s.uploadDocument)
	admin.DELETE("/:id", s.record(RouteDelete), s.deleteDocument)

	return router
}

// record logs the call and answers with an injected failure if one is set.
func (s *Server) record(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Route:     route,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			RequestID: c.GetHeader("X-Request-ID"),
		})
		f, failing := s.failures[route]
		s.mu.Unlock()

		if failing {
			c.Data(f.status, "application/json", []byte(f.body))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Prompt == "" {
		Error(c, http.StatusBadRequest, "Prompt is required.")
		return
	}
	OK(c, model.ChatResponse{Response: s.ChatReply(req.Prompt)})
}

func (s *Server) listDocuments(c *gin.Context) {
	OK(c, s.Documents())
}

func (s *Server) uploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		Error(c, http.StatusBadRequest, "missing file")
		return
	}

	s.mu.Lock()
	s.nextID++
	doc := model.Document{
		ID:         fmt.Sprintf("%024x", s.nextID),
		Filename:   file.Filename,
		UploadDate: s.Now(),
		FileSize:   file.Size,
	}
	s.docs = append(s.docs, doc)
	s.mu.Unlock()

	OK(c, model.UploadResult{
		Message:    "Document uploaded and processed successfully.",
		DocumentID: doc.ID,
		Filename:   doc.Filename,
	})
}

func (s *Server) deleteDocument(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	Error(c, http.StatusNotFound, "Document not found.")
}

// Seed replaces the stored documents.
func (s *Server) Seed(docs ...model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append([]model.Document(nil), docs...)
}

func (s *Server) Documents() []model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Fail makes every call to route answer status with {"detail": detail}.
func (s *Server) Fail(route string, status int, detail string) {
	s.FailRaw(route, status, fmt.Sprintf(`{"detail":%q}`, detail))
}

// FailRaw makes every call to route answer status with body as is.
func (s *Server) FailRaw(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, body: body}
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Count returns how many calls hit route.
func (s *Server) Count(route string) int {
	n := 0
	for _, call := range s.Calls() {
		if call.Route == route {
			n++
		}
	}
	return n
}

func (s *Server) Routes() []string {
	calls := s.Calls()
	out := make([]string, 0, len(calls))
	for _, call := range calls {
		out = append(out, call.Route)
	}
	return out
}

func (s *Server) String() string {
	return strings.Join(s.Routes(), ",")
}
