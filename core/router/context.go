package router

import (
	"bufio"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ResponseWriter wraps http.ResponseWriter and records the status code
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *ResponseWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(data []byte) (int, error) {
	if !w.written {
		w.status = http.StatusOK
		w.written = true
	}
	return w.ResponseWriter.Write(data)
}

// Status returns the status code written so far (200 if none yet)
func (w *ResponseWriter) Status() int {
	if !w.written {
		return http.StatusOK
	}
	return w.status
}

// Written reports whether a response has been started
func (w *ResponseWriter) Written() bool { return w.written }

// Hijack exposes the underlying connection for protocol upgrades (websocket)
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

// Context carries the request, response writer, path params and
// per-request values through the handler chain.
type Context struct {
	Request *http.Request
	Writer  *ResponseWriter

	params map[string]string

	mu     sync.RWMutex
	values map[string]any
}

func newContext(w http.ResponseWriter, req *http.Request) *Context {
	return &Context{
		Request: req,
		Writer:  &ResponseWriter{ResponseWriter: w},
	}
}

// JSON writes a JSON response with the given status code
func (c *Context) JSON(status int, body any) error {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Writer.WriteHeader(status)
	return json.NewEncoder(c.Writer).Encode(body)
}

// Redirect sends an HTTP redirect
func (c *Context) Redirect(status int, location string) error {
	http.Redirect(c.Writer, c.Request, location, status)
	return nil
}

// Query returns a URL query parameter
func (c *Context) Query(name string) string {
	return c.Request.URL.Query().Get(name)
}

// Param returns a path parameter
func (c *Context) Param(name string) string {
	return c.params[name]
}

// FormFile returns an uploaded file by form field name
func (c *Context) FormFile(name string) (*multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return nil, err
	}
	_, header, err := c.Request.FormFile(name)
	return header, err
}

// ShouldBind decodes the JSON body into obj and runs struct validation
func (c *Context) ShouldBind(obj any) error {
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := json.NewDecoder(c.Request.Body).Decode(obj); err != nil {
			return err
		}
	}
	return validate.Struct(obj)
}

// Set stores a per-request value
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = value
}

// Get retrieves a per-request value
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[key]
	return value, ok
}

// GetUint returns a stored uint value, or 0 when absent
func (c *Context) GetUint(key string) uint {
	if value, ok := c.Get(key); ok {
		switch v := value.(type) {
		case uint:
			return v
		case int:
			return uint(v)
		case int64:
			return uint(v)
		case float64:
			return uint(v)
		}
	}
	return 0
}

// GetString returns a stored string value, or "" when absent
func (c *Context) GetString(key string) string {
	if value, ok := c.Get(key); ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

// ClientIP returns the remote client address, honoring X-Forwarded-For
func (c *Context) ClientIP() string {
	if forwarded := c.Request.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.Index(forwarded, ","); idx > 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
