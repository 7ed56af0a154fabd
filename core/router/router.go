package router

import (
	"net/http"
	"strings"
)

// HandlerFunc is the signature every route handler implements
type HandlerFunc func(*Context) error

// MiddlewareFunc wraps a handler with additional behavior
type MiddlewareFunc func(HandlerFunc) HandlerFunc

type route struct {
	method   string
	segments []string
	handler  HandlerFunc
}

// Router is a small net/http router with path params, groups and middleware
type Router struct {
	routes     []*route
	middleware []MiddlewareFunc
	notFound   HandlerFunc
	static     map[string]string
}

// New creates an empty router
func New() *Router {
	return &Router{
		static: make(map[string]string),
	}
}

// Use appends global middleware. Middleware registered first runs first.
func (r *Router) Use(mw ...MiddlewareFunc) {
	r.middleware = append(r.middleware, mw...)
}

// Group creates a route group with the given prefix
func (r *Router) Group(prefix string) *RouterGroup {
	return &RouterGroup{router: r, prefix: strings.TrimSuffix(prefix, "/")}
}

// Static serves files under root at the given URL prefix
func (r *Router) Static(prefix, root string) {
	r.static[strings.TrimSuffix(prefix, "/")] = root
}

// NotFound sets the handler invoked when no route matches
func (r *Router) NotFound(handler HandlerFunc) {
	r.notFound = handler
}

func (r *Router) GET(path string, handler HandlerFunc)    { r.handle(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc)   { r.handle(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)    { r.handle(http.MethodPut, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) { r.handle(http.MethodDelete, path, handler) }

func (r *Router) handle(method, path string, handler HandlerFunc) {
	r.routes = append(r.routes, &route{
		method:   method,
		segments: splitPath(path),
		handler:  handler,
	})
}

// Handler returns the router as a plain http.Handler
func (r *Router) Handler() http.Handler {
	return http.HandlerFunc(r.serveHTTP)
}

// Run starts an HTTP server on the given address
func (r *Router) Run(addr string) error {
	return http.ListenAndServe(addr, r.Handler())
}

func (r *Router) serveHTTP(w http.ResponseWriter, req *http.Request) {
	// Static file prefixes take priority
	for prefix, root := range r.static {
		if strings.HasPrefix(req.URL.Path, prefix+"/") {
			file := strings.TrimPrefix(req.URL.Path, prefix+"/")
			http.ServeFile(w, req, root+"/"+file)
			return
		}
	}

	ctx := newContext(w, req)

	matched, params := r.match(req.Method, req.URL.Path)
	if matched == nil {
		if r.notFound != nil {
			_ = r.chain(r.notFound)(ctx)
			return
		}
		_ = ctx.JSON(http.StatusNotFound, map[string]any{"error": "Not found"})
		return
	}

	ctx.params = params
	if err := r.chain(matched.handler)(ctx); err != nil {
		// Handlers report their own status; an escaped error means something
		// went wrong before a response was written.
		if !ctx.Writer.Written() {
			_ = ctx.JSON(http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
		}
	}
}

func (r *Router) chain(handler HandlerFunc) HandlerFunc {
	h := handler
	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](h)
	}
	return h
}

func (r *Router) match(method, path string) (*route, map[string]string) {
	segments := splitPath(path)

	for _, rt := range r.routes {
		if rt.method != method {
			continue
		}
		if params, ok := matchSegments(rt.segments, segments); ok {
			return rt, params
		}
	}
	return nil, nil
}

func matchSegments(pattern, actual []string) (map[string]string, bool) {
	var params map[string]string

	for i, seg := range pattern {
		// Catch-all captures the rest of the path
		if strings.HasPrefix(seg, "*") {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = strings.Join(actual[i:], "/")
			return params, true
		}
		if i >= len(actual) {
			return nil, false
		}
		if strings.HasPrefix(seg, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = actual[i]
			continue
		}
		if seg != actual[i] {
			return nil, false
		}
	}

	if len(actual) != len(pattern) {
		return nil, false
	}
	return params, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// RouterGroup scopes routes under a prefix with its own middleware
type RouterGroup struct {
	router     *Router
	prefix     string
	middleware []MiddlewareFunc
}

// Group creates a nested group
func (g *RouterGroup) Group(prefix string) *RouterGroup {
	return &RouterGroup{
		router:     g.router,
		prefix:     g.prefix + strings.TrimSuffix(prefix, "/"),
		middleware: append([]MiddlewareFunc{}, g.middleware...),
	}
}

// Use appends middleware that applies to routes registered after the call
func (g *RouterGroup) Use(mw ...MiddlewareFunc) {
	g.middleware = append(g.middleware, mw...)
}

func (g *RouterGroup) GET(path string, handler HandlerFunc) {
	g.router.handle(http.MethodGet, g.prefix+path, g.wrap(handler))
}

func (g *RouterGroup) POST(path string, handler HandlerFunc) {
	g.router.handle(http.MethodPost, g.prefix+path, g.wrap(handler))
}

func (g *RouterGroup) PUT(path string, handler HandlerFunc) {
	g.router.handle(http.MethodPut, g.prefix+path, g.wrap(handler))
}

func (g *RouterGroup) DELETE(path string, handler HandlerFunc) {
	g.router.handle(http.MethodDelete, g.prefix+path, g.wrap(handler))
}

func (g *RouterGroup) wrap(handler HandlerFunc) HandlerFunc {
	h := handler
	for i := len(g.middleware) - 1; i >= 0; i-- {
		h = g.middleware[i](h)
	}
	return h
}
