// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic and rateLimit middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → router → requireAPIKey (mutations only)
//
// Endpoints:
//
//	GET    /                    – welcome payload
//	GET    /api/books           – list books (filter + skip/limit)
//	GET    /api/books/stats     – catalog statistics (served via the :id route)
//	GET    /api/books/:id       – retrieve a single book by ID
//	POST   /api/books           – create a new book              (API key)
//	PUT    /api/books/:id       – fully replace an existing book (API key)
//	PATCH  /api/books/:id       – partially update a book        (API key)
//	DELETE /api/books/:id       – delete a book by ID            (API key)
//
// httprouter refuses to register the static /api/books/stats path alongside
// the :id wildcard, so showBookHandler dispatches the literal "stats"
// segment to statsHandler.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/", app.rootHandler)

	// Read-only routes: no credential required.
	router.HandlerFunc(http.MethodGet, "/api/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/api/books/:id", app.showBookHandler)

	// Mutating routes: requireAPIKey runs before the handler, so an invalid
	// credential is rejected before the request body is ever read.
	router.HandlerFunc(http.MethodPost, "/api/books", app.requireAPIKey(app.createBookHandler))
	router.HandlerFunc(http.MethodPut, "/api/books/:id", app.requireAPIKey(app.replaceBookHandler))
	router.HandlerFunc(http.MethodPatch, "/api/books/:id", app.requireAPIKey(app.updateBookHandler))
	router.HandlerFunc(http.MethodDelete, "/api/books/:id", app.requireAPIKey(app.deleteBookHandler))

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from rateLimit and router alike.
	return app.recoverPanic(app.rateLimit(router))
}
