// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and database models.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/books-api/internal/data"
	"github.com/aoideee/books-api/internal/validator"

	"github.com/julienschmidt/httprouter"
)

// rootHandler handles GET /.
// It returns a small welcome payload so a bare request against the service
// confirms it is up and which version is running.
func (app *applicationDependencies) rootHandler(w http.ResponseWriter, r *http.Request) {
	payload := envelope{
		"message":     "Welcome to the Books API",
		"environment": app.config.environment,
		"version":     appVersion,
	}

	err := app.writeJSON(w, http.StatusOK, payload, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /api/books.
// It reads the optional author, year_from, year_to, skip, and limit query
// parameters and returns the matching books as a JSON array. All filters are
// combined with AND; skip and limit apply to the filtered result set.
// Out-of-range skip/limit values yield an empty array, never an error.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filters := data.Filters{
		Skip:     app.readInt(qs, "skip", 0),
		Limit:    app.readInt(qs, "limit", 10),
		Author:   app.readString(qs, "author", ""),
		YearFrom: app.readInt(qs, "year_from", 0),
		YearTo:   app.readInt(qs, "year_to", 0),
	}

	// Negative skip/limit values are clamped to zero rather than rejected.
	if filters.Skip < 0 {
		filters.Skip = 0
	}
	if filters.Limit < 0 {
		filters.Limit = 0
	}

	books, err := app.models.Books.GetAll(filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /api/books/:id.
// It also serves GET /api/books/stats: httprouter cannot register that
// static path next to the :id wildcard, so the literal "stats" segment is
// dispatched to statsHandler before the id is parsed.
// Responds 404 if no book with the requested ID exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	if httprouter.ParamsFromContext(r.Context()).ByName("id") == "stats" {
		app.statsHandler(w, r)
		return
	}

	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /api/books.
// It reads a JSON body containing the new book's details, validates it
// against the full schema, inserts a record, and responds with the created
// book (including its database-assigned ID) and a 201 Created status.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateBookInput

	// Decode the incoming JSON body using the safe readJSON helper.
	// readJSON enforces a 1MB limit, rejects unknown fields, and ensures a single value.
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Map the input onto a new Book struct. Any id in the body is ignored;
	// the database assigns one on insert.
	book := &data.Book{
		Title:  input.Title,
		Author: input.Author,
		Year:   input.Year,
		ISBN:   input.ISBN,
	}

	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	// Persist the book. Insert() writes the auto-generated ID back into book.
	err = app.models.Books.Insert(book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// replaceBookHandler handles PUT /api/books/:id.
// It overwrites every field of an existing book with the values from a full
// JSON body. The id from the URL always wins over any id in the body.
// Responds 404 if the book does not exist and 422 on validation failure.
func (app *applicationDependencies) replaceBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Confirm the record exists before reading the replacement payload.
	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var input data.CreateBookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Overwrite every field except the immutable id.
	book.Title = input.Title
	book.Author = input.Author
	book.Year = input.Year
	book.ISBN = input.ISBN

	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Books.Update(book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PATCH /api/books/:id.
// It reads a partial JSON body, validates only the fields that were present,
// merges them onto the existing record, and saves the result. Fields absent
// from the body are left unchanged; "isbn": null clears the stored ISBN.
// Responds 404 if the book does not exist.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var input data.UpdateBookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateBookUpdate(v, &input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	// Apply only the fields that were actually provided in the request body.
	input.Apply(book)

	err = app.models.Books.Update(book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /api/books/:id.
// It removes the matching record and responds 204 No Content with an empty
// body. Responds 404 if no book with that ID exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Books.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// statsHandler handles GET /api/books/stats.
// It returns the total book count plus per-author and per-century
// distributions, computed over the full unfiltered record set.
func (app *applicationDependencies) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.models.Books.Stats()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, stats, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
