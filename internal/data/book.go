// Package data provides the data models and database interaction logic
// for the books API.
package data

import (
	"time"
	"unicode/utf8"

	"github.com/aoideee/books-api/internal/validator"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID     int64   `json:"id"`     // Unique identifier assigned by the database
	Title  string  `json:"title"`  // Title of the book
	Author string  `json:"author"` // Author of the book
	Year   int     `json:"year"`   // Year of publication
	ISBN   *string `json:"isbn"`   // Optional ISBN; nil round-trips as SQL NULL / JSON null
}

// CreateBookInput holds the fields a client supplies when creating a book or
// fully replacing one. All fields except ISBN are required. An "id" key is
// accepted so clients may echo back a record they previously fetched, but it
// is never applied — the database (POST) or the URL (PUT) decides the id.
type CreateBookInput struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   int     `json:"year"`
	ISBN   *string `json:"isbn"`
}

// UpdateBookInput holds the fields a client may supply when partially
// updating a book. Every field carries an explicit presence marker so that
// an omitted key, an explicit null, and a real value are all distinguishable.
// Only fields that were present in the body are applied.
type UpdateBookInput struct {
	ID     Optional[int64]  `json:"id"` // accepted and ignored; the URL id wins
	Title  Optional[string] `json:"title"`
	Author Optional[string] `json:"author"`
	Year   Optional[int]    `json:"year"`
	ISBN   Optional[string] `json:"isbn"`
}

// Apply copies every field that was present in the input onto book,
// leaving omitted fields untouched. ISBN is the only nullable field, so an
// explicit "isbn": null clears the stored value. Explicit nulls on the
// required fields are rejected by ValidateBookUpdate before Apply runs.
func (input *UpdateBookInput) Apply(book *Book) {
	if input.Title.Set && !input.Title.Null {
		book.Title = input.Title.Value
	}
	if input.Author.Set && !input.Author.Null {
		book.Author = input.Author.Value
	}
	if input.Year.Set && !input.Year.Null {
		book.Year = input.Year.Value
	}
	if input.ISBN.Set {
		if input.ISBN.Null {
			book.ISBN = nil
		} else {
			isbn := input.ISBN.Value
			book.ISBN = &isbn
		}
	}
}

// ValidateBook checks a complete book record against the full schema used
// by create and full-replace. The upper bound on year is the current
// calendar year at the time of validation, not creation.
func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(utf8.RuneCountInString(book.Title) <= 200, "title", "must not be more than 200 characters long")

	v.Check(book.Author != "", "author", "must be provided")
	v.Check(utf8.RuneCountInString(book.Author) <= 100, "author", "must not be more than 100 characters long")

	v.Check(book.Year != 0, "year", "must be provided")
	v.Check(book.Year >= 1000, "year", "must be 1000 or later")
	v.Check(book.Year <= time.Now().Year(), "year", "must not be in the future")

	if book.ISBN != nil {
		validateISBN(v, *book.ISBN)
	}
}

// ValidateBookUpdate checks a partial-update payload. Only fields that were
// present in the body are validated, against the same per-field rules as
// the full schema. The required fields cannot be set to null; isbn can,
// which clears it.
func ValidateBookUpdate(v *validator.Validator, input *UpdateBookInput) {
	if input.Title.Set {
		v.Check(!input.Title.Null, "title", "must not be null")
		v.Check(input.Title.Null || input.Title.Value != "", "title", "must be provided")
		v.Check(utf8.RuneCountInString(input.Title.Value) <= 200, "title", "must not be more than 200 characters long")
	}

	if input.Author.Set {
		v.Check(!input.Author.Null, "author", "must not be null")
		v.Check(input.Author.Null || input.Author.Value != "", "author", "must be provided")
		v.Check(utf8.RuneCountInString(input.Author.Value) <= 100, "author", "must not be more than 100 characters long")
	}

	if input.Year.Set {
		v.Check(!input.Year.Null, "year", "must not be null")
		if !input.Year.Null {
			v.Check(input.Year.Value >= 1000, "year", "must be 1000 or later")
			v.Check(input.Year.Value <= time.Now().Year(), "year", "must not be in the future")
		}
	}

	if input.ISBN.Set && !input.ISBN.Null {
		validateISBN(v, input.ISBN.Value)
	}
}

// validateISBN holds the shared isbn length rule so the full and partial
// schemas cannot drift apart.
func validateISBN(v *validator.Validator, isbn string) {
	v.Check(utf8.RuneCountInString(isbn) >= 10, "isbn", "must be at least 10 characters long")
	v.Check(utf8.RuneCountInString(isbn) <= 13, "isbn", "must not be more than 13 characters long")
}

// BookStats is the aggregate view returned by the statistics endpoint,
// always computed over the full unfiltered record set.
type BookStats struct {
	TotalBooks     int            `json:"total_books"`
	BooksByAuthor  map[string]int `json:"books_by_author"`
	BooksByCentury map[int]int    `json:"books_by_century"`
}

// NewBookStats returns an empty BookStats with both maps initialised, so
// the JSON encoding of an empty catalog is {} rather than null.
func NewBookStats() *BookStats {
	return &BookStats{
		BooksByAuthor:  make(map[string]int),
		BooksByCentury: make(map[int]int),
	}
}

// add folds one record into the aggregate. Authors are bucketed by exact
// string; years are bucketed by century, where 1801-1900 is the 19th.
func (s *BookStats) add(author string, year int) {
	s.TotalBooks++
	s.BooksByAuthor[author]++
	s.BooksByCentury[year/100+1]++
}
