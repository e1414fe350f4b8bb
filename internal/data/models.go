// internal/data/models.go
package data

import (
	"database/sql"
	"errors"
)

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
//
// Books is declared as an interface so handler tests can substitute a mock
// without a running database; NewModels wires in the real implementation.
type Models struct {
	Books interface {
		Insert(book *Book) error
		Get(id int64) (*Book, error)
		GetAll(filters Filters) ([]*Book, error)
		Update(book *Book) error
		Delete(id int64) error
		Stats() (*BookStats, error)
	}
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sql.DB) Models {
	return Models{
		Books: BookModel{DB: db},
	}
}

// Migrate creates the books table if it does not already exist. It is
// idempotent and runs on every startup, right after the connection pool is
// verified.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id     bigserial PRIMARY KEY,
			title  text      NOT NULL,
			author text      NOT NULL,
			year   integer   NOT NULL,
			isbn   text
		)`)
	return err
}

// Filters holds the pagination and filter parameters accepted by the list
// endpoint. Zero values disable the corresponding filter: an empty Author
// means no author filter, and a zero year bound means that side of the
// range is open.
type Filters struct {
	Skip     int    // Number of matching records to skip over
	Limit    int    // Maximum number of records to return
	Author   string // Case-insensitive substring match on the author column
	YearFrom int    // Inclusive lower bound on year
	YearTo   int    // Inclusive upper bound on year
}

// BookModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting book records.
type BookModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new book record to the database. After a successful insert,
// the database-assigned id is written back into the book struct.
func (m BookModel) Insert(book *Book) error {
	query := `
		INSERT INTO books (title, author, year, isbn)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return m.DB.QueryRow(query, book.Title, book.Author, book.Year, book.ISBN).Scan(&book.ID)
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT id, title, author, year, isbn
		FROM books
		WHERE id = $1`

	var book Book
	err := m.DB.QueryRow(query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Year,
		&book.ISBN,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAll retrieves the books matching the given filters, in natural (id)
// order, with Skip/Limit applied over the filtered result set.
//
// The filters are pushed down into a single static query: each predicate is
// paired with a sentinel check so that an empty author or a zero year bound
// turns that predicate off. This keeps filtering, offset, and cap inside
// the database while preserving AND-of-predicates semantics.
func (m BookModel) GetAll(filters Filters) ([]*Book, error) {
	query := `
		SELECT id, title, author, year, isbn
		FROM books
		WHERE (strpos(lower(author), lower($1)) > 0 OR $1 = '')
		AND (year >= $2 OR $2 = 0)
		AND (year <= $3 OR $3 = 0)
		ORDER BY id
		LIMIT $4 OFFSET $5`

	rows, err := m.DB.Query(query, filters.Author, filters.YearFrom, filters.YearTo, filters.Limit, filters.Skip)
	if err != nil {
		return nil, err
	}
	// Always close the result set when we are done to free the database connection.
	defer rows.Close()

	// Start with an empty (non-nil) slice so an empty result encodes as [].
	books := []*Book{}

	for rows.Next() {
		var book Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Year,
			&book.ISBN,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}

	// Check for any error that occurred while iterating the rows.
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

// Update saves all fields of book back to the database, matching on book.ID.
// Returns ErrRecordNotFound if the record no longer exists.
func (m BookModel) Update(book *Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, year = $3, isbn = $4
		WHERE id = $5
		RETURNING id`

	err := m.DB.QueryRow(query, book.Title, book.Author, book.Year, book.ISBN, book.ID).Scan(&book.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// Delete removes the book with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(id int64) error {
	// Guard against obviously bad IDs before touching the database.
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM books WHERE id = $1`

	// Exec returns a Result that tells us how many rows were affected.
	result, err := m.DB.Exec(query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// If no rows were deleted, the book didn't exist.
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// Stats computes the aggregate counts over the full, unfiltered book set:
// total records, records per exact author string, and records per century.
func (m BookModel) Stats() (*BookStats, error) {
	rows, err := m.DB.Query(`SELECT author, year FROM books`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := NewBookStats()

	for rows.Next() {
		var (
			author string
			year   int
		)
		if err := rows.Scan(&author, &year); err != nil {
			return nil, err
		}
		stats.add(author, year)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
