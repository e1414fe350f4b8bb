package data

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/books-api/internal/validator"
)

// unmarshalInput decodes a JSON body the way the HTTP layer would, so the
// presence markers on UpdateBookInput are populated realistically.
func unmarshalInput(body string, dst any) error {
	return json.Unmarshal([]byte(body), dst)
}

// validBook returns a book that passes the full schema, for tests to break
// one field at a time.
func validBook() *Book {
	isbn := "9785170123456"
	return &Book{
		Title:  "The Master and Margarita",
		Author: "Mikhail Bulgakov",
		Year:   1967,
		ISBN:   &isbn,
	}
}

func TestValidateBookFullSchema(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name       string
		mutate     func(b *Book)
		wantField  string // empty means the book must validate cleanly
	}{
		{name: "valid book", mutate: func(b *Book) {}},
		{name: "valid without isbn", mutate: func(b *Book) { b.ISBN = nil }},
		{name: "missing title", mutate: func(b *Book) { b.Title = "" }, wantField: "title"},
		{name: "title at 200 characters", mutate: func(b *Book) { b.Title = strings.Repeat("a", 200) }},
		{name: "title over 200 characters", mutate: func(b *Book) { b.Title = strings.Repeat("a", 201) }, wantField: "title"},
		{name: "missing author", mutate: func(b *Book) { b.Author = "" }, wantField: "author"},
		{name: "author at 100 characters", mutate: func(b *Book) { b.Author = strings.Repeat("a", 100) }},
		{name: "author over 100 characters", mutate: func(b *Book) { b.Author = strings.Repeat("a", 101) }, wantField: "author"},
		{name: "missing year", mutate: func(b *Book) { b.Year = 0 }, wantField: "year"},
		{name: "year before 1000", mutate: func(b *Book) { b.Year = 999 }, wantField: "year"},
		{name: "year at lower bound", mutate: func(b *Book) { b.Year = 1000 }},
		{name: "year equal to current year", mutate: func(b *Book) { b.Year = currentYear }},
		{name: "year one past current year", mutate: func(b *Book) { b.Year = currentYear + 1 }, wantField: "year"},
		{name: "isbn at 10 characters", mutate: func(b *Book) { isbn := "1234567890"; b.ISBN = &isbn }},
		{name: "isbn at 13 characters", mutate: func(b *Book) { isbn := "1234567890123"; b.ISBN = &isbn }},
		{name: "isbn under 10 characters", mutate: func(b *Book) { isbn := "123456789"; b.ISBN = &isbn }, wantField: "isbn"},
		{name: "isbn over 13 characters", mutate: func(b *Book) { isbn := "12345678901234"; b.ISBN = &isbn }, wantField: "isbn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := validBook()
			tt.mutate(book)

			v := validator.New()
			ValidateBook(v, book)

			if tt.wantField == "" {
				assert.True(t, v.Valid(), "unexpected errors: %v", v.Errors)
			} else {
				assert.False(t, v.Valid())
				assert.Contains(t, v.Errors, tt.wantField)
			}
		})
	}
}

// Title and author limits count characters, not bytes.
func TestValidateBookCountsRunesNotBytes(t *testing.T) {
	book := validBook()
	book.Title = strings.Repeat("я", 200) // 400 bytes, 200 characters

	v := validator.New()
	ValidateBook(v, book)

	assert.True(t, v.Valid(), "unexpected errors: %v", v.Errors)
}

func TestValidateBookUpdatePartialSchema(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "empty body is valid", body: `{}`},
		{name: "single valid field", body: `{"year": 2001}`},
		{name: "all fields valid", body: `{"title": "t", "author": "a", "year": 1850, "isbn": "1234567890"}`},
		{name: "null isbn clears and is valid", body: `{"isbn": null}`},
		{name: "null title rejected", body: `{"title": null}`, wantField: "title"},
		{name: "null author rejected", body: `{"author": null}`, wantField: "author"},
		{name: "null year rejected", body: `{"year": null}`, wantField: "year"},
		{name: "empty title rejected", body: `{"title": ""}`, wantField: "title"},
		{name: "year out of range rejected", body: `{"year": 999}`, wantField: "year"},
		{name: "short isbn rejected", body: `{"isbn": "123"}`, wantField: "isbn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input UpdateBookInput
			require.NoError(t, unmarshalInput(tt.body, &input))

			v := validator.New()
			ValidateBookUpdate(v, &input)

			if tt.wantField == "" {
				assert.True(t, v.Valid(), "unexpected errors: %v", v.Errors)
			} else {
				assert.False(t, v.Valid())
				assert.Contains(t, v.Errors, tt.wantField)
			}
		})
	}

	t.Run("current year boundary", func(t *testing.T) {
		var input UpdateBookInput
		input.Year.Set = true
		input.Year.Value = currentYear + 1

		v := validator.New()
		ValidateBookUpdate(v, &input)
		assert.Contains(t, v.Errors, "year")

		input.Year.Value = currentYear
		v = validator.New()
		ValidateBookUpdate(v, &input)
		assert.True(t, v.Valid())
	})
}

func TestApplyMergesOnlySetFields(t *testing.T) {
	t.Run("empty input leaves the record unchanged", func(t *testing.T) {
		book := validBook()
		original := *book

		var input UpdateBookInput
		input.Apply(book)

		assert.Equal(t, original, *book)
	})

	t.Run("set fields overwrite, omitted fields survive", func(t *testing.T) {
		book := validBook()

		var input UpdateBookInput
		require.NoError(t, unmarshalInput(`{"year": 2001, "author": "Arkady Strugatsky"}`, &input))
		input.Apply(book)

		assert.Equal(t, 2001, book.Year)
		assert.Equal(t, "Arkady Strugatsky", book.Author)
		assert.Equal(t, "The Master and Margarita", book.Title)
		require.NotNil(t, book.ISBN)
		assert.Equal(t, "9785170123456", *book.ISBN)
	})

	t.Run("null isbn clears the stored value", func(t *testing.T) {
		book := validBook()

		var input UpdateBookInput
		require.NoError(t, unmarshalInput(`{"isbn": null}`, &input))
		input.Apply(book)

		assert.Nil(t, book.ISBN)
	})

	t.Run("an id in the body never moves the record", func(t *testing.T) {
		book := validBook()
		book.ID = 7

		var input UpdateBookInput
		require.NoError(t, unmarshalInput(`{"id": 99, "year": 1850}`, &input))
		input.Apply(book)

		assert.Equal(t, int64(7), book.ID)
		assert.Equal(t, 1850, book.Year)
	})
}

func TestBookStatsAggregation(t *testing.T) {
	stats := NewBookStats()

	stats.add("Mikhail Bulgakov", 1967)
	stats.add("Arkady Strugatsky", 2001)
	stats.add("Fyodor Dostoevsky", 1850)

	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, map[int]int{20: 1, 21: 1, 19: 1}, stats.BooksByCentury)
	assert.Equal(t, map[string]int{
		"Mikhail Bulgakov":  1,
		"Arkady Strugatsky": 1,
		"Fyodor Dostoevsky": 1,
	}, stats.BooksByAuthor)
}

func TestBookStatsGroupsByExactAuthorString(t *testing.T) {
	stats := NewBookStats()

	stats.add("Mikhail Bulgakov", 1925)
	stats.add("Mikhail Bulgakov", 1967)
	stats.add("mikhail bulgakov", 1967) // different string, different bucket

	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, 2, stats.BooksByAuthor["Mikhail Bulgakov"])
	assert.Equal(t, 1, stats.BooksByAuthor["mikhail bulgakov"])
	assert.Equal(t, 3, stats.BooksByCentury[20])
}
