package store

// Repository implementation (Postgres)

import (
	"context"
	"errors"

	"bookreview/internal/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicate = errors.New("already exists")

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) List(ctx context.Context, genre string) ([]entity.Book, error) {
	query := `
	SELECT id, work_id, title, author, year, genre, cover_url, created_at, updated_at
	FROM books
	WHERE ($1 = '' OR genre = $1)
	ORDER BY title
	`
	rows, err := r.db.Query(ctx, query, genre)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.WorkID, &b.Title, &b.Author, &b.Year, &b.Genre, &b.CoverURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	query := `
	INSERT INTO books (work_id, title, author, year, genre, cover_url)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (work_id) DO NOTHING
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, b.WorkID, b.Title, b.Author, b.Year, b.Genre, b.CoverURL).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// conflict path: RETURNING yields no row
			return ErrDuplicate
		}
		return err
	}
	return nil
}
