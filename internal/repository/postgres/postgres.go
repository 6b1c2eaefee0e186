package postgres

import (
	"database/sql"
	"time"

	"toolrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ToolRepository
}

func NewStore(db *sql.DB, queryTimeout time.Duration) *Store {
	return &Store{
		db:             db,
		ToolRepository: NewToolRepository(db, queryTimeout),
	}
}
