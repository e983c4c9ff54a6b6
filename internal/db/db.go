package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"swap-service/internal/logger"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	database, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(database); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return database, nil
}

func runMigrations(database *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL UNIQUE,
            city TEXT NOT NULL DEFAULT '',
            latitude DOUBLE PRECISION,
            longitude DOUBLE PRECISION,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS categories (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE
        );`,
		`CREATE TABLE IF NOT EXISTS items (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            category_id INT NOT NULL REFERENCES categories(id),
            owner_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            status TEXT NOT NULL DEFAULT 'AVAILABLE'
                CHECK (status IN ('AVAILABLE', 'RESERVED')),
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS item_images (
            id SERIAL PRIMARY KEY,
            item_id INT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
            url TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS likes (
            id SERIAL PRIMARY KEY,
            item_id INT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
            liker_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            liked_on TIMESTAMPTZ DEFAULT NOW(),
            UNIQUE (item_id, liker_id)
        );`,
		`CREATE TABLE IF NOT EXISTS matches (
            id SERIAL PRIMARY KEY,
            like_one_id INT NOT NULL REFERENCES likes(id) ON DELETE CASCADE,
            like_two_id INT NOT NULL REFERENCES likes(id) ON DELETE CASCADE,
            matched_on TIMESTAMPTZ DEFAULT NOW(),
            UNIQUE (like_one_id, like_two_id)
        );`,
		`CREATE TABLE IF NOT EXISTS chats (
            id SERIAL PRIMARY KEY,
            participant_one INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            participant_two INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            UNIQUE (participant_one, participant_two),
            CHECK (participant_one < participant_two)
        );`,
		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            chat_id INT NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
            sender_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            text TEXT NOT NULL,
            sent_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS ratings (
            id SERIAL PRIMARY KEY,
            rated_user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            rating_user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
            UNIQUE (rated_user_id, rating_user_id)
        );`,
	}

	for _, m := range migrations {
		if _, err := database.Exec(m); err != nil {
			return err
		}
	}
	logger.Log.Info("database migrations applied")
	return nil
}
