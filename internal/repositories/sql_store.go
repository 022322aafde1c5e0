package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"weather-info/internal/models"
)

// SQLStore works on postgres (lib/pq) and sqlite3 (mattn/go-sqlite3);
// both accept $N placeholders and RETURNING.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) CreateCity(ctx context.Context, city models.City) (models.City, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO cities (name, latitude, longitude) VALUES ($1, $2, $3) RETURNING id`,
		city.Name, city.Latitude, city.Longitude,
	).Scan(&city.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.City{}, fmt.Errorf("city %q: %w", city.Name, ErrDuplicate)
		}
		return models.City{}, fmt.Errorf("insert city: %w", err)
	}
	return city, nil
}

func (s *SQLStore) ListCities(ctx context.Context) ([]models.City, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, latitude, longitude FROM cities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return scanCities(rows)
}

func (s *SQLStore) FindCityByName(ctx context.Context, name string) (models.City, error) {
	var c models.City
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, latitude, longitude FROM cities WHERE name = $1`, name,
	).Scan(&c.ID, &c.Name, &c.Latitude, &c.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return models.City{}, fmt.Errorf("city %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return models.City{}, fmt.Errorf("find city: %w", err)
	}
	return c, nil
}

func (s *SQLStore) CreateUser(ctx context.Context, username string) (models.User, error) {
	u := models.User{Username: username}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username) VALUES ($1) RETURNING id`, username,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("user %q: %w", username, ErrDuplicate)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *SQLStore) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `SELECT id, username FROM users WHERE id = $1`, id).Scan(&u.ID, &u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *SQLStore) LinkCity(ctx context.Context, userID, cityID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO user_cities (user_id, city_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, cityID,
	)
	if err != nil {
		return false, fmt.Errorf("link city: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("link city: %w", err)
	}
	return n > 0, nil
}

func (s *SQLStore) ListUserCities(ctx context.Context, userID int64) ([]models.City, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.latitude, c.longitude
		FROM cities c
		JOIN user_cities uc ON uc.city_id = c.id
		WHERE uc.user_id = $1
		ORDER BY c.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user cities: %w", err)
	}
	return scanCities(rows)
}

func (s *SQLStore) FindUserCity(ctx context.Context, userID int64, name string) (models.City, error) {
	var c models.City
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.name, c.latitude, c.longitude
		FROM cities c
		JOIN user_cities uc ON uc.city_id = c.id
		WHERE uc.user_id = $1 AND c.name = $2`, userID, name,
	).Scan(&c.ID, &c.Name, &c.Latitude, &c.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return models.City{}, fmt.Errorf("city %q of user %d: %w", name, userID, ErrNotFound)
	}
	if err != nil {
		return models.City{}, fmt.Errorf("find user city: %w", err)
	}
	return c, nil
}

func scanCities(rows *sql.Rows) ([]models.City, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close city rows", "error", err)
		}
	}()
	out := make([]models.City, 0)
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Latitude, &c.Longitude); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
