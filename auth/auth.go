// Package auth checks operator ids against the permission table. The check
// is a plain existence query; when no database is configured every id is
// allowed, which keeps local development and single-operator deployments
// working without a Postgres instance.
package auth

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	config "github.com/richardcertto/n2-bot/configs"
)

type Service struct {
	db *sql.DB
}

func NewService(cfg config.AuthDBConfig) (*Service, error) {
	if cfg.DSN == "" {
		logrus.Warn("No auth database configured; operator authorization is disabled")
		return &Service{}, nil
	}
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, err
	}
	return &Service{db: db}, nil
}

// AuthorizedUser reports whether userID exists in the permission table.
// Database failures deny access rather than failing open.
func (s *Service) AuthorizedUser(ctx context.Context, userID int64) bool {
	if s.db == nil {
		return true
	}

	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM n2users WHERE telegramid = $1", userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		logrus.Warnf("Unauthorized access attempt by user id %d", userID)
		return false
	}
	if err != nil {
		logrus.Errorf("Database error while checking permission for user %d: %v", userID, err)
		return false
	}
	return true
}

func (s *Service) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
