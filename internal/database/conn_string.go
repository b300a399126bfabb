package database

import (
	"fmt"
	"net/url"

	"github.com/robdev/me-client/internal/config"
)

// ConnString renders the journal database config as a pgx connection URL.
// The password is URL-encoded so credentials with reserved characters
// survive. SSL mode is taken as-is; config defaulting guarantees it is set
// before a pool is ever built.
func ConnString(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		cfg.Name,
		cfg.SSLMode,
	)
}
