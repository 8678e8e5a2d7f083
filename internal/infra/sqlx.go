package infra

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// NewReportDB opens a separate sqlx connection for the reporting queries.
// Reports run raw aggregate SQL over the same database; keeping them off
// the GORM pool means a long report cannot starve the request handlers.
func NewReportDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	return db, nil
}
