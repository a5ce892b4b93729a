package cache

import (
	"database/sql"
	"fmt"
	"homework-assist/pkg/migrations"
	"net/url"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Config selects where the cache lives. A local sqlite file is used unless
// Url points at a remote libsql database.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// OpenDB opens the configured database and applies Schema to it.
func (config Config) OpenDB() (*sql.DB, error) {
	if config.Url == "" {
		if config.File == "" {
			return nil, fmt.Errorf("a cache file was not specified")
		}
		return migrations.OpenAndMigrateDB(Schema, config.File)
	}

	values := url.Values{}
	if config.AuthToken != "" {
		values.Add("authToken", config.AuthToken)
	}
	db, err := sql.Open("libsql", config.Url+"?"+values.Encode())
	if err != nil {
		return nil, err
	}
	err = migrations.Migrate(db, Schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
