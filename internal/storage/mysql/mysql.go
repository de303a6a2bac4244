package mysql

import (
	"database/sql"
	"errors"
	"fmt"
	_ "github.com/go-sql-driver/mysql"
	"fieldservice-golang/internal/config"
)

var (
	ErrNodeNotFound    = errors.New("nodo no encontrado")
	ErrUserNotBound    = errors.New("el usuario no está asociado al nodo")
	ErrNodeHasChildren = errors.New("el nodo tiene subordinados")
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	//db, err := sql.Open("mysql", "user:password@tcp(localhost:3306)/fieldservice?parseTime=true")
	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// buildDSN arma el DSN del driver. clientFoundRows va siempre: sin eso
// RowsAffected cuenta filas cambiadas y no filas matcheadas, y un update
// idempotente (re-asociar el mismo usuario, guardar el mismo cargo) daría
// un falso "nodo no encontrado".
func buildDSN(cfg config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=%v&clientFoundRows=true",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.ParseTime,
	)
}
