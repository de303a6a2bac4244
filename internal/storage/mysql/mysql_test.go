package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fieldservice-golang/internal/config"
)

func TestBuildDSN(t *testing.T) {
	cfg := config.Config{
		DBUser:     "fs_user",
		DBPassword: "secreto",
		DBHost:     "localhost",
		DBPort:     3306,
		DBName:     "fieldservice",
		ParseTime:  true,
	}

	dsn := buildDSN(cfg)

	assert.Equal(t, "fs_user:secreto@tcp(localhost:3306)/fieldservice?parseTime=true&clientFoundRows=true", dsn)

	// sin clientFoundRows el driver cuenta filas cambiadas, no matcheadas,
	// y los updates idempotentes darían falso not-found
	assert.Contains(t, dsn, "clientFoundRows=true")
}
