package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect_InvalidConnection(t *testing.T) {
	cfg := Config{
		Host:           "localhost",
		Port:           9999, // Unused port
		User:           "root",
		Password:       "wrongpassword",
		Name:           "esto",
		TimeoutSeconds: 1,
	}

	// Connect should fail (timeout or refused).
	db, err := Connect(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
}
