package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm translated", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"postgres 23505", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other code", &pgconn.PgError{Code: "23503"}, false},
		{"not found", gorm.ErrRecordNotFound, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFound(fmt.Errorf("first: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(gorm.ErrDuplicatedKey))
}
