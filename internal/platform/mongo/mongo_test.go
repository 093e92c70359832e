package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type indexerFunc func(ctx context.Context) error

func (f indexerFunc) EnsureIndexes(ctx context.Context) error { return f(ctx) }

func TestEnsureIndexes(t *testing.T) {
	t.Parallel()

	calls := 0
	ok := indexerFunc(func(context.Context) error { calls++; return nil })
	errA := errors.New("users index")
	errB := errors.New("slug index")

	assert.NoError(t, EnsureIndexes(context.Background(), ok, ok))
	assert.Equal(t, 2, calls)

	err := EnsureIndexes(context.Background(),
		indexerFunc(func(context.Context) error { return errA }),
		ok,
		indexerFunc(func(context.Context) error { return errB }),
	)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, 3, calls, "a failing indexer must not stop the rest")
}

func TestIsDuplicateKey(t *testing.T) {
	t.Parallel()

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}

	assert.True(t, IsDuplicateKey(dup))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", dup)))
	assert.False(t, IsDuplicateKey(errors.New("timeout")))
}

func TestIsNoDocuments(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNoDocuments(mongo.ErrNoDocuments))
	assert.True(t, IsNoDocuments(fmt.Errorf("find: %w", mongo.ErrNoDocuments)))
	assert.False(t, IsNoDocuments(errors.New("other")))
}
