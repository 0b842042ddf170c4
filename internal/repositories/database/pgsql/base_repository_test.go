package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

// A deferred rollback after a successful commit reports pgx.ErrTxClosed and
// must be treated as a no-op, not a failure.
func TestRollbackAfterCommitIsNoop(t *testing.T) {
	repo := &BaseRepository{}

	err := repo.Rollback(context.Background(), &stubTx{rollbackErr: pgx.ErrTxClosed})
	assert.NoError(t, err)
}

func TestRollbackSurfacesRealFailures(t *testing.T) {
	repo := &BaseRepository{}

	err := repo.Rollback(context.Background(), &stubTx{rollbackErr: errors.New("connection reset")})
	assert.Error(t, err)
}
