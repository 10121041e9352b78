package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumeRefreshIsSingleUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	const hash = "deadbeef"

	// First consume wins: the conditional UPDATE touches the row, then
	// the owner is resolved.
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(hash).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT user_id FROM refresh_tokens").
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(9))

	uid, err := repo.ConsumeRefresh(context.Background(), hash)
	assert.NoError(t, err)
	assert.Equal(t, uint64(9), uid)

	// A replay of the same token finds no live row and is rejected
	// without ever reading the owner.
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(hash).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.ConsumeRefresh(context.Background(), hash)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeRefreshRejectsUnknownToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs("no-such-hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.ConsumeRefresh(context.Background(), "no-such-hash")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
