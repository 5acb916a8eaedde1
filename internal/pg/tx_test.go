package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Begin(t *testing.T) {
	errFn := errors.New("fn failed")

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		fn        func(m *Manager, conn *Conn) TransactionalFn
		expectErr error
	}{
		{
			name: "Commit on success",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE accounts").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
			fn: func(_ *Manager, conn *Conn) TransactionalFn {
				return func(ctx context.Context) error {
					_, err := conn.Exec(ctx, "UPDATE accounts SET credits = credits - 1")
					return err
				}
			},
		},
		{
			name: "Rollback on error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(_ *Manager, _ *Conn) TransactionalFn {
				return func(ctx context.Context) error { return errFn }
			},
			expectErr: errFn,
		},
		{
			name: "Nested call joins outer transaction",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM resumes").WithArgs(1).WillReturnResult(pgxmock.NewResult("DELETE", 1))
				mock.ExpectCommit()
			},
			fn: func(m *Manager, conn *Conn) TransactionalFn {
				return func(ctx context.Context) error {
					return m.Begin(ctx, func(ctx context.Context) error {
						_, err := conn.Exec(ctx, "DELETE FROM resumes WHERE id = $1", 1)
						return err
					})
				}
			},
		},
		{
			name: "Begin fails",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errors.New("conn refused"))
			},
			fn: func(_ *Manager, _ *Conn) TransactionalFn {
				return func(ctx context.Context) error {
					t.Error("fn must not run")
					return nil
				}
			},
			expectErr: errors.New("begin tx: conn refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)
			m := NewTXManager(mock)
			conn := New(mock)

			err = m.Begin(context.Background(), tt.fn(m, conn))
			if tt.expectErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
