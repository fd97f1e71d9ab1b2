package mongo

import (
	"context"
	"errors"
	"testing"

	apperrors "rentpilot/pkg/errors"
	"rentpilot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type failingStarter struct{ err error }

func (f failingStarter) StartSession(...*options.SessionOptions) (mongo.Session, error) {
	return nil, f.err
}

func TestExecuteTransaction_StartSessionFailure(t *testing.T) {
	m := newTransactionManager(failingStarter{err: errors.New("no servers")}, logger.Discard())

	called := false
	err := m.ExecuteTransaction(context.Background(), func(mongo.SessionContext) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start session")
	assert.False(t, called)
}

func TestNewTransactionManager_MajoritySnapshot(t *testing.T) {
	m := newTransactionManager(failingStarter{}, logger.Discard())

	require.NotNil(t, m.txOpts.ReadConcern)
	assert.Equal(t, "snapshot", m.txOpts.ReadConcern.GetLevel())
	require.NotNil(t, m.txOpts.WriteConcern)
	assert.True(t, m.txOpts.WriteConcern.IsValid())
}

func TestIsTransactionUnsupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"standalone", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}, true},
		{"wrapped standalone", fmtWrap(mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}), true},
		{"other illegal operation", mongo.CommandError{Code: 20, Message: "cannot drop"}, false},
		{"write conflict", mongo.CommandError{Code: 112, Message: "WriteConflict"}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransactionUnsupported(tt.err))
		})
	}
}

func fmtWrap(err error) error {
	return errors.Join(errors.New("commit"), err)
}

func TestWrapTransactionError(t *testing.T) {
	assert.NoError(t, wrapTransactionError(nil))

	appErr := apperrors.InvalidInput("bad")
	assert.Same(t, appErr, wrapTransactionError(appErr))

	base := errors.New("network")
	wrapped := wrapTransactionError(base)
	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "transaction failed")
}
