package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "rentpilot/pkg/errors"
	"rentpilot/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// codeIllegalOperation is returned by standalone servers for any command
// that carries a transaction number.
const codeIllegalOperation = 20

type TransactionFunc func(ctx mongo.SessionContext) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type sessionStarter interface {
	StartSession(opts ...*options.SessionOptions) (mongo.Session, error)
}

type mongoTransactionManager struct {
	client sessionStarter
	log    *logger.Logger
	txOpts *options.TransactionOptions
}

// NewTransactionManager runs read-modify-write sequences in a majority
// transaction. On a standalone server, which cannot run transactions, fn
// runs once on a plain session and a warning is logged.
func NewTransactionManager(client *mongo.Client, log *logger.Logger) TransactionManager {
	return newTransactionManager(client, log)
}

func newTransactionManager(client sessionStarter, log *logger.Logger) *mongoTransactionManager {
	return &mongoTransactionManager{
		client: client,
		log:    log,
		txOpts: options.Transaction().
			SetReadConcern(readconcern.Snapshot()).
			SetWriteConcern(writeconcern.Majority()),
	}
}

func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	}, m.txOpts)

	if err != nil && isTransactionUnsupported(err) {
		m.log.Warn("MongoDB deployment does not support transactions, running without one", "error", err)
		err = fn(mongo.NewSessionContext(ctx, session))
	}

	return wrapTransactionError(err)
}

func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeIllegalOperation {
		return strings.Contains(cmdErr.Message, "Transaction numbers")
	}
	return false
}

// wrapTransactionError keeps AppErrors raised inside fn intact so services
// can return them as is.
func wrapTransactionError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return fmt.Errorf("transaction failed: %w", err)
}
