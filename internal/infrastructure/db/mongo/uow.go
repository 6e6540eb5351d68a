package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accesshub/rbac-service/internal/core/ports"
)

// UnitOfWork runs a function inside a MongoDB session transaction. Every
// repository call made with the session context joins the transaction, so a
// lifecycle mutation and its audit entry commit together or not at all.
// Requires a replica-set deployment, as all driver transactions do.
type UnitOfWork struct {
	client *mongo.Client
}

func NewUnitOfWork(client *mongo.Client) *UnitOfWork {
	return &UnitOfWork{client: client}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := u.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	// A fresh hook collector per attempt: WithTransaction may retry fn on
	// transient errors, and hooks from an aborted attempt must not run.
	var hooks *ports.CommitHooks
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		hookCtx, h := ports.WithCommitHooks(sc)
		hooks = h
		return nil, fn(hookCtx)
	})
	if err != nil {
		return err
	}
	hooks.Run()
	return nil
}
