// services/resolver.go
package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"saloonhub-backend/models"
	"saloonhub-backend/repository"
)

// Resolver turns a verified external identity into an Account, creating it
// on first contact. The first account ever created this way is promoted to
// admin; the admin count is re-derived from the store on every call (never
// cached) because multiple stateless instances may run concurrently. All
// race arbitration is delegated to the store's uniqueness constraints; the
// fallbacks below are bounded re-reads, not retry loops.
type Resolver struct {
	accounts repository.AccountStore
	logger   *zap.Logger
}

func NewResolver(accounts repository.AccountStore, logger *zap.Logger) *Resolver {
	return &Resolver{accounts: accounts, logger: logger}
}

// Resolve returns the Account for a verified external id, creating it when
// the id has never been seen. Email and name hints come from the identity
// provider's profile and are best effort; a deterministic placeholder is
// used when absent. An existing account is returned unchanged: no
// re-promotion, no demotion, regardless of the current admin count.
func (r *Resolver) Resolve(ctx context.Context, externalID, emailHint, nameHint string) (*models.Account, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: empty external id", ErrAccountResolutionFailed)
	}

	account, err := r.accounts.GetByExternalID(ctx, externalID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: lookup: %v", ErrAccountResolutionFailed, err)
	}

	adminCount, err := r.accounts.CountAutoAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: admin count: %v", ErrAccountResolutionFailed, err)
	}

	email := emailHint
	if email == "" {
		email = placeholderEmail(externalID)
	}
	name := nameHint
	if name == "" {
		name = externalID
	}

	candidate := &models.Account{
		ExternalID: &externalID,
		Email:      email,
		Name:       name,
		IsAdmin:    adminCount == 0,
	}

	err = r.create(ctx, candidate)
	if err == nil {
		if candidate.IsAdmin {
			r.logger.Info("promoted first account to admin",
				zap.String("accountId", candidate.ID.String()))
		}
		return candidate, nil
	}

	switch {
	case errors.Is(err, repository.ErrDuplicateExternalID):
		// A concurrent first-contact request for the same external id
		// won the create; its row is authoritative.
		account, err := r.accounts.GetByExternalID(ctx, externalID)
		if err != nil {
			return nil, fmt.Errorf("%w: re-fetch after conflict: %v", ErrAccountResolutionFailed, err)
		}
		return account, nil

	case errors.Is(err, repository.ErrDuplicateEmail):
		return r.resolveEmailConflict(ctx, candidate, externalID)
	}

	return nil, fmt.Errorf("%w: create: %v", ErrAccountResolutionFailed, err)
}

// create attempts the insert, downgrading once to a non-admin when the
// store reports another automatic admin already committed. That is the only
// internal retry the resolver performs.
func (r *Resolver) create(ctx context.Context, account *models.Account) error {
	err := r.accounts.Create(ctx, account)
	if errors.Is(err, repository.ErrDuplicateAdmin) {
		account.IsAdmin = false
		err = r.accounts.Create(ctx, account)
	}
	return err
}

// resolveEmailConflict handles a create that collided on email. An existing
// account with no external id is adopted: it gets linked to this external
// id with its admin flag untouched. An account already linked to a
// different external id keeps its email; the new account is created with a
// guaranteed-unique placeholder instead.
func (r *Resolver) resolveEmailConflict(ctx context.Context, candidate *models.Account, externalID string) (*models.Account, error) {
	existing, err := r.accounts.GetByEmail(ctx, candidate.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup by email: %v", ErrAccountResolutionFailed, err)
	}

	if existing.ExternalID == nil {
		if err := r.accounts.LinkExternalID(ctx, existing.ID, externalID); err != nil {
			return nil, fmt.Errorf("%w: adopt account: %v", ErrAccountResolutionFailed, err)
		}
		existing.ExternalID = &externalID
		r.logger.Info("adopted account by email",
			zap.String("accountId", existing.ID.String()))
		return existing, nil
	}

	candidate.Email = placeholderEmail(externalID)
	if err := r.create(ctx, candidate); err != nil {
		if errors.Is(err, repository.ErrDuplicateExternalID) {
			account, ferr := r.accounts.GetByExternalID(ctx, externalID)
			if ferr != nil {
				return nil, fmt.Errorf("%w: re-fetch after conflict: %v", ErrAccountResolutionFailed, ferr)
			}
			return account, nil
		}
		return nil, fmt.Errorf("%w: placeholder create: %v", ErrAccountResolutionFailed, err)
	}
	return candidate, nil
}

// placeholderEmail derives a deterministic, never-deliverable address from
// the external id. The id is used verbatim: external ids are unique, so the
// derived address is too.
func placeholderEmail(externalID string) string {
	return externalID + "@placeholder.invalid"
}
