// Package address manages each signed-in user's saved delivery addresses.
package address

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/service/checkout"
)

// DefaultLabel is given to addresses saved without one.
const DefaultLabel = "Home"

// Store persists address books keyed by user id. Get, Update and Delete return
// domain.ErrNotFound for an id the user does not own.
type Store interface {
	List(ctx context.Context, userID string) ([]domain.Address, error)
	Get(ctx context.Context, userID, id string) (domain.Address, error)
	Insert(ctx context.Context, userID string, a domain.Address) error
	Update(ctx context.Context, userID string, a domain.Address) error
	Delete(ctx context.Context, userID, id string) error
}

type Book struct {
	store  Store
	newID  func() string
	logger *zap.Logger
}

func New(store Store, logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Book{store: store, newID: uuid.NewString, logger: logger}
}

func (b *Book) List(ctx context.Context, userID string) ([]domain.Address, error) {
	userID, err := owner(userID)
	if err != nil {
		return nil, err
	}
	return b.store.List(ctx, userID)
}

func (b *Book) Get(ctx context.Context, userID, id string) (domain.Address, error) {
	userID, err := owner(userID)
	if err != nil {
		return domain.Address{}, err
	}
	return b.store.Get(ctx, userID, strings.TrimSpace(id))
}

// Add validates a and appends it to the user's book under a fresh id.
func (b *Book) Add(ctx context.Context, userID string, a domain.Address) (domain.Address, error) {
	userID, err := owner(userID)
	if err != nil {
		return domain.Address{}, err
	}
	a = normalize(a)
	if err := checkout.ValidateAddress(a); err != nil {
		return domain.Address{}, err
	}
	a.ID = b.newID()
	if err := b.store.Insert(ctx, userID, a); err != nil {
		return domain.Address{}, err
	}
	b.logger.Info("address saved", zap.String("user_id", userID), zap.String("address_id", a.ID), zap.String("label", a.Label))
	return a, nil
}

// Update replaces the saved address id with a.
func (b *Book) Update(ctx context.Context, userID, id string, a domain.Address) (domain.Address, error) {
	userID, err := owner(userID)
	if err != nil {
		return domain.Address{}, err
	}
	a = normalize(a)
	if err := checkout.ValidateAddress(a); err != nil {
		return domain.Address{}, err
	}
	a.ID = strings.TrimSpace(id)
	if err := b.store.Update(ctx, userID, a); err != nil {
		return domain.Address{}, err
	}
	b.logger.Info("address updated", zap.String("user_id", userID), zap.String("address_id", a.ID))
	return a, nil
}

func (b *Book) Delete(ctx context.Context, userID, id string) error {
	userID, err := owner(userID)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := b.store.Delete(ctx, userID, id); err != nil {
		return err
	}
	b.logger.Info("address deleted", zap.String("user_id", userID), zap.String("address_id", id))
	return nil
}

func owner(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domain.ErrLoginRequired
	}
	return userID, nil
}

func normalize(a domain.Address) domain.Address {
	a.Label = strings.TrimSpace(a.Label)
	if a.Label == "" {
		a.Label = DefaultLabel
	}
	a.Name = strings.TrimSpace(a.Name)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Pincode = strings.TrimSpace(a.Pincode)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.Line = strings.TrimSpace(a.Line)
	return a
}
