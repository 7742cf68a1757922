/*
Package cart is the application layer of the cart subdomain: it sequences
port calls around the aggregate without duplicating the business rules that
live in domain/cart.

Every use case follows the same shape: load the whole aggregate, mutate it
in memory, persist the whole aggregate back. Mutations for one session are
serialized with a per-session lock (see locks.go).
*/
package cart

import (
	"context"
	"errors"

	"shopcore/domain/cart"
	"shopcore/domain/catalog"
)

// Service orchestrates cart use cases over the persistence and product
// lookup ports.
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	sessions    sessionLocks
}

// NewService creates a cart application service.
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the session's cart, creating an empty one on first
// access.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*CartDTO, error) {
	defer s.sessions.lock(sessionID)()

	c, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.ID() == "" {
		if c, err = s.cartRepo.Save(ctx, c); err != nil {
			return nil, err
		}
	}
	return toDTO(c), nil
}

// AddItem adds a product to the session's cart with the price frozen at
// this moment. The product must exist and have enough stock; a missing
// product reports zero availability rather than a bare not-found, so the
// caller always sees requested vs. available.
func (s *Service) AddItem(ctx context.Context, cmd AddItemCommand) (*CartDTO, error) {
	product, err := s.productRepo.GetByID(ctx, cmd.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, cart.NewProductNotAvailableError(cmd.ProductID, cmd.Quantity, 0)
		}
		return nil, err
	}
	if !product.IsAvailable(cmd.Quantity) {
		return nil, cart.NewProductNotAvailableError(cmd.ProductID, cmd.Quantity, product.Stock())
	}

	defer s.sessions.lock(cmd.SessionID)()

	c, err := s.loadOrCreate(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	if _, err := c.AddItem(cmd.ProductID, cmd.Quantity, product.Price()); err != nil {
		return nil, err
	}

	saved, err := s.cartRepo.Save(ctx, c)
	if err != nil {
		return nil, err
	}
	return toDTO(saved), nil
}

// UpdateQuantity sets a new quantity on an existing cart item.
func (s *Service) UpdateQuantity(ctx context.Context, cmd UpdateQuantityCommand) (*CartDTO, error) {
	defer s.sessions.lock(cmd.SessionID)()

	c, err := s.cartRepo.GetBySessionID(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	if _, err := c.UpdateItemQuantity(cmd.ItemID, cmd.Quantity); err != nil {
		return nil, err
	}

	saved, err := s.cartRepo.Save(ctx, c)
	if err != nil {
		return nil, err
	}
	return toDTO(saved), nil
}

// RemoveItem removes one item from the session's cart.
func (s *Service) RemoveItem(ctx context.Context, cmd RemoveItemCommand) (*CartDTO, error) {
	defer s.sessions.lock(cmd.SessionID)()

	c, err := s.cartRepo.GetBySessionID(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(cmd.ItemID); err != nil {
		return nil, err
	}

	saved, err := s.cartRepo.Save(ctx, c)
	if err != nil {
		return nil, err
	}
	return toDTO(saved), nil
}

// ClearCart empties the session's cart.
func (s *Service) ClearCart(ctx context.Context, sessionID string) (*CartDTO, error) {
	defer s.sessions.lock(sessionID)()

	c, err := s.cartRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Clear()

	saved, err := s.cartRepo.Save(ctx, c)
	if err != nil {
		return nil, err
	}
	return toDTO(saved), nil
}

// MergeCarts folds the source session's cart into the target session's
// cart (quantities capped, target prices winning) and empties the source.
// The target cart is created on miss; a missing source fails with
// ErrCartNotFound.
func (s *Service) MergeCarts(ctx context.Context, cmd MergeCommand) (*CartDTO, error) {
	defer s.sessions.lockPair(cmd.SessionID, cmd.SourceSessionID)()

	source, err := s.cartRepo.GetBySessionID(ctx, cmd.SourceSessionID)
	if err != nil {
		return nil, err
	}

	target, err := s.loadOrCreate(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	target.Merge(source)

	saved, err := s.cartRepo.Save(ctx, target)
	if err != nil {
		return nil, err
	}

	source.Clear()
	if _, err := s.cartRepo.Save(ctx, source); err != nil {
		return nil, err
	}

	return toDTO(saved), nil
}

// DeleteCart removes the session's cart entirely. Administrative
// operation; regular flows use ClearCart.
func (s *Service) DeleteCart(ctx context.Context, sessionID string) error {
	defer s.sessions.lock(sessionID)()

	c, err := s.cartRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, c.ID())
}

// loadOrCreate fetches the session's cart, building a fresh unsaved one
// when none exists yet.
func (s *Service) loadOrCreate(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := s.cartRepo.GetBySessionID(ctx, sessionID)
	if err == nil {
		return c, nil
	}
	if errors.Is(err, cart.ErrCartNotFound) {
		return cart.NewCart(sessionID)
	}
	return nil, err
}
