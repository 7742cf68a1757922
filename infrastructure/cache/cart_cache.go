// Package cache provides a redis read-through layer in front of the cart
// repository. Carts are hot during a session and read far more often than
// written, so session-keyed snapshots with a short TTL take most reads off
// mysql. The cache is strictly best-effort: redis failures degrade to the
// inner repository and never fail a request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shopcore/domain/cart"
	"shopcore/pkg/logger"
)

// ErrCacheMiss signals that a session has no cached snapshot.
var ErrCacheMiss = errors.New("cache miss")

const defaultBaseTTL = 15 * time.Minute

// cartSnapshot is the cached wire form of a cart aggregate.
type cartSnapshot struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Items     []itemSnapshot `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type itemSnapshot struct {
	ID         string    `json:"id"`
	CartID     string    `json:"cart_id"`
	ProductID  string    `json:"product_id"`
	Quantity   int       `json:"quantity"`
	PriceAtAdd int64     `json:"price_at_add"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

func toSnapshot(c *cart.Cart) cartSnapshot {
	items := c.Items()
	snapshot := cartSnapshot{
		ID:        c.ID(),
		SessionID: c.SessionID(),
		Items:     make([]itemSnapshot, 0, len(items)),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
	for _, item := range items {
		snapshot.Items = append(snapshot.Items, itemSnapshot{
			ID:         item.ID(),
			CartID:     item.CartID(),
			ProductID:  item.ProductID(),
			Quantity:   item.Quantity(),
			PriceAtAdd: item.PriceAtAdd(),
			Currency:   item.Currency(),
			CreatedAt:  item.CreatedAt(),
		})
	}
	return snapshot
}

func (s cartSnapshot) toDomain() *cart.Cart {
	items := make([]cart.CartItem, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, cart.RebuildItemFromDTO(cart.ItemReconstructionDTO{
			ID:         item.ID,
			CartID:     item.CartID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceAtAdd: item.PriceAtAdd,
			Currency:   item.Currency,
			CreatedAt:  item.CreatedAt,
		}))
	}
	return cart.RebuildFromDTO(cart.ReconstructionDTO{
		ID:        s.ID,
		SessionID: s.SessionID,
		Items:     items,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	})
}

// CartCache stores cart snapshots in redis keyed by session id.
type CartCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewCartCache(client *redis.Client) *CartCache {
	return &CartCache{client: client, baseTTL: defaultBaseTTL}
}

func (c *CartCache) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := c.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var snapshot cartSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return snapshot.toDomain(), nil
}

// Set stores the snapshot plus a cart-id to session-id mapping, so
// invalidation by cart id (the only handle some port operations have) can
// find the snapshot key.
func (c *CartCache) Set(ctx context.Context, crt *cart.Cart) error {
	data, err := json.Marshal(toSnapshot(crt))
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	// TTL jitter spreads expiry so a burst of sessions cached together
	// does not stampede the database when they all lapse at once.
	ttl := c.baseTTL + time.Duration(rand.Intn(5))*time.Minute

	pipe := c.client.Pipeline()
	pipe.Set(ctx, sessionKey(crt.SessionID()), data, ttl)
	pipe.Set(ctx, cartKey(crt.ID()), crt.SessionID(), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *CartCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// DeleteByCartID drops the snapshot for the session owning the cart, if
// the reverse mapping is still cached.
func (c *CartCache) DeleteByCartID(ctx context.Context, cartID string) error {
	sessionID, err := c.client.Get(ctx, cartKey(cartID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}
	if err := c.client.Del(ctx, sessionKey(sessionID), cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func cartKey(cartID string) string {
	return fmt.Sprintf("cart:id:%s", cartID)
}

// CachedCartRepository decorates a cart.Repository with read-through
// caching. Writes go to the inner repository first and refresh the cache
// from the persisted result.
type CachedCartRepository struct {
	inner cart.Repository
	cache *CartCache
}

func NewCachedCartRepository(inner cart.Repository, cache *CartCache) *CachedCartRepository {
	return &CachedCartRepository{inner: inner, cache: cache}
}

var _ cart.Repository = (*CachedCartRepository)(nil)

func (r *CachedCartRepository) GetBySessionID(ctx context.Context, sessionID string) (*cart.Cart, error) {
	cached, err := r.cache.Get(ctx, sessionID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Warn("cart cache read failed", zap.String("session_id", sessionID), zap.Error(err))
	}

	c, err := r.inner.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, c); err != nil {
		logger.Warn("cart cache fill failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	return c, nil
}

func (r *CachedCartRepository) Save(ctx context.Context, c *cart.Cart) (*cart.Cart, error) {
	saved, err := r.inner.Save(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, saved); err != nil {
		logger.Warn("cart cache refresh failed", zap.String("session_id", saved.SessionID()), zap.Error(err))
	}
	return saved, nil
}

func (r *CachedCartRepository) Delete(ctx context.Context, cartID string) error {
	if err := r.inner.Delete(ctx, cartID); err != nil {
		return err
	}
	if err := r.cache.DeleteByCartID(ctx, cartID); err != nil {
		logger.Warn("cart cache invalidation failed", zap.String("cart_id", cartID), zap.Error(err))
	}
	return nil
}

func (r *CachedCartRepository) GetItemByID(ctx context.Context, itemID string) (*cart.CartItem, error) {
	return r.inner.GetItemByID(ctx, itemID)
}

func (r *CachedCartRepository) DeleteItem(ctx context.Context, itemID string) error {
	item, err := r.inner.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := r.inner.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	if err := r.cache.DeleteByCartID(ctx, item.CartID()); err != nil {
		logger.Warn("cart cache invalidation failed", zap.String("cart_id", item.CartID()), zap.Error(err))
	}
	return nil
}
