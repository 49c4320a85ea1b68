package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/DaDevFox/fridgemate/internal/domain"
)

var (
	itemsBucket         = []byte("items")
	typesBucket         = []byte("types")
	notificationsBucket = []byte("notifications")
	budgetBucket        = []byte("budget")
	recipesBucket       = []byte("recipes")
	shoppingBucket      = []byte("shopping")
)

// BoltInventoryRepository implements InventoryRepository using BoltDB (bbolt)
// BoltDB keeps everything in a single compact file
type BoltInventoryRepository struct {
	db *bbolt.DB
}

// NewBoltInventoryRepository creates a new BoltDB-backed repository
func NewBoltInventoryRepository(dbPath string) (*BoltInventoryRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create parent directory for bolt db")
	}

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{
		Timeout:      1 * time.Second,
		FreelistType: bbolt.FreelistMapType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open bolt db")
	}

	repo := &BoltInventoryRepository{db: db}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{itemsBucket, typesBucket, notificationsBucket, budgetBucket, recipesBucket, shoppingBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return errors.Wrapf(err, "failed to create bucket %s", bucket)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	if err := repo.initializeDefaultProductTypes(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize default product types")
	}

	return repo, nil
}

// Close closes the database connection
func (r *BoltInventoryRepository) Close() error {
	return r.db.Close()
}

func putJSON(bucket *bbolt.Bucket, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}
	return bucket.Put([]byte(key), data)
}

// AddItem adds a new inventory item
func (r *BoltInventoryRepository) AddItem(ctx context.Context, item *domain.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(itemsBucket)

		seq, err := bucket.NextSequence()
		if err != nil {
			return errors.Wrap(err, "failed to allocate item sequence")
		}

		return putJSON(bucket, item.ID, storedItem{Seq: seq, Item: item})
	})
}

// GetItem retrieves an inventory item by ID
func (r *BoltInventoryRepository) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var stored storedItem

	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(itemsBucket).Get([]byte(id))
		if data == nil {
			return &domain.InventoryItemNotFoundError{ID: id}
		}
		return errors.Wrap(json.Unmarshal(data, &stored), "failed to unmarshal item")
	})
	if err != nil {
		return nil, err
	}

	return stored.Item, nil
}

// UpdateItem updates an existing inventory item, keeping its position in listings
func (r *BoltInventoryRepository) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(itemsBucket)

		data := bucket.Get([]byte(item.ID))
		if data == nil {
			return &domain.InventoryItemNotFoundError{ID: item.ID}
		}

		var existing storedItem
		if err := json.Unmarshal(data, &existing); err != nil {
			return errors.Wrap(err, "failed to unmarshal item")
		}

		return putJSON(bucket, item.ID, storedItem{Seq: existing.Seq, Item: item})
	})
}

// DeleteItem removes an inventory item
func (r *BoltInventoryRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(itemsBucket)
		if bucket.Get([]byte(id)) == nil {
			return &domain.InventoryItemNotFoundError{ID: id}
		}
		return bucket.Delete([]byte(id))
	})
}

// DeleteItems removes the given items and reports how many existed
func (r *BoltInventoryRepository) DeleteItems(ctx context.Context, ids []string) (int, error) {
	deleted := 0

	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(itemsBucket)
		for _, id := range ids {
			if bucket.Get([]byte(id)) == nil {
				continue
			}
			if err := bucket.Delete([]byte(id)); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete items")
	}

	return deleted, nil
}

// ListItems returns a filtered list of inventory items in insertion order
func (r *BoltInventoryRepository) ListItems(ctx context.Context, filters ListFilters) ([]*domain.InventoryItem, int, error) {
	var stored []storedItem

	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(itemsBucket).ForEach(func(_, value []byte) error {
			var s storedItem
			if err := json.Unmarshal(value, &s); err != nil {
				return errors.Wrap(err, "failed to unmarshal item")
			}
			stored = append(stored, s)
			return nil
		})
	})
	if err != nil {
		return nil, 0, err
	}

	items, total := applyListFilters(sortStoredItems(stored), filters)
	return items, total, nil
}

// GetAllItems returns all inventory items
func (r *BoltInventoryRepository) GetAllItems(ctx context.Context) ([]*domain.InventoryItem, error) {
	items, _, err := r.ListItems(ctx, ListFilters{})
	return items, err
}

// AddProductType adds a product type, replacing any type with the same ID
func (r *BoltInventoryRepository) AddProductType(ctx context.Context, productType *domain.ProductType) error {
	if productType.ID == "" {
		productType.ID = uuid.New().String()
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		return putJSON(tx.Bucket(typesBucket), productType.ID, productType)
	})
}

// GetProductType retrieves a product type by ID
func (r *BoltInventoryRepository) GetProductType(ctx context.Context, id string) (*domain.ProductType, error) {
	var productType domain.ProductType

	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(typesBucket).Get([]byte(id))
		if data == nil {
			return &domain.ProductTypeNotFoundError{ID: id}
		}
		return errors.Wrap(json.Unmarshal(data, &productType), "failed to unmarshal product type")
	})
	if err != nil {
		return nil, err
	}

	return &productType, nil
}

// ListProductTypes returns all product types ordered by ID
func (r *BoltInventoryRepository) ListProductTypes(ctx context.Context) ([]*domain.ProductType, error) {
	var types []*domain.ProductType

	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(typesBucket).ForEach(func(_, value []byte) error {
			var productType domain.ProductType
			if err := json.Unmarshal(value, &productType); err != nil {
				return errors.Wrap(err, "failed to unmarshal product type")
			}
			types = append(types, &productType)
			return nil
		})
	})

	return types, err
}

// AddNotification stores a notification
func (r *BoltInventoryRepository) AddNotification(ctx context.Context, notification *domain.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		return putJSON(tx.Bucket(notificationsBucket), notification.ID, notification)
	})
}

// ListNotifications returns matching notifications, oldest first
func (r *BoltInventoryRepository) ListNotifications(ctx context.Context, filters NotificationFilters) ([]*domain.Notification, error) {
	var notifications []*domain.Notification

	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(notificationsBucket).ForEach(func(_, value []byte) error {
			var n domain.Notification
			if err := json.Unmarshal(value, &n); err != nil {
				return errors.Wrap(err, "failed to unmarshal notification")
			}
			if filters.matches(&n) {
				notifications = append(notifications, &n)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sortNotifications(notifications)
	return notifications, nil
}

// DeleteNotification removes a notification
func (r *BoltInventoryRepository) DeleteNotification(ctx context.Context, id string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(notificationsBucket)
		if bucket.Get([]byte(id)) == nil {
			return &domain.NotificationNotFoundError{ID: id}
		}
		return bucket.Delete([]byte(id))
	})
}

// DeleteNotificationsBefore removes notifications created before cutoff
func (r *BoltInventoryRepository) DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	deleted := 0

	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(notificationsBucket)

		var stale [][]byte
		err := bucket.ForEach(func(key, value []byte) error {
			var n domain.Notification
			if err := json.Unmarshal(value, &n); err != nil {
				return errors.Wrap(err, "failed to unmarshal notification")
			}
			if n.CreatedAt.Before(cutoff) {
				stale = append(stale, append([]byte(nil), key...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		// Deleting inside ForEach is not allowed.
		for _, key := range stale {
			if err := bucket.Delete(key); err != nil {
				return err
			}
		}
		deleted = len(stale)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// GetBudget retrieves the household budget
func (r *BoltInventoryRepository) GetBudget(ctx context.Context) (*domain.Budget, error) {
	var budget domain.Budget

	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(budgetBucket).Get([]byte(budgetKey))
		if data == nil {
			return domain.ErrBudgetNotFound
		}
		return errors.Wrap(json.Unmarshal(data, &budget), "failed to unmarshal budget")
	})
	if err != nil {
		return nil, err
	}

	return &budget, nil
}

// SaveBudget creates or replaces the household budget
func (r *BoltInventoryRepository) SaveBudget(ctx context.Context, budget *domain.Budget) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		return putJSON(tx.Bucket(budgetBucket), budgetKey, budget)
	})
}

// DeleteBudget removes the household budget
func (r *BoltInventoryRepository) DeleteBudget(ctx context.Context) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(budgetBucket)
		if bucket.Get([]byte(budgetKey)) == nil {
			return domain.ErrBudgetNotFound
		}
		return bucket.Delete([]byte(budgetKey))
	})
}

func boltPutSequenced[T any](bucket *bbolt.Bucket, id string, value *T) error {
	seq, err := bucket.NextSequence()
	if err != nil {
		return errors.Wrapf(err, "failed to allocate sequence for %s", id)
	}
	return putJSON(bucket, id, sequenced[T]{Seq: seq, Value: value})
}

// boltGetSequenced returns (nil, nil) when id is not stored.
func boltGetSequenced[T any](bucket *bbolt.Bucket, id string) (*sequenced[T], error) {
	data := bucket.Get([]byte(id))
	if data == nil {
		return nil, nil
	}
	var stored sequenced[T]
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s", id)
	}
	return &stored, nil
}

func boltListSequenced[T any](bucket *bbolt.Bucket) ([]*T, error) {
	var stored []sequenced[T]
	err := bucket.ForEach(func(key, value []byte) error {
		var s sequenced[T]
		if err := json.Unmarshal(value, &s); err != nil {
			return errors.Wrapf(err, "failed to unmarshal %s", key)
		}
		stored = append(stored, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortSequenced(stored), nil
}

// AddRecipe stores a new recipe
func (r *BoltInventoryRepository) AddRecipe(ctx context.Context, recipe *domain.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		return boltPutSequenced(tx.Bucket(recipesBucket), recipe.ID, recipe)
	})
}

// GetRecipe retrieves a recipe by ID
func (r *BoltInventoryRepository) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	var recipe *domain.Recipe

	err := r.db.View(func(tx *bbolt.Tx) error {
		stored, err := boltGetSequenced[domain.Recipe](tx.Bucket(recipesBucket), id)
		if err != nil {
			return err
		}
		if stored == nil {
			return &domain.RecipeNotFoundError{ID: id}
		}
		recipe = stored.Value
		return nil
	})
	if err != nil {
		return nil, err
	}

	return recipe, nil
}

// ListRecipes returns all recipes in insertion order
func (r *BoltInventoryRepository) ListRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	var recipes []*domain.Recipe

	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		recipes, err = boltListSequenced[domain.Recipe](tx.Bucket(recipesBucket))
		return err
	})

	return recipes, err
}

// AddShoppingEntry appends an entry to the shopping list
func (r *BoltInventoryRepository) AddShoppingEntry(ctx context.Context, entry *domain.ShoppingEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		return boltPutSequenced(tx.Bucket(shoppingBucket), entry.ID, entry)
	})
}

// GetShoppingEntry retrieves a shopping list entry by ID
func (r *BoltInventoryRepository) GetShoppingEntry(ctx context.Context, id string) (*domain.ShoppingEntry, error) {
	var entry *domain.ShoppingEntry

	err := r.db.View(func(tx *bbolt.Tx) error {
		stored, err := boltGetSequenced[domain.ShoppingEntry](tx.Bucket(shoppingBucket), id)
		if err != nil {
			return err
		}
		if stored == nil {
			return &domain.ShoppingEntryNotFoundError{ID: id}
		}
		entry = stored.Value
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// UpdateShoppingEntry replaces an entry, keeping its position in the list
func (r *BoltInventoryRepository) UpdateShoppingEntry(ctx context.Context, entry *domain.ShoppingEntry) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(shoppingBucket)

		stored, err := boltGetSequenced[domain.ShoppingEntry](bucket, entry.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return &domain.ShoppingEntryNotFoundError{ID: entry.ID}
		}

		return putJSON(bucket, entry.ID, sequenced[domain.ShoppingEntry]{Seq: stored.Seq, Value: entry})
	})
}

// ListShoppingEntries returns the shopping list in insertion order
func (r *BoltInventoryRepository) ListShoppingEntries(ctx context.Context) ([]*domain.ShoppingEntry, error) {
	var entries []*domain.ShoppingEntry

	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		entries, err = boltListSequenced[domain.ShoppingEntry](tx.Bucket(shoppingBucket))
		return err
	})

	return entries, err
}

// DeleteShoppingEntries removes the given entries and reports how many existed
func (r *BoltInventoryRepository) DeleteShoppingEntries(ctx context.Context, ids []string) (int, error) {
	deleted := 0

	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(shoppingBucket)
		for _, id := range ids {
			if bucket.Get([]byte(id)) == nil {
				continue
			}
			if err := bucket.Delete([]byte(id)); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete shopping entries")
	}

	return deleted, nil
}

// initializeDefaultProductTypes seeds the product types of an empty database
func (r *BoltInventoryRepository) initializeDefaultProductTypes() error {
	types, err := r.ListProductTypes(context.Background())
	if err == nil && len(types) > 0 {
		return nil
	}

	for _, productType := range DefaultProductTypes() {
		if err := r.AddProductType(context.Background(), productType); err != nil {
			return errors.Wrapf(err, "failed to add default product type %s", productType.Name)
		}
	}

	return nil
}
