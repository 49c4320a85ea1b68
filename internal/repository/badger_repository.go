package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/DaDevFox/fridgemate/internal/domain"
)

const (
	itemPrefix         = "item:"
	typePrefix         = "type:"
	notificationPrefix = "notif:" // notif:<id>
	recipePrefix       = "recipe:"
	shoppingPrefix     = "shop:"
	budgetKey          = "budget"
	sequenceKey        = "seq:items"

	sequenceBandwidth = 64
)

// BadgerInventoryRepository implements InventoryRepository using BadgerDB
type BadgerInventoryRepository struct {
	db *badger.DB
	// seq orders items, recipes and shopping entries by insertion.
	seq *badger.Sequence
}

// NewBadgerInventoryRepository creates a new BadgerDB-backed repository
func NewBadgerInventoryRepository(dbPath string) (*BadgerInventoryRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open badger db")
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to lease insertion sequence")
	}

	repo := &BadgerInventoryRepository{db: db, seq: seq}

	if err := repo.initializeDefaultProductTypes(); err != nil {
		repo.Close()
		return nil, errors.Wrap(err, "failed to initialize default product types")
	}

	return repo, nil
}

// Close releases the insertion sequence and closes the database connection
func (r *BadgerInventoryRepository) Close() error {
	if err := r.seq.Release(); err != nil {
		r.db.Close()
		return errors.Wrap(err, "failed to release insertion sequence")
	}
	return r.db.Close()
}

func getJSON(txn *badger.Txn, key string, out any) error {
	dbItem, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return dbItem.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func setJSON(txn *badger.Txn, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}
	return txn.Set([]byte(key), data)
}

// AddItem adds a new inventory item
func (r *BadgerInventoryRepository) AddItem(ctx context.Context, item *domain.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	seq, err := r.seq.Next()
	if err != nil {
		return errors.Wrap(err, "failed to allocate item sequence")
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, itemPrefix+item.ID, storedItem{Seq: seq, Item: item})
	})
}

// GetItem retrieves an inventory item by ID
func (r *BadgerInventoryRepository) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var stored storedItem

	err := r.db.View(func(txn *badger.Txn) error {
		err := getJSON(txn, itemPrefix+id, &stored)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &domain.InventoryItemNotFoundError{ID: id}
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return stored.Item, nil
}

// UpdateItem updates an existing inventory item, keeping its position in listings
func (r *BadgerInventoryRepository) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := itemPrefix + item.ID

		var existing storedItem
		err := getJSON(txn, key, &existing)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &domain.InventoryItemNotFoundError{ID: item.ID}
		}
		if err != nil {
			return err
		}

		return setJSON(txn, key, storedItem{Seq: existing.Seq, Item: item})
	})
}

// DeleteItem removes an inventory item
func (r *BadgerInventoryRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(itemPrefix + id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &domain.InventoryItemNotFoundError{ID: id}
			}
			return err
		}
		return txn.Delete(key)
	})
}

// DeleteItems removes the given items and reports how many existed
func (r *BadgerInventoryRepository) DeleteItems(ctx context.Context, ids []string) (int, error) {
	deleted := 0

	err := r.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			key := []byte(itemPrefix + id)
			if _, err := txn.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			if err := txn.Delete(key); err != nil {
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

// ListItems retrieves a filtered list of inventory items in insertion order
func (r *BadgerInventoryRepository) ListItems(ctx context.Context, filters ListFilters) ([]*domain.InventoryItem, int, error) {
	var stored []storedItem

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(itemPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var s storedItem
				if err := json.Unmarshal(val, &s); err != nil {
					return err
				}
				stored = append(stored, s)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list items")
	}

	items, total := applyListFilters(sortStoredItems(stored), filters)
	return items, total, nil
}

// GetAllItems retrieves all inventory items
func (r *BadgerInventoryRepository) GetAllItems(ctx context.Context) ([]*domain.InventoryItem, error) {
	items, _, err := r.ListItems(ctx, ListFilters{})
	return items, err
}

// AddProductType adds a product type, replacing any type with the same ID
func (r *BadgerInventoryRepository) AddProductType(ctx context.Context, productType *domain.ProductType) error {
	if productType.ID == "" {
		productType.ID = uuid.New().String()
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, typePrefix+productType.ID, productType)
	})
}

// GetProductType retrieves a product type by ID
func (r *BadgerInventoryRepository) GetProductType(ctx context.Context, id string) (*domain.ProductType, error) {
	var productType domain.ProductType

	err := r.db.View(func(txn *badger.Txn) error {
		err := getJSON(txn, typePrefix+id, &productType)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &domain.ProductTypeNotFoundError{ID: id}
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return &productType, nil
}

// ListProductTypes retrieves all product types ordered by ID
func (r *BadgerInventoryRepository) ListProductTypes(ctx context.Context) ([]*domain.ProductType, error) {
	var types []*domain.ProductType

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(typePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var productType domain.ProductType
				if err := json.Unmarshal(val, &productType); err != nil {
					return err
				}
				types = append(types, &productType)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product types")
	}

	return types, nil
}

// AddNotification stores a notification
func (r *BadgerInventoryRepository) AddNotification(ctx context.Context, notification *domain.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, notificationPrefix+notification.ID, notification)
	})
}

// ListNotifications returns matching notifications, oldest first
func (r *BadgerInventoryRepository) ListNotifications(ctx context.Context, filters NotificationFilters) ([]*domain.Notification, error) {
	var notifications []*domain.Notification

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(notificationPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var n domain.Notification
				if err := json.Unmarshal(val, &n); err != nil {
					return err
				}
				if filters.matches(&n) {
					notifications = append(notifications, &n)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	sortNotifications(notifications)
	return notifications, nil
}

// DeleteNotification removes a notification
func (r *BadgerInventoryRepository) DeleteNotification(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(notificationPrefix + id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &domain.NotificationNotFoundError{ID: id}
			}
			return err
		}
		return txn.Delete(key)
	})
}

// DeleteNotificationsBefore removes notifications created before cutoff
func (r *BadgerInventoryRepository) DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	deleted := 0

	err := r.db.Update(func(txn *badger.Txn) error {
		var stale [][]byte

		it := txn.NewIterator(badger.DefaultIteratorOptions)
		prefix := []byte(notificationPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			dbItem := it.Item()
			err := dbItem.Value(func(val []byte) error {
				var n domain.Notification
				if err := json.Unmarshal(val, &n); err != nil {
					return err
				}
				if n.CreatedAt.Before(cutoff) {
					stale = append(stale, dbItem.KeyCopy(nil))
				}
				return nil
			})
			if err != nil {
				it.Close()
				return err
			}
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		deleted = len(stale)
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete old notifications")
	}

	return deleted, nil
}

// GetBudget retrieves the household budget
func (r *BadgerInventoryRepository) GetBudget(ctx context.Context) (*domain.Budget, error) {
	var budget domain.Budget

	err := r.db.View(func(txn *badger.Txn) error {
		err := getJSON(txn, budgetKey, &budget)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.ErrBudgetNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return &budget, nil
}

// SaveBudget creates or replaces the household budget
func (r *BadgerInventoryRepository) SaveBudget(ctx context.Context, budget *domain.Budget) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, budgetKey, budget)
	})
}

// DeleteBudget removes the household budget
func (r *BadgerInventoryRepository) DeleteBudget(ctx context.Context) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(budgetKey)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrBudgetNotFound
			}
			return err
		}
		return txn.Delete([]byte(budgetKey))
	})
}

func badgerListSequenced[T any](txn *badger.Txn, prefix string) ([]*T, error) {
	var stored []sequenced[T]

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		err := it.Item().Value(func(val []byte) error {
			var s sequenced[T]
			if err := json.Unmarshal(val, &s); err != nil {
				return err
			}
			stored = append(stored, s)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return sortSequenced(stored), nil
}

func badgerPutSequenced[T any](r *BadgerInventoryRepository, key string, value *T) error {
	seq, err := r.seq.Next()
	if err != nil {
		return errors.Wrap(err, "failed to allocate sequence")
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, key, sequenced[T]{Seq: seq, Value: value})
	})
}

// AddRecipe stores a new recipe
func (r *BadgerInventoryRepository) AddRecipe(ctx context.Context, recipe *domain.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	return badgerPutSequenced(r, recipePrefix+recipe.ID, recipe)
}

// GetRecipe retrieves a recipe by ID
func (r *BadgerInventoryRepository) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	var stored sequenced[domain.Recipe]

	err := r.db.View(func(txn *badger.Txn) error {
		err := getJSON(txn, recipePrefix+id, &stored)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &domain.RecipeNotFoundError{ID: id}
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return stored.Value, nil
}

// ListRecipes returns all recipes in insertion order
func (r *BadgerInventoryRepository) ListRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	var recipes []*domain.Recipe

	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		recipes, err = badgerListSequenced[domain.Recipe](txn, recipePrefix)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recipes")
	}

	return recipes, nil
}

// AddShoppingEntry appends an entry to the shopping list
func (r *BadgerInventoryRepository) AddShoppingEntry(ctx context.Context, entry *domain.ShoppingEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return badgerPutSequenced(r, shoppingPrefix+entry.ID, entry)
}

// GetShoppingEntry retrieves a shopping list entry by ID
func (r *BadgerInventoryRepository) GetShoppingEntry(ctx context.Context, id string) (*domain.ShoppingEntry, error) {
	var stored sequenced[domain.ShoppingEntry]

	err := r.db.View(func(txn *badger.Txn) error {
		err := getJSON(txn, shoppingPrefix+id, &stored)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &domain.ShoppingEntryNotFoundError{ID: id}
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return stored.Value, nil
}

// UpdateShoppingEntry replaces an entry, keeping its position in the list
func (r *BadgerInventoryRepository) UpdateShoppingEntry(ctx context.Context, entry *domain.ShoppingEntry) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := shoppingPrefix + entry.ID

		var existing sequenced[domain.ShoppingEntry]
		err := getJSON(txn, key, &existing)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &domain.ShoppingEntryNotFoundError{ID: entry.ID}
		}
		if err != nil {
			return err
		}

		return setJSON(txn, key, sequenced[domain.ShoppingEntry]{Seq: existing.Seq, Value: entry})
	})
}

// ListShoppingEntries returns the shopping list in insertion order
func (r *BadgerInventoryRepository) ListShoppingEntries(ctx context.Context) ([]*domain.ShoppingEntry, error) {
	var entries []*domain.ShoppingEntry

	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		entries, err = badgerListSequenced[domain.ShoppingEntry](txn, shoppingPrefix)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shopping entries")
	}

	return entries, nil
}

// DeleteShoppingEntries removes the given entries and reports how many existed
func (r *BadgerInventoryRepository) DeleteShoppingEntries(ctx context.Context, ids []string) (int, error) {
	deleted := 0

	err := r.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			key := []byte(shoppingPrefix + id)
			if _, err := txn.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			if err := txn.Delete(key); err != nil {
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
func (r *BadgerInventoryRepository) initializeDefaultProductTypes() error {
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
