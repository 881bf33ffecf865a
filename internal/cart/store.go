package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Storage persists a cart between sessions.
type Storage interface {
	Load() (Cart, error)
	Save(c Cart) error
}

// FileStorage keeps the cart as JSON in a local file.
type FileStorage struct {
	Path string
}

// Load reads the cart. A missing file is an empty cart.
func (s FileStorage) Load() (Cart, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Cart{}, nil
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return Normalize(lines), nil
}

// Save writes the cart through a temporary file and renames it into place.
func (s FileStorage) Save(c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".cart-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cart: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to replace cart: %w", err)
	}
	return nil
}

// Store holds the current cart and persists it after every mutation.
type Store struct {
	mu      sync.Mutex
	cart    Cart
	storage Storage
	logger  zerolog.Logger
}

// NewStore loads the persisted cart from storage.
func NewStore(storage Storage, logger zerolog.Logger) (*Store, error) {
	c, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Store{
		cart:    c,
		storage: storage,
		logger:  logger.With().Str("component", "cart").Logger(),
	}, nil
}

// Items returns the current cart.
func (s *Store) Items() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.clone()
}

func (s *Store) apply(op string, fn func(Cart) Cart) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.cart)
	if err := s.storage.Save(next); err != nil {
		s.logger.Error().Err(err).Str("op", op).Msg("failed to persist cart")
		return s.cart.clone(), err
	}
	s.cart = next

	s.logger.Debug().Str("op", op).Int("lines", len(next)).Int("units", next.Count()).Msg("cart updated")
	return next.clone(), nil
}

// Add adds item to the cart.
func (s *Store) Add(item Line) (Cart, error) {
	return s.apply("add", func(c Cart) Cart { return Add(c, item) })
}

// Remove removes lines for id, optionally restricted to size.
func (s *Store) Remove(id string, size *string) (Cart, error) {
	return s.apply("remove", func(c Cart) Cart { return Remove(c, id, size) })
}

// UpdateQuantity sets the quantity of the matching lines.
func (s *Store) UpdateQuantity(id string, size *string, qty int) (Cart, error) {
	return s.apply("update_quantity", func(c Cart) Cart { return UpdateQuantity(c, id, size, qty) })
}

// Clear empties the cart, typically after checkout.
func (s *Store) Clear() error {
	_, err := s.apply("clear", func(Cart) Cart { return Cart{} })
	return err
}
