package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"slay-store/internal/model"
	"slay-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddress(userID string, isDefault bool, createdAt time.Time) *model.Address {
	return &model.Address{
		ID:           uuid.NewString(),
		UserID:       userID,
		FullName:     "Asha Rao",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
		Country:      model.DefaultCountry,
		AddressType:  model.AddressTypeHome,
		IsDefault:    isDefault,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func countDefaults[T any](items []T, isDefault func(T) bool) int {
	n := 0
	for _, it := range items {
		if isDefault(it) {
			n++
		}
	}
	return n
}

func TestUserRepository_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	repo := repository.NewUserRepository(testDB.Pool, zerolog.Nop())
	ctx := context.Background()

	t.Run("Create and lookup by email", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		now := time.Now().UTC()
		user := &model.User{
			ID:           uuid.NewString(),
			Name:         "Asha",
			Email:        "asha@example.com",
			PasswordHash: "hash",
			Role:         model.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		require.NoError(t, repo.Create(ctx, user))

		got, err := repo.GetByEmail(ctx, "ASHA@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "hash", got.PasswordHash)
		assert.JSONEq(t, `[]`, string(got.Cart))
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedUser(t, testDB.Pool, "dup@example.com")

		err := repo.Create(ctx, &model.User{
			ID:           uuid.NewString(),
			Name:         "Other",
			Email:        "dup@example.com",
			PasswordHash: "hash",
			Role:         model.RoleUser,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		})
		assert.ErrorIs(t, err, model.ErrEmailTaken)
	})

	t.Run("GetByID returns nil for unknown user", func(t *testing.T) {
		got, err := repo.GetByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Update role and cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := SeedUser(t, testDB.Pool, "role@example.com")

		user.Role = model.RoleAdmin
		user.UpdatedAt = time.Now().UTC()
		require.NoError(t, repo.Update(ctx, user))

		cart := json.RawMessage(`[{"id":"p1","quantity":2}]`)
		require.NoError(t, repo.UpdateCart(ctx, user.ID, cart))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, got.Role)
		assert.JSONEq(t, string(cart), string(got.Cart))

		assert.ErrorIs(t, repo.UpdateCart(ctx, uuid.NewString(), cart), model.ErrUserNotFound)
	})
}

func TestAddressRepository_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	repo := repository.NewAddressRepository(testDB.Pool, zerolog.Nop())
	ctx := context.Background()

	t.Run("Second default clears the first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := SeedUser(t, testDB.Pool, "a@x.com")

		base := time.Now().UTC().Add(-time.Hour)
		first := newAddress(user.ID, true, base)
		second := newAddress(user.ID, true, base.Add(time.Minute))
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))

		list, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, 1, countDefaults(list, func(a model.Address) bool { return a.IsDefault }))
		assert.Equal(t, second.ID, list[0].ID)
		assert.True(t, list[0].IsDefault)
	})

	t.Run("Update to default clears others and sorts first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := SeedUser(t, testDB.Pool, "b@x.com")

		base := time.Now().UTC().Add(-time.Hour)
		older := newAddress(user.ID, false, base)
		current := newAddress(user.ID, true, base.Add(time.Minute))
		require.NoError(t, repo.Create(ctx, older))
		require.NoError(t, repo.Create(ctx, current))

		older.IsDefault = true
		older.City = "Mysuru"
		older.UpdatedAt = time.Now().UTC()
		require.NoError(t, repo.Update(ctx, older))

		list, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, older.ID, list[0].ID)
		assert.Equal(t, "Mysuru", list[0].City)
		assert.Equal(t, 1, countDefaults(list, func(a model.Address) bool { return a.IsDefault }))
	})

	t.Run("Defaults of other users are untouched", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		alice := SeedUser(t, testDB.Pool, "alice@x.com")
		bob := SeedUser(t, testDB.Pool, "bob@x.com")

		now := time.Now().UTC()
		require.NoError(t, repo.Create(ctx, newAddress(alice.ID, true, now)))
		require.NoError(t, repo.Create(ctx, newAddress(bob.ID, true, now)))

		list, err := repo.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].IsDefault)
	})

	t.Run("Delete is scoped to the owner", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		owner := SeedUser(t, testDB.Pool, "owner@x.com")
		other := SeedUser(t, testDB.Pool, "other@x.com")

		addr := newAddress(owner.ID, false, time.Now().UTC())
		require.NoError(t, repo.Create(ctx, addr))

		deleted, err := repo.Delete(ctx, addr.ID, other.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = repo.Delete(ctx, addr.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := repo.GetByID(ctx, addr.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Update of missing address", func(t *testing.T) {
		err := repo.Update(ctx, newAddress(uuid.NewString(), false, time.Now()))
		assert.ErrorIs(t, err, model.ErrAddressNotFound)
	})
}

func TestPaymentMethodRepository_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	repo := repository.NewPaymentMethodRepository(testDB.Pool, zerolog.Nop())
	ctx := context.Background()

	newCard := func(userID, number string, isDefault bool, createdAt time.Time) *model.PaymentMethod {
		p := &model.PaymentMethod{
			ID:             uuid.NewString(),
			UserID:         userID,
			CardHolderName: "Asha Rao",
			ExpiryDate:     "12/29",
			IsDefault:      isDefault,
			CreatedAt:      createdAt,
			UpdatedAt:      createdAt,
		}
		p.SetCardNumber(number)
		return p
	}

	t.Run("Only last four digits are stored and one default remains", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := SeedUser(t, testDB.Pool, "card@x.com")

		base := time.Now().UTC().Add(-time.Hour)
		require.NoError(t, repo.Create(ctx, newCard(user.ID, "4123456789012345", true, base)))
		require.NoError(t, repo.Create(ctx, newCard(user.ID, "5500000000000004", true, base.Add(time.Minute))))

		list, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "0004", list[0].CardNumber)
		assert.Equal(t, model.CardTypeMastercard, list[0].CardType)
		assert.True(t, list[0].IsDefault)
		assert.Equal(t, "2345", list[1].CardNumber)
		assert.False(t, list[1].IsDefault)
	})

	t.Run("Full card number is rejected by the store", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := SeedUser(t, testDB.Pool, "raw@x.com")

		p := newCard(user.ID, "4111", false, time.Now().UTC())
		p.CardNumber = "4111111111111111"
		assert.Error(t, repo.Create(ctx, p))
	})

	t.Run("Delete is scoped to the owner", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		owner := SeedUser(t, testDB.Pool, "cardowner@x.com")

		p := newCard(owner.ID, "371449635398431", false, time.Now().UTC())
		require.NoError(t, repo.Create(ctx, p))

		deleted, err := repo.Delete(ctx, p.ID, uuid.NewString())
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = repo.Delete(ctx, p.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestProductRepository_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	repo := repository.NewProductRepository(testDB.Pool, zerolog.Nop())
	ctx := context.Background()

	seed := func(t *testing.T) []*model.Product {
		t.Helper()
		base := time.Now().UTC().Add(-time.Hour)
		original := 1999.0
		products := []*model.Product{
			{Name: "Everyday Tee", Price: 799, Category: model.CategoryEveryday, InStock: true},
			{Name: "Luxe Hoodie", Price: 2499, OriginalPrice: &original, Category: model.CategoryLuxe, IsBestseller: true, OnSale: true, InStock: true, Sizes: []string{"S", "M"}},
			{Name: "Drop 01", Price: 3999, Category: model.CategoryLimited, IsBestseller: true},
		}
		for i, p := range products {
			p.ID = uuid.NewString()
			p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			p.UpdatedAt = p.CreatedAt
			require.NoError(t, repo.Create(ctx, p))
		}
		return products
	}

	t.Run("GetAll returns newest first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		products := seed(t)

		got, err := repo.GetAll(ctx, model.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, products[2].ID, got[0].ID)
		assert.Equal(t, products[0].ID, got[2].ID)
		assert.Equal(t, []string{}, got[2].Sizes)
	})

	t.Run("GetAll applies filters", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seed(t)

		bestseller := true
		got, err := repo.GetAll(ctx, model.ProductFilter{Bestseller: &bestseller})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		inStock := true
		got, err = repo.GetAll(ctx, model.ProductFilter{Bestseller: &bestseller, InStock: &inStock})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Luxe Hoodie", got[0].Name)
		require.NotNil(t, got[0].OriginalPrice)
		assert.Equal(t, 1999.0, *got[0].OriginalPrice)
		assert.Equal(t, []string{"S", "M"}, got[0].Sizes)

		got, err = repo.GetAll(ctx, model.ProductFilter{Category: model.CategoryLimited})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("Update, Delete and Count", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		products := seed(t)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		p := products[0]
		p.Price = 899
		p.UpdatedAt = time.Now().UTC()
		ok, err := repo.Update(ctx, p)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 899.0, got.Price)

		ok, err = repo.Delete(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Delete(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBannerRepository_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	repo := repository.NewBannerRepository(testDB.Pool, zerolog.Nop())
	ctx := context.Background()

	CleanupDB(t, testDB.Pool)
	now := time.Now().UTC()
	banners := []*model.Banner{
		{Title: "Second", Image: "b.jpg", Order: 2, Active: true},
		{Title: "Hidden", Image: "c.jpg", Order: 0, Active: false},
		{Title: "First", Image: "a.jpg", Order: 1, Active: true},
	}
	for _, b := range banners {
		b.ID = uuid.NewString()
		b.CreatedAt = now
		b.UpdatedAt = now
		require.NoError(t, repo.Create(ctx, b))
	}

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "First", active[0].Title)
	assert.Equal(t, "Second", active[1].Title)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Hidden", all[0].Title)

	hidden := banners[1]
	hidden.Active = true
	hidden.UpdatedAt = now.Add(time.Minute)
	ok, err := repo.Update(ctx, hidden)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, hidden.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.WithinDuration(t, hidden.UpdatedAt, got.UpdatedAt, time.Millisecond)
}

func TestOrderRepository_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	repo := repository.NewOrderRepository(testDB.Pool, zerolog.Nop())
	ctx := context.Background()

	newOrder := func(t *testing.T, userID string, createdAt time.Time) *model.Order {
		t.Helper()
		o := &model.Order{
			ID:     uuid.NewString(),
			UserID: userID,
			Items: []model.OrderItem{
				{ProductID: "p1", ProductName: "Tee", Price: 250, Quantity: 2, Size: "M",
					Customizations: map[string]any{"text": "SLAY"}},
			},
			ShippingAddress: model.ShippingAddress{
				FullName: "Asha Rao", Phone: "9876543210", AddressLine1: "12 MG Road",
				City: "Bengaluru", State: "Karnataka", Pincode: "560001",
			},
			PaymentMethod: model.OrderPaymentMethod{Method: model.PaymentProviderCOD},
			Pricing:       model.Pricing{Subtotal: 500, Total: 500},
			Status:        model.OrderStatusPending,
			PaymentStatus: model.PaymentStatusPending,
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
		}
		require.NoError(t, o.EnsureOrderNumber(createdAt))
		return o
	}

	t.Run("Create and GetByID round trips snapshots", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := SeedUser(t, testDB.Pool, "order@x.com")

		o := newOrder(t, user.ID, time.Now().UTC())
		require.NoError(t, repo.Create(ctx, o))

		got, err := repo.GetByID(ctx, o.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, o.OrderNumber, got.OrderNumber)
		assert.Equal(t, o.ShippingAddress, got.ShippingAddress)
		assert.Equal(t, o.Pricing, got.Pricing)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "SLAY", got.Items[0].Customizations["text"])
	})

	t.Run("Duplicate order number is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := SeedUser(t, testDB.Pool, "dupnum@x.com")

		first := newOrder(t, user.ID, time.Now().UTC())
		require.NoError(t, repo.Create(ctx, first))

		second := newOrder(t, user.ID, time.Now().UTC())
		second.OrderNumber = first.OrderNumber
		assert.Error(t, repo.Create(ctx, second))
	})

	t.Run("ListByUser is newest first and scoped", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := SeedUser(t, testDB.Pool, "list@x.com")
		other := SeedUser(t, testDB.Pool, "list2@x.com")

		base := time.Now().UTC().Add(-time.Hour)
		older := newOrder(t, user.ID, base)
		newer := newOrder(t, user.ID, base.Add(time.Minute))
		require.NoError(t, repo.Create(ctx, older))
		require.NoError(t, repo.Create(ctx, newer))
		require.NoError(t, repo.Create(ctx, newOrder(t, other.ID, base)))

		list, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)
	})

	t.Run("List filters and pages", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := SeedUser(t, testDB.Pool, "admin-list@x.com")

		base := time.Now().UTC().Add(-time.Hour)
		for i := 0; i < 5; i++ {
			o := newOrder(t, user.ID, base.Add(time.Duration(i)*time.Minute))
			if i%2 == 0 {
				o.Status = model.OrderStatusShipped
				o.PaymentStatus = model.PaymentStatusPaid
			}
			require.NoError(t, repo.Create(ctx, o))
		}

		orders, total, err := repo.List(ctx, model.OrderFilter{Status: model.OrderStatusShipped, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, orders, 2)

		orders, total, err = repo.List(ctx, model.OrderFilter{
			Status:        model.OrderStatusShipped,
			PaymentStatus: model.PaymentStatusPaid,
			Limit:         10,
			Skip:          2,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, orders, 1)

		orders, total, err = repo.List(ctx, model.OrderFilter{Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Len(t, orders, 5)
	})

	t.Run("UpdateIfStatus honours the guard", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := SeedUser(t, testDB.Pool, "guard@x.com")

		o := newOrder(t, user.ID, time.Now().UTC())
		require.NoError(t, repo.Create(ctx, o))

		o.Status = model.OrderStatusCancelled
		o.UpdatedAt = time.Now().UTC()
		ok, err := repo.UpdateIfStatus(ctx, o, model.OrderStatusConfirmed)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.UpdateIfStatus(ctx, o, model.OrderStatusPending)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.GetByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCancelled, got.Status)
	})

	t.Run("Update missing order", func(t *testing.T) {
		err := repo.Update(ctx, &model.Order{ID: uuid.NewString(), Status: model.OrderStatusShipped})
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}
