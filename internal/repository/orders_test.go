package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-app/internal/apperr"
	"movie-app/internal/domain/billing"
	"movie-app/internal/domain/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) users.User {
	t.Helper()
	u := users.User{Name: "viewer", Email: email, Role: users.RoleUser}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedOrder(t *testing.T, repo *OrderRepository, userID uint, createdAt time.Time) *billing.Order {
	t.Helper()
	o := &billing.Order{
		ID:        uuid.New(),
		Status:    billing.StatusPending,
		Amount:    decimal.NewFromInt(499),
		Currency:  "RUB",
		UserID:    userID,
		Provider:  "yookassa",
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}

func TestOrderRepository_MarkPaid(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	paidAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return paidAt }

	user := seedUser(t, db, "buyer@example.com")
	order := seedOrder(t, repo, user.ID, paidAt.Add(-time.Hour))

	got, transitioned, err := repo.MarkPaid(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.Equal(t, billing.StatusPayed, got.Status)

	var stored billing.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, billing.StatusPayed, stored.Status)
	require.NotNil(t, stored.PaidAt)
	assert.True(t, stored.PaidAt.Equal(paidAt))
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(499)))

	var owner users.User
	require.NoError(t, db.First(&owner, user.ID).Error)
	assert.True(t, owner.IsHasPremium)
}

func TestOrderRepository_MarkPaidTwiceKeepsFirstPayment(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return first }

	user := seedUser(t, db, "buyer@example.com")
	order := seedOrder(t, repo, user.ID, first.Add(-time.Hour))

	_, transitioned, err := repo.MarkPaid(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, transitioned)

	repo.now = func() time.Time { return first.Add(24 * time.Hour) }
	got, transitioned, err := repo.MarkPaid(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.Equal(t, billing.StatusPayed, got.Status)

	var stored billing.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, billing.StatusPayed, stored.Status)
	require.NotNil(t, stored.PaidAt)
	assert.True(t, stored.PaidAt.Equal(first))
}

func TestOrderRepository_MarkPaidUnknownOrder(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))

	_, transitioned, err := repo.MarkPaid(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.False(t, transitioned)
}

func TestOrderRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com")
	order := seedOrder(t, repo, user.ID, time.Now().UTC())

	removed, err := repo.Delete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, removed.ID)

	var count int64
	require.NoError(t, db.Model(&billing.Order{}).Where("id = ?", order.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = repo.Delete(ctx, order.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = repo.Delete(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestOrderRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	oldest := seedOrder(t, repo, alice.ID, base)
	newest := seedOrder(t, repo, alice.ID, base.Add(48*time.Hour))
	middle := seedOrder(t, repo, bob.ID, base.Add(24*time.Hour))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{newest.ID, middle.ID, oldest.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

	mine, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newest.ID, mine[0].ID)
	assert.Equal(t, oldest.ID, mine[1].ID)

	none, err := repo.ListByUser(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestOrderRepository_SetProviderPayment(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com")
	order := seedOrder(t, repo, user.ID, time.Now().UTC())

	require.NoError(t, repo.SetProviderPayment(ctx, order.ID, "stripe", "cs_test_1"))

	var stored billing.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, "stripe", stored.Provider)
	require.NotNil(t, stored.ProviderPaymentID)
	assert.Equal(t, "cs_test_1", *stored.ProviderPaymentID)

	err := repo.SetProviderPayment(ctx, uuid.New(), "stripe", "cs_test_2")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
