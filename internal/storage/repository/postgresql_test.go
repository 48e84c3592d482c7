package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makingkings/mentorship-api/internal/models"
)

func TestStorage_CreateUserTx(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	tx, err := storage.BeginTx(ctx)
	require.NoError(t, err)

	userID, err := storage.CreateUserTx(ctx, tx, models.User{
		Email:     "john@example.com",
		FirstName: "John",
		LastName:  "Doe",
		Password:  "john@example.com",
		Role:      models.RoleUser,
		IsActive:  true,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	got, err := storage.GetUserByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, got.ID)
	assert.Equal(t, "John", got.FirstName)
	assert.Equal(t, models.RoleUser, got.Role)

	// Повторная регистрация с тем же email
	tx, err = storage.BeginTx(ctx)
	require.NoError(t, err)
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = storage.CreateUserTx(ctx, tx, models.User{
		Email:     "john@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "john@example.com",
		Role:      models.RoleUser,
		IsActive:  true,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestStorage_ReconcileFlow(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	programID := factory.CreateProgram(t, "Premium Mentorship Program", 161.20)
	userID := factory.CreateUser(t, "member@example.com", "Mary", "Smith", models.RoleUser)

	tx, err := storage.BeginTx(ctx)
	require.NoError(t, err)

	sub, err := storage.CreateSubscriptionTx(ctx, tx, models.Subscription{
		UserID:          userID,
		ProgramID:       programID,
		AmountPaid:      161.20,
		RemainingAmount: 0,
		PaymentStatus:   models.PaymentStatusFullyPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFullyPaid, sub.PaymentStatus)

	paymentID, err := storage.CreatePaymentTx(ctx, tx, models.Payment{
		SubscriptionID: sub.ID,
		Amount:         161.20,
		PaymentMethod:  "Bank Transfer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, paymentID)

	require.NoError(t, storage.UpgradeUserTx(ctx, tx, userID, programID))
	require.NoError(t, tx.Commit())

	got, err := storage.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.RolePremium, got.Role)
	require.NotNil(t, got.ProgramID)
	assert.Equal(t, programID, *got.ProgramID)

	subs, err := storage.ListSubscriptionsByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Len(t, subs[0].Payments, 1)
	assert.Equal(t, "Bank Transfer", subs[0].Payments[0].PaymentMethod)

	// Повторная сверка той же пары (user, program)
	tx, err = storage.BeginTx(ctx)
	require.NoError(t, err)
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = storage.CreateSubscriptionTx(ctx, tx, models.Subscription{
		UserID:        userID,
		ProgramID:     programID,
		AmountPaid:    161.20,
		PaymentStatus: models.PaymentStatusFullyPaid,
	})
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestStorage_Programs(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	created, err := storage.CreateProgram(ctx, models.Program{
		Name:     "Mentorship for Singles",
		Features: "Weekly sessions",
		Duration: "6 months",
		Price:    78,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// Имя занято без учёта регистра
	_, err = storage.CreateProgram(ctx, models.Program{
		Name:     "MENTORSHIP FOR SINGLES",
		Features: "Other",
		Duration: "12 months",
		Price:    100,
	})
	assert.ErrorIs(t, err, ErrNameTaken)

	updated, err := storage.UpdateProgram(ctx, models.DummyUpdateProgram{
		ID:    created.ID,
		Price: 85,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mentorship for Singles", updated.Name)
	assert.InDelta(t, 85, updated.Price, 0.001)

	require.NoError(t, storage.SoftDeleteProgram(ctx, created.ID))

	_, err = storage.GetProgram(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := storage.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// После мягкого удаления имя снова свободно
	_, err = storage.CreateProgram(ctx, models.Program{
		Name:     "Mentorship for Singles",
		Features: "Weekly sessions",
		Duration: "6 months",
		Price:    78,
	})
	assert.NoError(t, err)

	err = storage.SoftDeleteProgram(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_ListUsers(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	factory.CreateUser(t, "alpha@example.com", "Alpha", "One", models.RoleUser)
	factory.CreateUser(t, "beta@example.com", "Beta", "Two", models.RoleUser)
	factory.CreateUser(t, "gamma@example.com", "Gamma", "Three", models.RolePremium)

	users, total, err := storage.ListUsers(ctx, models.ListFilter{
		Page: 1, Limit: 2, Role: "ALL", SortBy: "email", SortOrder: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, users, 2)
	assert.Equal(t, "alpha@example.com", users[0].Email)
	assert.Equal(t, "beta@example.com", users[1].Email)

	users, total, err = storage.ListUsers(ctx, models.ListFilter{
		Page: 1, Limit: 10, Role: models.RolePremium,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "gamma@example.com", users[0].Email)

	users, total, err = storage.ListUsers(ctx, models.ListFilter{
		Page: 1, Limit: 10, Role: "ALL", Search: "beta",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "Beta", users[0].FirstName)

	count, err := storage.CountUsersByRole(ctx, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStorage_Testimonies(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	created, err := storage.CreateTestimony(ctx, models.DummyTestimony{
		FirstName: "Grace",
		Email:     "grace@example.com",
		Testimony: "The program changed my life",
	})
	require.NoError(t, err)
	assert.Nil(t, created.Approved, "new testimony starts unmoderated")

	approved, err := storage.ApproveTestimony(ctx, created.ID, true)
	require.NoError(t, err)
	require.NotNil(t, approved.Approved)
	assert.True(t, *approved.Approved)

	_, err = storage.ApproveTestimony(ctx, uuid.New().String(), true)
	assert.ErrorIs(t, err, ErrNotFound)

	list, total, err := storage.ListTestimonies(ctx, models.ListFilter{
		Page: 1, Limit: 10, Search: "grace",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Grace", list[0].FirstName)

	count, err := storage.CountTestimonies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_AdminsAndActivity(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	adminID, err := storage.CreateAdmin(ctx, models.Admin{
		Email:        "admin@example.com",
		Name:         "Super Admin",
		PasswordHash: "hash-1",
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	})
	require.NoError(t, err)

	got, err := storage.GetAdminByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, adminID, got.ID)
	assert.Equal(t, "hash-1", got.PasswordHash)

	// Повторная заливка обновляет хеш пароля
	sameID, err := storage.CreateAdmin(ctx, models.Admin{
		Email:        "admin@example.com",
		Name:         "Super Admin",
		PasswordHash: "hash-2",
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, adminID, sameID)

	got, err = storage.GetAdminByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-2", got.PasswordHash)

	_, err = storage.GetAdminByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	logID, err := storage.CreateActivityLog(ctx, models.ActivityLog{
		AdminID: adminID,
		Action:  `Created program "Mentorship for Singles"`,
		Type:    models.ActivityCreate,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, logID)

	logs, total, err := storage.ListActivityLogs(ctx, models.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, logs, 1)
	assert.Equal(t, "admin@example.com", logs[0].AdminEmail)
	assert.Equal(t, models.ActivityCreate, logs[0].Type)
}
