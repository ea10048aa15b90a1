package professional

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
)

var testDB *storagetest.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = storagetest.Open("salon_test_professional")
	if err != nil {
		log.Fatalf("failed to prepare test database: %v", err)
	}

	code := m.Run()
	if err := testDB.Close(); err != nil {
		log.Printf("failed to drop test schema: %v", err)
	}
	os.Exit(code)
}

func TestRepository_GetByID(t *testing.T) {
	db := storagetest.Require(t, testDB)
	ctx := context.Background()
	repo := NewRepository(dbmetrics.Wrap(db, nil))

	id := uuid.NewString()
	require.NoError(t, storagetest.SeedProfessional(ctx, db, id, "Ana", "42.5"))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.True(t, got.CommissionPercentDefault.Equal(decimal.RequireFromString("42.5")))
	assert.True(t, got.IsActive)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db := storagetest.Require(t, testDB)
	repo := NewRepository(dbmetrics.Wrap(db, nil))

	_, err := repo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}
