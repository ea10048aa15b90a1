package appointment

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

var testDB *storagetest.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = storagetest.Open("salon_test_appointment")
	if err != nil {
		log.Fatalf("failed to prepare test database: %v", err)
	}

	code := m.Run()
	if err := testDB.Close(); err != nil {
		log.Printf("failed to drop test schema: %v", err)
	}
	os.Exit(code)
}

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func dayFilter(professionalID *string) domain.DayAppointmentsFilter {
	return domain.DayAppointmentsFilter{
		DayStart:       day,
		DayEnd:         day.AddDate(0, 0, 1),
		ProfessionalID: professionalID,
	}
}

type dbFixture struct {
	repo         *Repository
	wrapped      *dbmetrics.DB
	professional string
}

func newDBFixture(t *testing.T) *dbFixture {
	t.Helper()
	db := storagetest.Require(t, testDB)

	professionalID := uuid.NewString()
	require.NoError(t, storagetest.SeedProfessional(context.Background(), db, professionalID, "Ana", "40"))

	wrapped := dbmetrics.Wrap(db, nil)
	return &dbFixture{repo: NewRepository(wrapped), wrapped: wrapped, professional: professionalID}
}

func (f *dbFixture) seedAppointment(t *testing.T, professionalID string, startAt time.Time, minutes int) string {
	t.Helper()
	id := uuid.NewString()
	err := storagetest.SeedAppointment(context.Background(), testDB.DB, id, professionalID, "Maria",
		startAt, startAt.Add(time.Duration(minutes)*time.Minute))
	require.NoError(t, err)
	return id
}

func service(id, name, price string) domain.AppointmentService {
	return domain.AppointmentService{ServiceID: id, ServiceName: name, PriceCharged: decimal.RequireFromString(price)}
}

func TestRepository_GetByID_ServicesInInsertionOrder(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()
	id := f.seedAppointment(t, f.professional, day.Add(10*time.Hour), 60)

	require.NoError(t, f.repo.AddService(ctx, id, service("z-corte", "Corte", "80.00")))
	require.NoError(t, f.repo.AddService(ctx, id, service("a-escova", "Escova", "20.50")))

	got, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, f.professional, got.ProfessionalID)
	assert.Equal(t, domain.AppointmentStatusConfirmed, got.Status)
	assert.Nil(t, got.PaymentMethod)
	require.Len(t, got.Services, 2)
	assert.Equal(t, "z-corte", got.Services[0].ServiceID)
	assert.Equal(t, "a-escova", got.Services[1].ServiceID)
	assert.True(t, got.TotalCharged().Equal(decimal.RequireFromString("100.50")))
	assert.True(t, got.StartAt.Equal(day.Add(10*time.Hour)))
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	f := newDBFixture(t)

	_, err := f.repo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_GetByID_InTransaction(t *testing.T) {
	f := newDBFixture(t)
	id := f.seedAppointment(t, f.professional, day.Add(9*time.Hour), 30)

	err := txmanager.NewTransactionManager(f.wrapped).DoSerializable(context.Background(), func(txCtx context.Context) error {
		got, err := f.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		assert.Equal(t, id, got.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestRepository_ServiceEdits(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()
	id := f.seedAppointment(t, f.professional, day.Add(10*time.Hour), 60)

	require.NoError(t, f.repo.AddService(ctx, id, service("corte", "Corte", "80")))
	assert.ErrorIs(t, f.repo.AddService(ctx, id, service("corte", "Corte", "90")), ErrServiceAlreadyAdded)

	require.NoError(t, f.repo.RemoveService(ctx, id, "corte"))
	assert.ErrorIs(t, f.repo.RemoveService(ctx, id, "corte"), ErrServiceNotFound)

	got, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.Services)
}

func TestRepository_GetForDay(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()

	other := uuid.NewString()
	require.NoError(t, storagetest.SeedProfessional(ctx, testDB.DB, other, "Bia", "30"))

	late := f.seedAppointment(t, f.professional, day.Add(15*time.Hour), 60)
	early := f.seedAppointment(t, f.professional, day.Add(9*time.Hour), 60)
	overnight := f.seedAppointment(t, f.professional, day.Add(-time.Hour), 120)
	f.seedAppointment(t, f.professional, day.AddDate(0, 0, 1), 60)
	f.seedAppointment(t, f.professional, day.Add(-2*time.Hour), 120) // заканчивается ровно в начале дня
	otherID := f.seedAppointment(t, other, day.Add(11*time.Hour), 60)

	require.NoError(t, f.repo.AddService(ctx, early, service("corte", "Corte", "80")))
	require.NoError(t, f.repo.AddService(ctx, otherID, service("escova", "Escova", "40")))

	got, err := f.repo.GetForDay(ctx, dayFilter(&f.professional))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, overnight, got[0].ID)
	assert.Equal(t, early, got[1].ID)
	assert.Equal(t, late, got[2].ID)
	require.Len(t, got[1].Services, 1)
	assert.Equal(t, "corte", got[1].Services[0].ServiceID)
	assert.Empty(t, got[2].Services)

	all, err := f.repo.GetForDay(ctx, dayFilter(nil))
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, otherID, all[2].ID)
	require.Len(t, all[2].Services, 1)
}

func TestRepository_Complete(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()
	id := f.seedAppointment(t, f.professional, day.Add(10*time.Hour), 60)
	completedAt := day.Add(11 * time.Hour)
	payment := domain.PaymentSelection{Method: domain.PaymentMethodCreditCard, Installments: 3}

	require.NoError(t, f.repo.Complete(ctx, id, payment, completedAt))

	got, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusCompleted, got.Status)
	stored, ok := got.PaymentSelection()
	require.True(t, ok)
	assert.Equal(t, payment, stored)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completedAt))

	assert.ErrorIs(t, f.repo.Complete(ctx, id, payment, completedAt), ErrStatusConflict)
	assert.ErrorIs(t, f.repo.Complete(ctx, uuid.NewString(), payment, completedAt), ErrAppointmentNotFound)
}

func TestRepository_UpdateStatus(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()
	id := f.seedAppointment(t, f.professional, day.Add(10*time.Hour), 60)

	require.NoError(t, f.repo.UpdateStatus(ctx, id, domain.AppointmentStatusConfirmed, domain.AppointmentStatusCancelled))
	assert.ErrorIs(t,
		f.repo.UpdateStatus(ctx, id, domain.AppointmentStatusConfirmed, domain.AppointmentStatusCancelled),
		ErrStatusConflict)

	got, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsCancelled())
}
