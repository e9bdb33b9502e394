package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/rental"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormBookingRepository_FindByID(t *testing.T) {
	t.Run("finds existing booking", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(db)

		bookingID := uuid.New()
		tenantID := uuid.New()
		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "property_id", "tenant_id", "owner_id", "status", "version"}).
			AddRow(bookingID, uuid.New(), tenantID, ownerID, "PENDING", 1)

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(bookingID, 1).
			WillReturnRows(rows)

		booking, err := repo.FindByID(context.Background(), bookingID)

		assert.NoError(t, err)
		require.NotNil(t, booking)
		assert.Equal(t, bookingID, booking.ID)
		assert.Equal(t, rental.BookingStatusPending, booking.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing booking to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(db)

		bookingID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "bookings"`).
			WithArgs(bookingID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		booking, err := repo.FindByID(context.Background(), bookingID)

		assert.Nil(t, booking)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookingRepository_FindByParty(t *testing.T) {
	t.Run("scopes owners to owner_id", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(db)

		ownerID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "owner_id", "status"}).
			AddRow(uuid.New(), ownerID, "PENDING").
			AddRow(uuid.New(), ownerID, "ACTIVE")

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE owner_id = \$1 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(ownerID, shared.DefaultFilter().PageSize).
			WillReturnRows(rows)

		owner := shared.NewActor(ownerID, shared.RoleOwner)
		bookings, err := repo.FindByParty(context.Background(), owner, shared.DefaultFilter())

		assert.NoError(t, err)
		assert.Len(t, bookings, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scopes tenants to tenant_id", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(db)

		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE tenant_id = \$1 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(tenantID, shared.DefaultFilter().PageSize).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		tenant := shared.NewActor(tenantID, shared.RoleTenant)
		bookings, err := repo.FindByParty(context.Background(), tenant, shared.DefaultFilter())

		assert.NoError(t, err)
		assert.Empty(t, bookings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookingRepository_SaveWithLock(t *testing.T) {
	t.Run("increments version on matching save", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(db)

		booking := &rental.Booking{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Status:            rental.BookingStatusAccepted,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "bookings" WHERE id = \$1`).
			WithArgs(booking.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectExec(`UPDATE "bookings" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithLock(context.Background(), booking)

		assert.NoError(t, err)
		assert.Equal(t, 2, booking.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict on stale version", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(db)

		booking := &rental.Booking{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Status:            rental.BookingStatusAccepted,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "bookings" WHERE id = \$1`).
			WithArgs(booking.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(7))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), booking)

		assert.ErrorIs(t, err, shared.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing row", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(db)

		booking := &rental.Booking{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "bookings" WHERE id = \$1`).
			WithArgs(booking.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), booking)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookingRepository_CountByParty(t *testing.T) {
	t.Run("counts with status filter", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(db)

		tenantID := uuid.New()
		filter := shared.DefaultFilter()
		filter.Filters["status"] = "PENDING"

		mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE tenant_id = \$1 AND status = \$2`).
			WithArgs(tenantID, "PENDING").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		tenant := shared.NewActor(tenantID, shared.RoleTenant)
		count, err := repo.CountByParty(context.Background(), tenant, filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
