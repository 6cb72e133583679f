package postgres

import (
	"context"
	"testing"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestEquipmentRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("FROM equipment WHERE id").WithArgs(int32(5)).
			WillReturnRows(equipmentRow(5, 10, 4, 2))

		e, err := repo.GetByID(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), e.ID)
		assert.Equal(t, int32(4), e.Available())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM equipment WHERE id").WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(equipmentCols))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEquipmentRepository_SetMaintenance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE equipment SET on_maintenance").
			WithArgs(int32(3), sqlmock.AnyArg(), int32(5)).
			WillReturnRows(equipmentRow(5, 10, 4, 3))

		e, err := repo.SetMaintenance(ctx, 5, 3)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), e.OnMaintenance)
		assert.Equal(t, int32(3), e.Available())
	})

	t.Run("OutOfRange", func(t *testing.T) {
		// The guarded UPDATE matches no row; the follow-up read finds the
		// equipment, so the failure is the bound, not a missing row.
		mock.ExpectQuery("UPDATE equipment SET on_maintenance").
			WithArgs(int32(8), sqlmock.AnyArg(), int32(5)).
			WillReturnRows(sqlmock.NewRows(equipmentCols))
		mock.ExpectQuery("FROM equipment WHERE id").WithArgs(int32(5)).
			WillReturnRows(equipmentRow(5, 10, 4, 2))

		_, err := repo.SetMaintenance(ctx, 5, 8)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE equipment SET on_maintenance").
			WithArgs(int32(1), sqlmock.AnyArg(), int32(99)).
			WillReturnRows(sqlmock.NewRows(equipmentCols))
		mock.ExpectQuery("FROM equipment WHERE id").WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(equipmentCols))

		_, err := repo.SetMaintenance(ctx, 99, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEquipmentRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	update := func(total int32) error {
		return repo.Update(ctx, &domain.Equipment{
			ID: 5, Name: "JCB 3DX", Category: "Excavator",
			RatePerDayPaise: 250000, TotalManaged: total,
		})
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET name").
			WithArgs("JCB 3DX", "Excavator", int64(250000), "", int32(12), sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, update(12))
	})

	t.Run("TotalBelowCommitted", func(t *testing.T) {
		// 4 on rent and 2 in maintenance: lowering the total to 5 would pin
		// Available() at the clamp, so the guarded UPDATE matches no row.
		mock.ExpectExec("UPDATE equipment SET name").
			WithArgs("JCB 3DX", "Excavator", int64(250000), "", int32(5), sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("FROM equipment WHERE id").WithArgs(int32(5)).
			WillReturnRows(equipmentRow(5, 10, 4, 2))

		err := update(5)
		assert.ErrorIs(t, err, domain.ErrTotalBelowCommitted)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET name").
			WithArgs("JCB 3DX", "Excavator", int64(250000), "", int32(12), sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("FROM equipment WHERE id").WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows(equipmentCols))

		err := update(12)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEquipmentRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("RefusedWhileOnRent", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET deleted_on").
			WithArgs(sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET deleted_on").
			WithArgs(sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, 5)
		assert.NoError(t, err)
	})
}
