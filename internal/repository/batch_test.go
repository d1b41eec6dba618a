package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

func openTestDB(t *testing.T) (*sql.DB, *slog.Logger) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	db, err := Open(context.Background(), Config{DSN: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, logger
}

func openTestRepo(t *testing.T) BatchRepository {
	t.Helper()
	return NewBatchRepository(openTestDB(t))
}

func sampleBatch() entity.BatchResult {
	return entity.BatchResult{
		MonthLabel: "March 2024",
		BillNumber: "EST/2024/031",
		OfficeName: "District Civil Hospital",
		Records: []entity.PayrollRecord{
			{
				ID:          "00125678",
				Name:        "Shri Kale A B",
				Designation: "Junior Clerk",
				Earnings: map[string]float64{
					constants.BasicPay: 30000,
					constants.Gross:    50000,
				},
				Deductions: map[string]float64{
					constants.GPF: 4000,
				},
				Gross:    50000,
				TotalDed: 5000,
				NetPay:   45000,
			},
			{
				ID:       "00225678",
				Name:     "Smt. Patil C D",
				Earnings: map[string]float64{constants.Gross: 40000},
				Gross:    40000,
			},
		},
		Validation: entity.ValidationResult{
			Valid:        true,
			ValidRecords: 2,
			Warnings:     []string{"record 00225678: earning sum 0.00 differs from gross 40000.00"},
			TotalGross:   90000,
			TotalDed:     5000,
			TotalNetPay:  45000,
		},
	}
}

func TestBatchRepository(t *testing.T) {
	t.Run("save then list round-trips records and fields", func(t *testing.T) {
		repo := openTestRepo(t)
		batchID := uuid.New()

		require.NoError(t, repo.SaveBatch(context.Background(), batchID, sampleBatch()))

		records, err := repo.ListRecords(context.Background(), batchID)
		require.NoError(t, err)
		require.Len(t, records, 2)

		rec := records[0]
		assert.Equal(t, "00125678", rec.ID)
		assert.Equal(t, "Shri Kale A B", rec.Name)
		assert.Equal(t, "Junior Clerk", rec.Designation)
		assert.Equal(t, 50000.0, rec.Gross)
		assert.Equal(t, 5000.0, rec.TotalDed)
		assert.Equal(t, 45000.0, rec.NetPay)
		assert.Equal(t, map[string]float64{
			constants.BasicPay: 30000,
			constants.Gross:    50000,
		}, rec.Earnings)
		assert.Equal(t, map[string]float64{constants.GPF: 4000}, rec.Deductions)

		assert.Equal(t, "00225678", records[1].ID)
		assert.Empty(t, records[1].Deductions)
	})

	t.Run("batches are isolated by identifier", func(t *testing.T) {
		repo := openTestRepo(t)
		first, second := uuid.New(), uuid.New()

		require.NoError(t, repo.SaveBatch(context.Background(), first, sampleBatch()))

		other := sampleBatch()
		other.Records = other.Records[:1]
		require.NoError(t, repo.SaveBatch(context.Background(), second, other))

		records, err := repo.ListRecords(context.Background(), second)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("unknown batch lists nothing", func(t *testing.T) {
		repo := openTestRepo(t)

		records, err := repo.ListRecords(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("duplicate batch identifier fails the save", func(t *testing.T) {
		repo := openTestRepo(t)
		batchID := uuid.New()

		require.NoError(t, repo.SaveBatch(context.Background(), batchID, sampleBatch()))
		assert.Error(t, repo.SaveBatch(context.Background(), batchID, sampleBatch()))
	})
}
