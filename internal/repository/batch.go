package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

type BatchRepository interface {
	SaveBatch(ctx context.Context, batchID uuid.UUID, res entity.BatchResult) error
	ListRecords(ctx context.Context, batchID uuid.UUID) ([]entity.PayrollRecord, error)
}

type batchRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewBatchRepository(db *sql.DB, logger *slog.Logger) BatchRepository {
	return &batchRepository{db: db, logger: logger}
}

// SaveBatch persists a batch result atomically: header row, one row per
// merged record, per-field amounts and validation diagnostics.
func (r *batchRepository) SaveBatch(ctx context.Context, batchID uuid.UUID, res entity.BatchResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	valid := 0
	if res.Validation.Valid {
		valid = 1
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO batches (id, month_label, bill_number, office_name, record_count, valid,
			total_gross, total_deductions, total_net_pay, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		batchID.String(), res.MonthLabel, res.BillNumber, res.OfficeName,
		len(res.Records), valid,
		res.Validation.TotalGross, res.Validation.TotalDed, res.Validation.TotalNetPay,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("failed to insert batch", "batch_id", batchID, "error", err)
		return err
	}

	for _, rec := range res.Records {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO payroll_records (batch_id, employee_id, name, designation, gross, total_deductions, net_pay)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			batchID.String(), rec.ID, rec.Name, rec.Designation, rec.Gross, rec.TotalDed, rec.NetPay,
		); err != nil {
			r.logger.Error("failed to insert record", "employee_id", rec.ID, "error", err)
			return err
		}
		if err = r.insertFields(ctx, tx, batchID, rec.ID, constants.CategoryEarning, rec.Earnings); err != nil {
			return err
		}
		if err = r.insertFields(ctx, tx, batchID, rec.ID, constants.CategoryDeduction, rec.Deductions); err != nil {
			return err
		}
	}

	for _, msg := range res.Validation.Errors {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO diagnostics (batch_id, severity, message) VALUES ($1, $2, $3)`,
			batchID.String(), "error", msg,
		); err != nil {
			return err
		}
	}
	for _, msg := range res.Validation.Warnings {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO diagnostics (batch_id, severity, message) VALUES ($1, $2, $3)`,
			batchID.String(), "warning", msg,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *batchRepository) insertFields(ctx context.Context, tx *sql.Tx, batchID uuid.UUID, employeeID string, cat constants.FieldCategory, fields map[string]float64) error {
	for key, amount := range fields {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO record_fields (batch_id, employee_id, category, field_key, amount)
			 VALUES ($1, $2, $3, $4, $5)`,
			batchID.String(), employeeID, string(cat), key, amount,
		); err != nil {
			r.logger.Error("failed to insert field", "employee_id", employeeID, "field", key, "error", err)
			return err
		}
	}
	return nil
}

// ListRecords loads the merged records of a batch, fields included, ordered
// by employee identifier.
func (r *batchRepository) ListRecords(ctx context.Context, batchID uuid.UUID) ([]entity.PayrollRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT employee_id, name, designation, gross, total_deductions, net_pay
		 FROM payroll_records WHERE batch_id = $1 ORDER BY employee_id`,
		batchID.String(),
	)
	if err != nil {
		r.logger.Error("failed to list records", "batch_id", batchID, "error", err)
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []entity.PayrollRecord
	index := make(map[string]int)
	for rows.Next() {
		var rec entity.PayrollRecord
		var designation sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Name, &designation, &rec.Gross, &rec.TotalDed, &rec.NetPay); err != nil {
			return nil, err
		}
		rec.Designation = designation.String
		rec.Earnings = make(map[string]float64)
		rec.Deductions = make(map[string]float64)
		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	frows, err := r.db.QueryContext(ctx,
		`SELECT employee_id, category, field_key, amount FROM record_fields WHERE batch_id = $1`,
		batchID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = frows.Close() }()

	for frows.Next() {
		var employeeID, category, key string
		var amount float64
		if err := frows.Scan(&employeeID, &category, &key, &amount); err != nil {
			return nil, err
		}
		i, ok := index[employeeID]
		if !ok {
			continue
		}
		if constants.FieldCategory(category) == constants.CategoryDeduction {
			records[i].Deductions[key] = amount
		} else {
			records[i].Earnings[key] = amount
		}
	}
	return records, frows.Err()
}
