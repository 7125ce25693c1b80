package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"asset-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoanRepository persists loan requests with the same JSONB item layout
// and version compare-and-swap as the request repository
type LoanRepository struct {
	DB *pgxpool.Pool
}

func NewLoanRepository(db *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{DB: db}
}

func (r *LoanRepository) Create(ctx context.Context, loan *models.LoanRequest) error {
	items, err := json.Marshal(loan.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal loan items: %w", err)
	}

	query := `
		INSERT INTO loans (
			id, doc_number, borrower, division, purpose, status, items,
			loan_date, due_date, return_date,
			approved_by, approval_date, rejection_reason, rejected_by,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1, $15, $16)
	`
	_, err = r.DB.Exec(ctx, query,
		loan.ID, loan.DocNumber, loan.Borrower, loan.Division, loan.Purpose, loan.Status, items,
		loan.LoanDate, loan.DueDate, loan.ReturnDate,
		loan.ApprovedBy, loan.ApprovalDate, loan.RejectionReason, loan.RejectedBy,
		loan.CreatedAt, loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	loan.Version = 1
	return nil
}

func (r *LoanRepository) Update(ctx context.Context, loan *models.LoanRequest) error {
	items, err := json.Marshal(loan.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal loan items: %w", err)
	}

	query := `
		UPDATE loans SET
			status = $3, items = $4, due_date = $5, return_date = $6,
			approved_by = $7, approval_date = $8, rejection_reason = $9, rejected_by = $10,
			version = version + 1, updated_at = $11
		WHERE id = $1 AND version = $2
	`
	tag, err := r.DB.Exec(ctx, query,
		loan.ID, loan.Version,
		loan.Status, items, loan.DueDate, loan.ReturnDate,
		loan.ApprovedBy, loan.ApprovalDate, loan.RejectionReason, loan.RejectedBy,
		loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrVersionConflict
	}
	loan.Version++
	return nil
}

func (r *LoanRepository) Get(ctx context.Context, id string) (*models.LoanRequest, error) {
	query := selectLoanColumns + ` WHERE id = $1`

	row := r.DB.QueryRow(ctx, query, id)
	loan, err := scanLoan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Resource: "loan", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

func (r *LoanRepository) List(ctx context.Context) ([]models.LoanRequest, error) {
	query := selectLoanColumns + ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []models.LoanRequest
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, *loan)
	}
	return loans, rows.Err()
}

func (r *LoanRepository) ListIDs(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT id FROM loans`)
}

func (r *LoanRepository) ListDocNumbers(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT doc_number FROM loans`)
}

func (r *LoanRepository) listStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

const selectLoanColumns = `
	SELECT id, doc_number, borrower, division, purpose, status, items,
	       loan_date, due_date, return_date,
	       approved_by, approval_date, rejection_reason, rejected_by,
	       version, created_at, updated_at
	FROM loans`

func scanLoan(row pgx.Row) (*models.LoanRequest, error) {
	loan := &models.LoanRequest{}
	var items []byte

	err := row.Scan(
		&loan.ID, &loan.DocNumber, &loan.Borrower, &loan.Division, &loan.Purpose, &loan.Status, &items,
		&loan.LoanDate, &loan.DueDate, &loan.ReturnDate,
		&loan.ApprovedBy, &loan.ApprovalDate, &loan.RejectionReason, &loan.RejectedBy,
		&loan.Version, &loan.CreatedAt, &loan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &loan.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal loan items: %w", err)
	}
	return loan, nil
}
