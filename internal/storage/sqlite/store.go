// Package sqlite provides a SQLite-backed user record store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/internal/storage/sqlite/migrations"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Store persists user records in SQLite. Each table holds at most one row per user.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LookupUser returns whatever records exist for the user. Missing rows are nil.
func (s *Store) LookupUser(ctx context.Context, userID string) (domain.UserRecords, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserRecords{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.UserRecords{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.UserRecords{}, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	var (
		records domain.UserRecords
		err     error
	)
	if records.Profile, err = s.loadProfile(ctx, userID); err != nil {
		return domain.UserRecords{}, fmt.Errorf("load profile: %w", err)
	}
	if records.PensionPot, err = s.loadPensionPot(ctx, userID); err != nil {
		return domain.UserRecords{}, fmt.Errorf("load pension pot: %w", err)
	}
	if records.StatePension, err = s.loadStatePension(ctx, userID); err != nil {
		return domain.UserRecords{}, fmt.Errorf("load state pension: %w", err)
	}
	if records.Property, err = s.loadProperty(ctx, userID); err != nil {
		return domain.UserRecords{}, fmt.Errorf("load property: %w", err)
	}
	if records.Liability, err = s.loadLiability(ctx, userID); err != nil {
		return domain.UserRecords{}, fmt.Errorf("load liabilities: %w", err)
	}
	return records, nil
}

func (s *Store) loadProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var (
		p                                    domain.UserProfile
		dob, income, inflation, investReturn sql.NullString
		retirementAge                        sql.NullInt64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT user_id, email, date_of_birth, retirement_age, desired_income,
		        inflation_assumption, investment_return_assumption
		   FROM users WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &p.Email, &dob, &retirementAge, &income, &inflation, &investReturn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if dob.Valid && dob.String != "" {
		d, err := domain.ParseDate(dob.String)
		if err != nil {
			return nil, fmt.Errorf("date_of_birth: %w", err)
		}
		p.DateOfBirth = &d
	}
	p.RetirementAge = nullInt(retirementAge)
	if p.DesiredIncome, err = nullDecimal(income); err != nil {
		return nil, fmt.Errorf("desired_income: %w", err)
	}
	if p.InflationAssumption, err = nullDecimal(inflation); err != nil {
		return nil, fmt.Errorf("inflation_assumption: %w", err)
	}
	if p.InvestmentReturnAssumption, err = nullDecimal(investReturn); err != nil {
		return nil, fmt.Errorf("investment_return_assumption: %w", err)
	}
	return &p, nil
}

func (s *Store) loadPensionPot(ctx context.Context, userID string) (*domain.PensionPot, error) {
	var (
		pot                    domain.PensionPot
		value                  string
		contribution           sql.NullString
		isActive, lumpSumTaken bool
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT pot_id, provider_name, pot_type, current_value, monthly_contribution,
		        is_active, lump_sum_taken
		   FROM pension_pots WHERE user_id = ?`, userID,
	).Scan(&pot.PotID, &pot.ProviderName, &pot.PotType, &value, &contribution, &isActive, &lumpSumTaken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if pot.CurrentValue, err = decimal.NewFromString(value); err != nil {
		return nil, fmt.Errorf("current_value: %w", err)
	}
	if pot.MonthlyContribution, err = nullDecimal(contribution); err != nil {
		return nil, fmt.Errorf("monthly_contribution: %w", err)
	}
	pot.IsActive = isActive
	pot.LumpSumTaken = lumpSumTaken
	return &pot, nil
}

func (s *Store) loadStatePension(ctx context.Context, userID string) (*domain.StatePensionRecord, error) {
	var (
		amount sql.NullString
		age    sql.NullInt64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT estimated_annual_amount, state_pension_age FROM state_pension WHERE user_id = ?`, userID,
	).Scan(&amount, &age)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	record := domain.StatePensionRecord{StatePensionAge: nullInt(age)}
	if record.EstimatedAnnualAmount, err = nullDecimal(amount); err != nil {
		return nil, fmt.Errorf("estimated_annual_amount: %w", err)
	}
	return &record, nil
}

func (s *Store) loadProperty(ctx context.Context, userID string) (*domain.Property, error) {
	var (
		prop    domain.Property
		value   string
		balance sql.NullString
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT current_value, has_mortgage, mortgage_balance FROM property WHERE user_id = ?`, userID,
	).Scan(&value, &prop.HasMortgage, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if prop.CurrentValue, err = decimal.NewFromString(value); err != nil {
		return nil, fmt.Errorf("current_value: %w", err)
	}
	if prop.MortgageBalance, err = nullDecimal(balance); err != nil {
		return nil, fmt.Errorf("mortgage_balance: %w", err)
	}
	return &prop, nil
}

func (s *Store) loadLiability(ctx context.Context, userID string) (*domain.Liability, error) {
	var (
		l       domain.Liability
		balance string
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT liability_type, current_balance FROM liabilities WHERE user_id = ?`, userID,
	).Scan(&l.LiabilityType, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if l.CurrentBalance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("current_balance: %w", err)
	}
	return &l, nil
}

// SaveUser replaces every stored record for the profile's user in one transaction.
// Records left nil are removed.
func (s *Store) SaveUser(ctx context.Context, r domain.UserRecords) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if r.Profile == nil || strings.TrimSpace(r.Profile.UserID) == "" {
		return fmt.Errorf("%w: profile.user_id is required", domain.ErrInvalidInput)
	}
	userID := strings.TrimSpace(r.Profile.UserID)

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"users", "pension_pots", "state_pension", "property", "liabilities"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", userID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	p := r.Profile
	var dob any
	if p.DateOfBirth != nil {
		dob = p.DateOfBirth.String()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (user_id, email, date_of_birth, retirement_age, desired_income,
		                    inflation_assumption, investment_return_assumption)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, p.Email, dob, intArg(p.RetirementAge), decimalArg(p.DesiredIncome),
		decimalArg(p.InflationAssumption), decimalArg(p.InvestmentReturnAssumption),
	); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	if pot := r.PensionPot; pot != nil {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pension_pots (user_id, pot_id, provider_name, pot_type, current_value,
			                           monthly_contribution, is_active, lump_sum_taken)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, pot.PotID, pot.ProviderName, pot.PotType, pot.CurrentValue.String(),
			decimalArg(pot.MonthlyContribution), pot.IsActive, pot.LumpSumTaken,
		); err != nil {
			return fmt.Errorf("insert pension pot: %w", err)
		}
	}

	if sp := r.StatePension; sp != nil {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state_pension (user_id, estimated_annual_amount, state_pension_age) VALUES (?, ?, ?)`,
			userID, decimalArg(sp.EstimatedAnnualAmount), intArg(sp.StatePensionAge),
		); err != nil {
			return fmt.Errorf("insert state pension: %w", err)
		}
	}

	if prop := r.Property; prop != nil {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO property (user_id, current_value, has_mortgage, mortgage_balance) VALUES (?, ?, ?, ?)`,
			userID, prop.CurrentValue.String(), prop.HasMortgage, decimalArg(prop.MortgageBalance),
		); err != nil {
			return fmt.Errorf("insert property: %w", err)
		}
	}

	if l := r.Liability; l != nil {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO liabilities (user_id, liability_type, current_balance) VALUES (?, ?, ?)`,
			userID, l.LiabilityType, l.CurrentBalance.String(),
		); err != nil {
			return fmt.Errorf("insert liabilities: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func nullDecimal(v sql.NullString) (*decimal.Decimal, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func intArg(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
