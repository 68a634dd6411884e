package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"saloonhub-backend/models"
)

// Constraint names as created by AutoMigrate (from the gorm uniqueIndex
// tags) and by the raw index statement in config.Migrate.
const (
	constraintExternalID = "uniq_accounts_external_id"
	constraintEmail      = "uniq_accounts_email"
	constraintAutoAdmin  = "uniq_accounts_auto_admin"
)

// IsUniqueViolation reports whether the error is a postgres unique
// violation, regardless of which constraint fired.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// classifyConflict maps a postgres unique violation to the sentinel for the
// specific constraint that fired. Any other error passes through unchanged.
func classifyConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case constraintExternalID:
		return fmt.Errorf("%w: %s", ErrDuplicateExternalID, pgErr.Detail)
	case constraintEmail:
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, pgErr.Detail)
	case constraintAutoAdmin:
		return fmt.Errorf("%w: %s", ErrDuplicateAdmin, pgErr.Detail)
	}
	return err
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account by external id: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) CountAutoAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("is_admin = ? AND is_service = ?", true, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return count, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return classifyConflict(err)
	}
	return nil
}

func (r *AccountRepository) LinkExternalID(ctx context.Context, accountID uuid.UUID, externalID string) error {
	res := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ? AND external_id IS NULL", accountID).
		Update("external_id", externalID)
	if res.Error != nil {
		return classifyConflict(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepository) GetSaloon(ctx context.Context, id uuid.UUID) (*models.Saloon, error) {
	var saloon models.Saloon
	err := r.db.WithContext(ctx).First(&saloon, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get saloon: %w", err)
	}
	return &saloon, nil
}

// UpdateStatus performs the read-modify-write as a single conditional
// update so two concurrent transitions cannot both succeed from the same
// stale status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus) (*models.Booking, error) {
	res := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return nil, fmt.Errorf("update booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a vanished booking from a lost race.
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrStaleStatus
	}
	return r.Get(ctx, id)
}

func (r *BookingRepository) ListPastDueConfirmed(ctx context.Context, before time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at < ?", models.BookingConfirmed, before).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list past-due bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
