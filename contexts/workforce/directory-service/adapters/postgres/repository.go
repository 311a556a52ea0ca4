package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"timeclock/contexts/workforce/directory-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/directory-service/domain/errors"
)

const uniqueViolationCode = "23505"

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

type profileModel struct {
	UserID    string    `gorm:"column:user_id;size:255;primaryKey"`
	Name      string    `gorm:"column:name;size:255"`
	Phone     string    `gorm:"column:phone;size:32"`
	Role      string    `gorm:"column:role;size:32"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string {
	return "employee_profiles"
}

func (r *Repository) CreateProfile(ctx context.Context, profile entities.Profile) error {
	row := profileModelFromEntity(profile)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateProfile(ctx context.Context, currentUserID string, profile entities.Profile) error {
	row := profileModelFromEntity(profile)
	result := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("user_id = ?", entities.NormalizeEmail(currentUserID)).
		Updates(map[string]any{
			"user_id":    row.UserID,
			"name":       row.Name,
			"phone":      row.Phone,
			"role":       row.Role,
			"active":     row.Active,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrEmailTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProfileNotFound
	}
	return nil
}

func (r *Repository) GetProfile(ctx context.Context, userID string) (entities.Profile, error) {
	var row profileModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", entities.NormalizeEmail(userID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Profile{}, domainerrors.ErrProfileNotFound
		}
		return entities.Profile{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListProfiles(ctx context.Context) ([]entities.Profile, error) {
	var rows []profileModel
	if err := r.db.WithContext(ctx).Order("user_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Profile, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// Migrate creates the profile table owned by this context.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&profileModel{})
}

func profileModelFromEntity(profile entities.Profile) profileModel {
	return profileModel{
		UserID:    profile.UserID,
		Name:      profile.Name,
		Phone:     profile.Phone,
		Role:      string(profile.Role),
		Active:    profile.Active,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func (m profileModel) toEntity() entities.Profile {
	return entities.Profile{
		UserID:    m.UserID,
		Name:      m.Name,
		Phone:     m.Phone,
		Role:      entities.Role(m.Role),
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}
