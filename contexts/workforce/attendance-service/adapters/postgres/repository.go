package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"timeclock/contexts/workforce/attendance-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/attendance-service/domain/errors"
	"timeclock/contexts/workforce/attendance-service/ports"
)

// Repository implements the attendance ports against postgres. The event
// table is insert-only: nothing in this adapter updates or deletes rows.
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

type attendanceEventModel struct {
	RowID       int64     `gorm:"column:row_id;primaryKey;autoIncrement"`
	EventID     string    `gorm:"column:event_id;size:36;index"`
	UserID      string    `gorm:"column:user_id;size:255;index"`
	Name        string    `gorm:"column:name;size:255"`
	Role        string    `gorm:"column:role;size:32"`
	EventType   string    `gorm:"column:event_type;size:32"`
	RecordedAt  time.Time `gorm:"column:recorded_at;index"`
	Latitude    *float64  `gorm:"column:latitude"`
	Longitude   *float64  `gorm:"column:longitude"`
	EvidenceRef string    `gorm:"column:evidence_ref;size:2048"`
	Note        string    `gorm:"column:note;size:2048"`
}

func (attendanceEventModel) TableName() string {
	return "attendance_events"
}

type relayCursorModel struct {
	RelayName string    `gorm:"column:relay_name;size:64;primaryKey"`
	Position  int64     `gorm:"column:position"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (relayCursorModel) TableName() string {
	return "sheet_relay_cursors"
}

type profileRow struct {
	UserID string `gorm:"column:user_id"`
	Name   string `gorm:"column:name"`
	Role   string `gorm:"column:role"`
	Active bool   `gorm:"column:active"`
}

func (r *Repository) Append(ctx context.Context, event entities.AttendanceEvent) error {
	row := eventModelFromEntity(event)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListAll(ctx context.Context) ([]entities.AttendanceEvent, error) {
	var rows []attendanceEventModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.AttendanceEvent, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListEventsAfter(ctx context.Context, position int64, limit int) ([]ports.NumberedEvent, error) {
	var rows []attendanceEventModel
	err := r.db.WithContext(ctx).
		Where("row_id > ?", position).
		Order("row_id ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.NumberedEvent, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.NumberedEvent{
			Position: row.RowID,
			Event:    row.toEntity(),
		})
	}
	return items, nil
}

func (r *Repository) FindEmployee(ctx context.Context, userID string) (ports.EmployeeProfile, error) {
	var row profileRow
	err := r.db.WithContext(ctx).
		Table("employee_profiles").
		Where("user_id = ?", entities.NormalizeUserID(userID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EmployeeProfile{}, domainerrors.ErrUserNotFound
		}
		return ports.EmployeeProfile{}, err
	}
	return ports.EmployeeProfile{
		UserID: row.UserID,
		Name:   row.Name,
		Role:   row.Role,
		Active: row.Active,
	}, nil
}

func (r *Repository) GetCursor(ctx context.Context, relayName string) (int64, error) {
	var row relayCursorModel
	err := r.db.WithContext(ctx).
		Where("relay_name = ?", relayName).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Position, nil
}

func (r *Repository) SetCursor(ctx context.Context, relayName string, position int64) error {
	row := relayCursorModel{
		RelayName: relayName,
		Position:  position,
		UpdatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "relay_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "updated_at"}),
		}).
		Create(&row).
		Error
}

func eventModelFromEntity(event entities.AttendanceEvent) attendanceEventModel {
	return attendanceEventModel{
		EventID:     event.EventID,
		UserID:      event.UserID,
		Name:        event.Name,
		Role:        event.Role,
		EventType:   string(event.Type),
		RecordedAt:  event.RecordedAt.UTC(),
		Latitude:    event.Latitude,
		Longitude:   event.Longitude,
		EvidenceRef: event.EvidenceRef,
		Note:        event.Note,
	}
}

func (m attendanceEventModel) toEntity() entities.AttendanceEvent {
	return entities.AttendanceEvent{
		EventID:     m.EventID,
		UserID:      m.UserID,
		Name:        m.Name,
		Role:        m.Role,
		Type:        entities.EventType(m.EventType),
		RecordedAt:  m.RecordedAt.UTC(),
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		EvidenceRef: m.EvidenceRef,
		Note:        m.Note,
	}
}

// Migrate creates the attendance tables. Profile tables belong to the
// directory adapter.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&attendanceEventModel{}, &relayCursorModel{})
}
