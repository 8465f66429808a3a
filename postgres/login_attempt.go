package postgres

import (
	"context"
	"database/sql"
	"errors"
	"movieapi/auth"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoginAttemptModel struct {
	Email       string       `gorm:"column:email;primaryKey"`
	FailedCount int          `gorm:"column:failed_count;not null"`
	JailedUntil sql.NullTime `gorm:"column:jailed_until"`
}

func (LoginAttemptModel) TableName() string {
	return "login_attempts"
}

// LoginAttemptRepository implements [auth.LoginAttemptRepository]. Emails are
// stored already normalized by the auth use case.
type LoginAttemptRepository struct {
	db *gorm.DB
}

func NewLoginAttemptRepository(db *gorm.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

// Get returns the zero attempt for emails that never failed a login.
func (r *LoginAttemptRepository) Get(ctx context.Context, email string) (auth.LoginAttempt, error) {
	var model LoginAttemptModel
	err := r.db.WithContext(ctx).Take(&model, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.LoginAttempt{}, nil
	}
	if err != nil {
		return auth.LoginAttempt{}, err
	}

	attempt := auth.LoginAttempt{FailedCount: model.FailedCount}
	if model.JailedUntil.Valid {
		attempt.JailedUntil = model.JailedUntil.Time.UTC()
	}
	return attempt, nil
}

// Save upserts the attempt so concurrent failures for a new email do not race
// on the primary key.
func (r *LoginAttemptRepository) Save(ctx context.Context, email string, attempt auth.LoginAttempt) error {
	model := LoginAttemptModel{
		Email:       email,
		FailedCount: attempt.FailedCount,
		JailedUntil: sql.NullTime{
			Time:  attempt.JailedUntil.UTC(),
			Valid: !attempt.JailedUntil.IsZero(),
		},
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"failed_count", "jailed_until"}),
		}).
		Create(&model).Error
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Delete(&LoginAttemptModel{}, "email = ?", email).Error
}
