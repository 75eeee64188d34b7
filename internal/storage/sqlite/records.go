package sqlite

import (
	"time"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

type userRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"not null"`
	Login        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	AvatarURL    string `gorm:"not null"`
	Balance      int64  `gorm:"not null;index:idx_users_balance"`
	Role         string `gorm:"not null;index"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (r userRecord) toModel() model.User {
	return model.User{
		ID:           r.ID,
		Name:         r.Name,
		Login:        r.Login,
		PasswordHash: r.PasswordHash,
		AvatarURL:    r.AvatarURL,
		Balance:      r.Balance,
		Role:         model.Role(r.Role),
		CreatedAt:    r.CreatedAt,
	}
}

type pointRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	UserID     string    `gorm:"not null;size:36;index:idx_points_user,priority:1"`
	Amount     int64     `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_points_user,priority:2"`
}

func (pointRecord) TableName() string { return "points" }

func (r pointRecord) toModel() model.PointEvent {
	return model.PointEvent{ID: r.ID, UserID: r.UserID, Amount: r.Amount, RecordedAt: r.RecordedAt}
}

type campaignRecord struct {
	ID        int64    `gorm:"primaryKey;autoIncrement"`
	Type      string   `gorm:"not null"`
	Title     string   `gorm:"not null"`
	Questions []string `gorm:"serializer:json;not null"`
	CreatedAt time.Time
}

func (campaignRecord) TableName() string { return "campaigns" }

func (r campaignRecord) toModel() model.Campaign {
	return model.Campaign{ID: r.ID, Type: r.Type, Title: r.Title, Questions: r.Questions, CreatedAt: r.CreatedAt}
}

type rewardRecord struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"not null"`
	Quantity int    `gorm:"not null"`
}

func (rewardRecord) TableName() string { return "rewards" }

func (r rewardRecord) toModel() model.Reward {
	return model.Reward{ID: r.ID, Name: r.Name, Quantity: r.Quantity}
}
