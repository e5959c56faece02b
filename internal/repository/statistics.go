package repository

import (
	"context"
	"time"

	"movie-app/internal/domain/billing"
	"movie-app/internal/domain/catalog"
	"movie-app/internal/domain/users"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Statistics struct {
	Users        int64           `json:"users"`
	PremiumUsers int64           `json:"premiumUsers"`
	Movies       int64           `json:"movies"`
	Reviews      int64           `json:"reviews"`
	Views        int64           `json:"views"`
	Revenue      decimal.Decimal `json:"revenue"`
	// RecentRevenue covers orders paid since the requested moment.
	RecentRevenue decimal.Decimal `json:"recentRevenue"`
}

type StatisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

func (r *StatisticsRepository) Main(ctx context.Context, since time.Time) (*Statistics, error) {
	db := r.db.WithContext(ctx)
	var s Statistics

	if err := db.Model(&users.User{}).Count(&s.Users).Error; err != nil {
		return nil, translate(err, "count users")
	}
	if err := db.Model(&users.User{}).Where("is_has_premium = ?", true).Count(&s.PremiumUsers).Error; err != nil {
		return nil, translate(err, "count premium users")
	}
	if err := db.Model(&catalog.Movie{}).Count(&s.Movies).Error; err != nil {
		return nil, translate(err, "count movies")
	}
	if err := db.Model(&catalog.Review{}).Count(&s.Reviews).Error; err != nil {
		return nil, translate(err, "count reviews")
	}
	if err := db.Model(&catalog.Movie{}).Select("COALESCE(SUM(views), 0)").Scan(&s.Views).Error; err != nil {
		return nil, translate(err, "sum views")
	}
	err := db.Model(&billing.Order{}).
		Where("status = ?", billing.StatusPayed).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&s.Revenue).Error
	if err != nil {
		return nil, translate(err, "sum revenue")
	}
	err = db.Model(&billing.Order{}).
		Where("status = ? AND paid_at >= ?", billing.StatusPayed, since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&s.RecentRevenue).Error
	if err != nil {
		return nil, translate(err, "sum recent revenue")
	}

	return &s, nil
}
