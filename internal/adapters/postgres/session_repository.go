package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/Ghani-Agu/app-reviews/internal/domain"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func (r *sessionRepository) FindOfflineByShop(ctx context.Context, shop string) (domain.Session, error) {
	var rec sessionModel
	err := r.db.WithContext(ctx).
		Where("shop = ? AND is_online = FALSE", normalizeShop(shop)).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, err
	}
	return toDomainSession(rec), nil
}

func (r *sessionRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	res := r.db.WithContext(ctx).Where("shop = ?", normalizeShop(shop)).Delete(&sessionModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func toDomainSession(rec sessionModel) domain.Session {
	return domain.Session{
		ID:          rec.SessionID.String(),
		Shop:        rec.Shop,
		AccessToken: rec.AccessToken,
		Scope:       rec.Scope,
		IsOnline:    rec.IsOnline,
		ExpiresAt:   rec.ExpiresAt,
		CreatedAt:   rec.CreatedAt,
	}
}

func normalizeShop(shop string) string {
	return strings.ToLower(strings.TrimSpace(shop))
}
