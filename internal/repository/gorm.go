package repository

import (
	"context"
	"errors"

	"propmatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfiles implements ProfileRepository on GORM (Postgres in production,
// sqlite in tests).
type GormProfiles struct {
	DB *gorm.DB
}

func (r *GormProfiles) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormProfiles) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.DB.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormProfiles) SaveUser(ctx context.Context, u *domain.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

func (r *GormProfiles) GetBuyerProfile(ctx context.Context, userID uuid.UUID) (*domain.BuyerProfile, error) {
	var p domain.BuyerProfile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormProfiles) ListBuyerProfiles(ctx context.Context) ([]domain.BuyerProfile, error) {
	var ps []domain.BuyerProfile
	if err := r.DB.WithContext(ctx).Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

// SaveBuyerProfile upserts keyed by user_id: a save replaces the whole
// profile, matching the onboarding lifecycle.
func (r *GormProfiles) SaveBuyerProfile(ctx context.Context, p *domain.BuyerProfile) error {
	var existing domain.BuyerProfile
	err := r.DB.WithContext(ctx).Where("user_id = ?", p.UserID).First(&existing).Error
	if err == nil {
		p.ProfileID = existing.ProfileID
		p.CreatedAt = existing.CreatedAt
		return r.DB.WithContext(ctx).Save(p).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormProfiles) GetSellerProfile(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error) {
	var p domain.SellerProfile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormProfiles) ListSellerProfiles(ctx context.Context) ([]domain.SellerProfile, error) {
	var ps []domain.SellerProfile
	if err := r.DB.WithContext(ctx).Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *GormProfiles) ListActiveSellerProfiles(ctx context.Context) ([]domain.SellerProfile, error) {
	var ps []domain.SellerProfile
	if err := r.DB.WithContext(ctx).Where("listing_status <> ?", domain.ListingSold).Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *GormProfiles) SaveSellerProfile(ctx context.Context, p *domain.SellerProfile) error {
	var existing domain.SellerProfile
	err := r.DB.WithContext(ctx).Where("user_id = ?", p.UserID).First(&existing).Error
	if err == nil {
		p.ProfileID = existing.ProfileID
		p.CreatedAt = existing.CreatedAt
		return r.DB.WithContext(ctx).Save(p).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormProfiles) GetOffPlatformSeller(ctx context.Context, sellerID uuid.UUID) (*domain.OffPlatformSeller, error) {
	var o domain.OffPlatformSeller
	if err := r.DB.WithContext(ctx).Where("seller_id = ?", sellerID).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormProfiles) ListOffPlatformByStates(ctx context.Context, states []string) ([]domain.OffPlatformSeller, error) {
	if len(states) == 0 {
		return nil, nil
	}
	var os []domain.OffPlatformSeller
	err := r.DB.WithContext(ctx).
		Where("LOWER(location_state) IN ? AND listing_status <> ?", states, domain.ListingSold).
		Find(&os).Error
	if err != nil {
		return nil, err
	}
	return os, nil
}

func (r *GormProfiles) SaveOffPlatformSeller(ctx context.Context, o *domain.OffPlatformSeller) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(o).Error
}

// GormMatches implements MatchRepository. Replace runs delete-then-insert in
// one transaction so readers never observe a half-written set.
type GormMatches struct {
	DB *gorm.DB
}

func (r *GormMatches) ReplaceForBuyer(ctx context.Context, buyerID uuid.UUID, matches []domain.MatchScore) error {
	valid := validMatches(matches)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("buyer_id = ?", buyerID).Delete(&domain.MatchScore{}).Error; err != nil {
			return err
		}
		if len(valid) == 0 {
			return nil
		}
		return tx.Create(&valid).Error
	})
}

// ReplaceForSeller rewrites one seller's rows across every buyer's set. The
// incoming positions were stamped against the seller's own ranking, so each
// touched buyer's rows are renumbered by the buyer-facing ordering before the
// transaction commits.
func (r *GormMatches) ReplaceForSeller(ctx context.Context, sellerID uuid.UUID, matches []domain.MatchScore) error {
	valid := validMatches(matches)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old []domain.MatchScore
		if err := tx.Select("buyer_id").Where("seller_id = ?", sellerID).Find(&old).Error; err != nil {
			return err
		}
		affected := make(map[uuid.UUID]struct{}, len(old)+len(valid))
		for i := range old {
			affected[old[i].BuyerID] = struct{}{}
		}
		for i := range valid {
			affected[valid[i].BuyerID] = struct{}{}
		}

		if err := tx.Where("seller_id = ?", sellerID).Delete(&domain.MatchScore{}).Error; err != nil {
			return err
		}
		if len(valid) > 0 {
			if err := tx.Create(&valid).Error; err != nil {
				return err
			}
		}
		for buyerID := range affected {
			if err := renumberBuyer(tx, buyerID); err != nil {
				return err
			}
		}
		return nil
	})
}

// renumberBuyer re-stamps positions by the presentation ordering (overall
// desc, closing desc, urgency desc; prior position breaks ties so existing
// order stays stable).
func renumberBuyer(tx *gorm.DB, buyerID uuid.UUID) error {
	var ms []domain.MatchScore
	err := tx.Where("buyer_id = ?", buyerID).
		Order("overall_score DESC, closing_probability_score DESC, urgency_score DESC, position ASC").
		Find(&ms).Error
	if err != nil {
		return err
	}
	for i := range ms {
		if ms[i].Position == i {
			continue
		}
		err := tx.Model(&domain.MatchScore{}).
			Where("match_id = ?", ms[i].MatchID).
			Update("position", i).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func validMatches(matches []domain.MatchScore) []domain.MatchScore {
	valid := make([]domain.MatchScore, 0, len(matches))
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			// Programming defect; reject the row rather than surface it.
			log.Error().Err(err).Str("buyer_id", matches[i].BuyerID.String()).Msg("Rejecting invalid match score")
			continue
		}
		valid = append(valid, matches[i])
	}
	return valid
}

func (r *GormMatches) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]domain.MatchScore, error) {
	var ms []domain.MatchScore
	if err := r.DB.WithContext(ctx).Where("buyer_id = ?", buyerID).Order("position ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

// ListForSeller ranks by the scores themselves: stored positions are
// buyer-facing, so they do not express the seller's presentation order.
func (r *GormMatches) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]domain.MatchScore, error) {
	var ms []domain.MatchScore
	err := r.DB.WithContext(ctx).Where("seller_id = ?", sellerID).
		Order("overall_score DESC, closing_probability_score DESC, urgency_score DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return ms, nil
}

func (r *GormMatches) ListAll(ctx context.Context) ([]domain.MatchScore, error) {
	var ms []domain.MatchScore
	if err := r.DB.WithContext(ctx).Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

// GormAlerts implements AlertRepository.
type GormAlerts struct {
	DB *gorm.DB
}

func (r *GormAlerts) Create(ctx context.Context, a *domain.MatchAlert) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormAlerts) ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.MatchAlert, error) {
	var as []domain.MatchAlert
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND read = ?", userID, false).
		Order("created_at DESC").
		Find(&as).Error
	if err != nil {
		return nil, err
	}
	return as, nil
}

// MarkRead only ever flips false -> true; re-marking is a no-op.
func (r *GormAlerts) MarkRead(ctx context.Context, alertID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&domain.MatchAlert{}).
		Where("alert_id = ?", alertID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
