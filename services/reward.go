package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"gorm.io/gorm"
)

const (
	dailyRewardDays  = 7
	dailyRewardXP    = 100
	dailyRewardCoins = 10
	xpPerLevel       = 1000
)

// ListDailyRewards returns the user's reward week ordered by day, seeding the
// seven days on first access.
func ListDailyRewards(userID uint) ([]models.DailyReward, error) {
	var rewards []models.DailyReward
	if err := config.DB.Where("user_id = ?", userID).Order("day ASC").Find(&rewards).Error; err != nil {
		return nil, err
	}
	if len(rewards) > 0 {
		return rewards, nil
	}

	seed := make([]models.DailyReward, 0, dailyRewardDays)
	for day := 1; day <= dailyRewardDays; day++ {
		seed = append(seed, models.DailyReward{
			UserID:     userID,
			Day:        day,
			XPReward:   dailyRewardXP,
			CoinReward: dailyRewardCoins,
		})
	}
	if err := config.DB.Create(&seed).Error; err != nil {
		// The unique (user_id, day) index rejects a concurrent seed; fall
		// through to the reload either way.
		var count int64
		config.DB.Model(&models.DailyReward{}).Where("user_id = ?", userID).Count(&count)
		if count == 0 {
			return nil, err
		}
	}
	if err := config.DB.Where("user_id = ?", userID).Order("day ASC").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

// ClaimDailyReward claims one day of the reward week. The unclaimed->claimed
// transition happens at most once: re-claiming returns the existing record
// unchanged and credits nothing. A successful claim credits the coin reward,
// adds the XP reward to the user's level progress, and records the streak as
// the all-time claim count, all in one transaction.
func ClaimDailyReward(userID uint, day int) (*models.DailyReward, error) {
	if day < 1 || day > dailyRewardDays {
		return nil, ErrInvalidDay
	}
	if _, err := ListDailyRewards(userID); err != nil {
		return nil, err
	}

	var claimed models.DailyReward
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var reward models.DailyReward
		if err := tx.Where("user_id = ? AND day = ?", userID, day).First(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}
		if reward.ClaimedAt != nil {
			claimed = reward
			return nil
		}

		var priorClaims int64
		if err := tx.Model(&models.DailyReward{}).
			Where("user_id = ? AND claimed_at IS NOT NULL", userID).
			Count(&priorClaims).Error; err != nil {
			return err
		}
		now := time.Now()
		streak := int(priorClaims) + 1

		// Guarded update: a racing claim makes this a no-op instead of a
		// double credit.
		res := tx.Model(&models.DailyReward{}).
			Where("id = ? AND claimed_at IS NULL", reward.ID).
			Updates(map[string]interface{}{"claimed_at": now, "streak": streak})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.First(&claimed, reward.ID).Error
		}

		wallet, err := getOrCreateWallet(tx, userID)
		if err != nil {
			return err
		}
		if reward.CoinReward > 0 {
			if _, err := applyDelta(tx, wallet.ID, reward.CoinReward, models.TransactionTypeCredit,
				models.CategoryEarned, fmt.Sprintf("Daily reward day %d", day)); err != nil {
				return err
			}
		}

		progress, err := getOrCreateLevelProgress(tx, userID)
		if err != nil {
			return err
		}
		progress.XP += reward.XPReward
		if level := progress.XP/xpPerLevel + 1; level > progress.Level {
			progress.Level = level
		}
		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		reward.ClaimedAt = &now
		reward.Streak = streak
		claimed = reward
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &claimed, nil
}

// GetLevelProgress returns the user's level record, creating it at level 1.
func GetLevelProgress(userID uint) (*models.LevelProgress, error) {
	return getOrCreateLevelProgress(config.DB, userID)
}

func getOrCreateLevelProgress(db *gorm.DB, userID uint) (*models.LevelProgress, error) {
	var progress models.LevelProgress
	err := db.Where("user_id = ?", userID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = models.LevelProgress{UserID: userID, Level: 1}
	if createErr := db.Create(&progress).Error; createErr != nil {
		if err := db.Where("user_id = ?", userID).First(&progress).Error; err == nil {
			return &progress, nil
		}
		return nil, createErr
	}
	return &progress, nil
}

// Leaderboard lists the top level records by XP.
func Leaderboard(limit int) ([]models.LevelProgress, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []models.LevelProgress
	if err := config.DB.Order("xp DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
