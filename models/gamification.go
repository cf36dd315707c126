package models

import (
	"time"
)

// DailyReward is one claimable day (1..7) of a user's reward week. ClaimedAt
// is nil until the day is claimed; the transition is one-way.
type DailyReward struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `json:"user_id" gorm:"index:idx_daily_rewards_user_day,unique"`
	Day        int        `json:"day" gorm:"index:idx_daily_rewards_user_day,unique"`
	XPReward   int        `json:"xp_reward" gorm:"default:0"`
	CoinReward int        `json:"coin_reward" gorm:"default:0"`
	ClaimedAt  *time.Time `json:"claimed_at"`
	Streak     int        `json:"streak" gorm:"default:0"`
}

// LevelProgress tracks a user's XP and derived level. Level never decreases.
type LevelProgress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex"`
	Level     int       `json:"level" gorm:"default:1"`
	XP        int       `json:"xp" gorm:"default:0"`
	UpdatedAt time.Time `json:"last_updated"`
}
