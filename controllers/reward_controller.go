package controllers

import (
	"strconv"

	"github.com/vibely-app/vibely-backend/services"
	"github.com/vibely-app/vibely-backend/utils"
	"github.com/gin-gonic/gin"
)

// ListDailyRewards returns the user's reward week
func ListDailyRewards(c *gin.Context) {
	utils.LogInfo("ListDailyRewards called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rewards, err := services.ListDailyRewards(user.ID)
	if err != nil {
		utils.LogError("Failed to list daily rewards for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Daily rewards retrieved successfully", gin.H{"rewards": rewards})
}

// ClaimDailyReward claims one day of the reward week. Claiming an already
// claimed day returns the existing record without crediting again.
func ClaimDailyReward(c *gin.Context) {
	utils.LogInfo("ClaimDailyReward called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		utils.LogError("Invalid day parameter for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid day", nil)
		return
	}

	reward, err := services.ClaimDailyReward(user.ID, day)
	if err != nil {
		utils.LogError("Daily reward claim failed for user ID: %d, day %d: %v", user.ID, day, err)
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("User %d claimed daily reward day %d", user.ID, day)

	utils.Success(c, "Daily reward claimed", gin.H{
		"day":         reward.Day,
		"coin_reward": reward.CoinReward,
		"xp_reward":   reward.XPReward,
		"streak":      reward.Streak,
		"claimed_at":  reward.ClaimedAt,
	})
}

// GetLevelProgress returns the user's XP and level
func GetLevelProgress(c *gin.Context) {
	utils.LogInfo("GetLevelProgress called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	progress, err := services.GetLevelProgress(user.ID)
	if err != nil {
		utils.LogError("Failed to get level progress for user ID: %d: %v", user.ID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Level progress retrieved successfully", gin.H{
		"level": progress.Level,
		"xp":    progress.XP,
	})
}

// Leaderboard lists the top users by XP
func Leaderboard(c *gin.Context) {
	utils.LogInfo("Leaderboard called")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := services.Leaderboard(limit)
	if err != nil {
		utils.LogError("Failed to load leaderboard: %v", err)
		utils.InternalServerError(c, "Failed to load leaderboard", err.Error())
		return
	}

	utils.Success(c, "Leaderboard retrieved successfully", gin.H{"leaderboard": entries})
}
