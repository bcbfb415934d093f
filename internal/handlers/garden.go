package handlers

import (
	"net/http"
	"time"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

// Flower is one emotion's plant in the garden view. Growth is driven by
// how often the emotion has been logged.
type Flower struct {
	Emotion string `json:"emocion"`
	Count   int64  `json:"registros"`
	Level   int    `json:"nivel"` // 0..5
}

const gardenCacheTTL = 5 * time.Minute

func gardenCacheKey(userID string) string {
	return "garden:" + userID
}

// growthLevel maps a record count to a flower level. Three logs grow
// the flower one level, capped at 5.
func growthLevel(count int64) int {
	level := int(count / 3)
	if level > 5 {
		level = 5
	}
	return level
}

// GetGarden returns the patient's emotion garden: one flower per
// emotion kind, grown by logging frequency. Derived read over the
// emotion records, cached briefly since patients poll it on every home
// screen visit.
func GetGarden(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var flowers []Flower
	if err := database.CacheGet(gardenCacheKey(userId), &flowers); err == nil {
		c.JSON(http.StatusOK, gin.H{"garden": flowers})
		return
	}

	type row struct {
		Emotion string
		Count   int64
	}
	var rows []row
	err := database.DB.Model(&models.EmotionRecord{}).
		Select("emotion, COUNT(*) as count").
		Where("user_id = ?", userId).
		Group("emotion").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build garden"})
		return
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Emotion] = r.Count
	}

	flowers = make([]Flower, 0, len(models.EmotionKinds))
	for _, kind := range models.EmotionKinds {
		flowers = append(flowers, Flower{
			Emotion: kind,
			Count:   counts[kind],
			Level:   growthLevel(counts[kind]),
		})
	}

	database.CacheSet(gardenCacheKey(userId), flowers, gardenCacheTTL)
	c.JSON(http.StatusOK, gin.H{"garden": flowers})
}

// WeekStats is the per-week emotion aggregation for the psychologist's
// statistics view.
type WeekStats struct {
	WeekStart string           `json:"semana"`
	Counts    map[string]int64 `json:"conteos"`
}

// GetStatistics aggregates a linked patient's emotion records into
// weekly buckets for the last eight weeks. Grouping happens in Go to
// stay portable across postgres and the sqlite used in tests.
func GetStatistics(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	role := c.MustGet("role").(string)

	targetID := userId
	if patientId := c.Query("patientId"); patientId != "" {
		if role != string(models.RolePsychologist) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only psychologists can view other patients"})
			return
		}
		var patient models.User
		err := database.DB.First(&patient, "id = ? AND psychologist_id = ?", patientId, userId).Error
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Patient is not linked to you"})
			return
		}
		targetID = patientId
	}

	since := time.Now().AddDate(0, 0, -8*7)
	var records []models.EmotionRecord
	err := database.DB.
		Where("user_id = ? AND created_at >= ?", targetID, since).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	buckets := make(map[string]*WeekStats)
	order := make([]string, 0)
	for _, r := range records {
		// Bucket by the Monday of the record's week.
		monday := r.CreatedAt.AddDate(0, 0, -(int(r.CreatedAt.Weekday())+6)%7)
		key := monday.Format("2006-01-02")

		bucket, ok := buckets[key]
		if !ok {
			bucket = &WeekStats{WeekStart: key, Counts: make(map[string]int64)}
			buckets[key] = bucket
			order = append(order, key)
		}
		bucket.Counts[r.Emotion]++
	}

	stats := make([]WeekStats, 0, len(order))
	for _, key := range order {
		stats = append(stats, *buckets[key])
	}

	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}
