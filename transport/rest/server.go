package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ninedttt/gamemaker-bot/internal/stats"
)

// NewRouter builds the health surface routes.
func NewRouter(botStats *stats.Stats) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", homeHandler(botStats))
	router.GET("/health", healthHandler(botStats))
	router.GET("/ping", pingHandler)
	router.GET("/stats", statsHandler(botStats))

	return router
}

// Start serves the health surface. It only reads process-wide counters;
// no game state crosses this boundary.
func Start(port string, botStats *stats.Stats) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(botStats),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func homeHandler(botStats *stats.Stats) gin.HandlerFunc {
	return func(c *gin.Context) {
		uptime := botStats.Uptime()
		c.JSON(http.StatusOK, gin.H{
			"status":         "alive",
			"service":        "9D Tic Tac Toe Bot",
			"message":        "Play 9D Tic Tac Toe on Twitter! 🎮",
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   fmt.Sprintf("%dh %dm", int(uptime.Hours()), int(uptime.Minutes())%60),
			"stats":          statsPayload(botStats),
		})
	}
}

func healthHandler(botStats *stats.Stats) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            botStats.Status(),
			"timestamp":         time.Now().Format(time.RFC3339),
			"active_game_count": botStats.ActiveGames(),
			"store_connected":   botStats.StoreConnected(),
		})
	}
}

func pingHandler(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func statsHandler(botStats *stats.Stats) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, statsPayload(botStats))
	}
}

func statsPayload(botStats *stats.Stats) gin.H {
	payload := gin.H{
		"started_at":               botStats.StartedAt().Format(time.RFC3339),
		"status":                   botStats.Status(),
		"total_mentions_processed": botStats.MentionsProcessed(),
		"active_games":             botStats.ActiveGames(),
		"store_backend":            botStats.StoreBackend(),
		"store_connected":          botStats.StoreConnected(),
	}

	if lastCheck, ok := botStats.LastCheck(); ok {
		payload["last_check"] = lastCheck.Format(time.RFC3339)
	}
	if detail := botStats.StatusError(); detail != "" {
		payload["error"] = detail
	}

	return payload
}
