package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fact-shorts-pipeline/config"
	"fact-shorts-pipeline/pipeline"
	"fact-shorts-pipeline/topics"
)

func main() {
	// Load .env (local dev only — deployments inject real env vars)
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	for _, dir := range []string{cfg.Paths.Videos, cfg.Paths.Clips, cfg.Paths.Runs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create dir %s: %v", dir, err)
		}
	}

	orch := pipeline.New(cfg)
	store := topics.NewStore(cfg.Paths.TopicsFile)

	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.html")

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"videos": listVideos(cfg.Paths.Videos),
			"topics": store.Load(),
		})
	})

	// One synchronous generation job per request. The pipeline reports
	// either the finished video or the single stage that failed.
	router.POST("/generate", func(c *gin.Context) {
		result, err := orch.Run(c.Request.Context())
		if err != nil {
			sf := pipeline.AsStageFailure(err)
			c.JSON(http.StatusOK, gin.H{
				"status":  "error",
				"stage":   sf.Stage,
				"message": sf.Message,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": fmt.Sprintf("Video created: %s with voice: %s", result.OutputFile, result.VoiceName),
			"topic":   result.Topic,
		})
	})

	router.GET("/videos/:filename", func(c *gin.Context) {
		name := filepath.Base(c.Param("filename"))
		c.File(filepath.Join(cfg.Paths.Videos, name))
	})

	log.Printf("🎬 fact-shorts server listening on %s", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func listVideos(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
