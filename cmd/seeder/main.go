package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dotapulse/imp-api/internal/models"
)

// Config
const API_URL = "http://localhost:8080/api/v1/score"

func main() {
	// A plausible mid-lane winning game.
	req := models.ScoreRequest{
		MatchID:         7891234567,
		PlayerSlot:      2,
		HeroID:          74, // Invoker
		Role:            "mid",
		DurationSeconds: 2412,
		Stats: models.MatchStats{
			Kills:       12,
			Deaths:      3,
			Assists:     18,
			LastHits:    284,
			Denies:      16,
			GPM:         622,
			XPM:         689,
			HeroDamage:  32480,
			TowerDamage: 4188,
			HeroHealing: 0,
			NetWorth:    24810,
			Level:       25,
		},
		Context: models.MatchContext{
			TeamResult: "win",
			GameMode:   "ranked",
			AvgRank:    62,
			IsRadiant:  true,
		},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		log.Fatalf("Failed to marshal JSON: %v", err)
	}

	httpReq, err := http.NewRequest("POST", API_URL, bytes.NewBuffer(payload))
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		log.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Response: %s\n", string(body))

	if resp.StatusCode == http.StatusOK {
		fmt.Println("✅ Score computed!")
	} else {
		fmt.Println("❌ Scoring failed!")
	}
}
