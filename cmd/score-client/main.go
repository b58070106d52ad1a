// Command score-client generates plausible interview sessions and submits
// them to a running decision service, reporting latency and score spread.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Default configuration constants.
const (
	defaultSessions = 100
	defaultTimeout  = 30 * time.Second
	defaultRunFor   = 10 * time.Minute
)

type scoreResponse struct {
	SessionID string `json:"session_id"`
	Overall   int    `json:"overall"`
	Degraded  bool   `json:"degraded"`
}

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8000", "Base URL of the service")
		sessions  = flag.Int("sessions", defaultSessions, "Number of sessions to generate and submit")
		workers   = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		videoProb = flag.Float64("video", 0.5, "Probability a session carries video metrics")
		seed      = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunFor)
	defer cancel()

	client := &http.Client{Timeout: *timeout}
	rng := rand.New(rand.NewSource(*seed))

	payloads := make([][]byte, *sessions)
	for i := range payloads {
		body, err := json.Marshal(generateSession(rng, *videoProb))
		if err != nil {
			os.Stderr.WriteString("failed to encode session: " + err.Error() + "\n")
			return
		}
		payloads[i] = body
	}

	var (
		submitted atomic.Int64
		failed    atomic.Int64
		degraded  atomic.Int64
		totalMs   atomic.Int64
	)

	start := time.Now()
	jobs := make(chan []byte)
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for body := range jobs {
				reqStart := time.Now()
				resp, err := postScore(ctx, client, *baseURL+"/score", body)
				totalMs.Add(time.Since(reqStart).Milliseconds())
				if err != nil {
					failed.Add(1)
					continue
				}
				submitted.Add(1)
				if resp.Degraded {
					degraded.Add(1)
				}
			}
		}()
	}

	for _, body := range payloads {
		select {
		case <-ctx.Done():
		case jobs <- body:
		}
	}
	close(jobs)
	wg.Wait()

	elapsed := time.Since(start)
	total := submitted.Load() + failed.Load()
	fmt.Printf("submitted %d sessions in %s (%d failed, %d degraded)\n",
		total, elapsed.Round(time.Millisecond), failed.Load(), degraded.Load())
	if total > 0 {
		fmt.Printf("mean request latency: %dms\n", totalMs.Load()/total)
	}
}

func postScore(ctx context.Context, client *http.Client, url string, body []byte) (*scoreResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// generateSession builds a request with metric values drawn from plausible
// ranges. Some keys are dropped at random to exercise imputation.
func generateSession(rng *rand.Rand, videoProb float64) map[string]any {
	text := map[string]any{
		"semantic_relevance_mean": rng.Float64(),
		"assertive_phrase_ratio":  rng.Float64() * 0.4,
		"hedge_ratio":             rng.Float64() * 0.5,
		"filler_word_ratio":       rng.Float64() * 0.6,
		"empathy_phrase_ratio":    rng.Float64() * 0.2,
		"topic_drift_ratio":       rng.Float64() * 0.5,
		"avg_sentiment":           rng.Float64()*2 - 1,
	}
	audio := map[string]any{
		"speech_rate_wpm":       80 + rng.Float64()*120,
		"silence_ratio":         rng.Float64() * 0.6,
		"pitch_variance":        rng.Float64() * 50,
		"monotony_score":        rng.Float64(),
		"audio_confidence_prob": rng.Float64(),
		"audio_nervous_prob":    rng.Float64(),
		"emotion_consistency":   rng.Float64(),
	}
	if rng.Float64() < 0.2 {
		delete(audio, "pitch_variance")
	}

	session := map[string]any{
		"session_id":    uuid.NewString(),
		"text_metrics":  text,
		"audio_metrics": audio,
	}
	if rng.Float64() < videoProb {
		session["video_metrics"] = map[string]any{
			"eye_contact_ratio":  rng.Float64(),
			"gaze_variance":      rng.Float64(),
			"smile_ratio":        rng.Float64() * 0.6,
			"neutral_face_ratio": rng.Float64(),
		}
	}
	return session
}
