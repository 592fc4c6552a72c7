// loadgen drives a constant-rate stream of clicks at a running service and
// prints a latency/status report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"

	"click-stats-service/internal/clicks/core/domain"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Service base URL")
	rate := flag.Int("rate", 50, "Requests per second")
	duration := flag.Duration("duration", 10*time.Second, "Attack duration")
	agent := flag.String("agent", "click-stats-loadgen", "User-Agent header sent with every click")
	flag.Parse()

	targeter, err := clickTargeter(strings.TrimRight(*baseURL, "/")+"/api/click", *agent)
	if err != nil {
		fmt.Fprintln(os.Stderr, "targeter:", err)
		os.Exit(1)
	}

	attacker := vegeta.NewAttacker(vegeta.Timeout(5 * time.Second))
	pacer := vegeta.Rate{Freq: *rate, Per: time.Second}

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, pacer, *duration, "clicks") {
		metrics.Add(res)
	}
	metrics.Close()

	if err := vegeta.NewTextReporter(&metrics).Report(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "report:", err)
		os.Exit(1)
	}
	if metrics.Success < 1 {
		os.Exit(2)
	}
}

// clickTargeter rotates through the categories so every bucket receives load.
func clickTargeter(url, agent string) (vegeta.Targeter, error) {
	bodies := make([][]byte, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		b, err := json.Marshal(map[string]string{"category": string(c)})
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("User-Agent", agent)

	var n atomic.Uint64
	return func(t *vegeta.Target) error {
		if t == nil {
			return vegeta.ErrNilTarget
		}
		i := n.Add(1) - 1
		t.Method = http.MethodPost
		t.URL = url
		t.Body = bodies[i%uint64(len(bodies))]
		t.Header = header
		return nil
	}, nil
}
