package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"venued/internal/clients"
	"venued/internal/models"

	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"
)

var (
	baseURL      string
	numWorkers   int
	testDuration time.Duration
	numVenues    int
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	pflag.StringVar(&baseURL, "url", "http://127.0.0.1:18090", "venued base url")
	pflag.IntVar(&numWorkers, "workers", 50, "concurrent workers")
	pflag.DurationVar(&testDuration, "duration", 10*time.Second, "duration of each phase")
	pflag.IntVar(&numVenues, "venues", 20, "distinct venue payloads")
	pflag.Parse()

	fmt.Println("=== venued Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Venues: %d\n\n", numWorkers, testDuration, numVenues)

	payloads := make([]string, numVenues)
	for i := range payloads {
		p, err := clients.EncodeVenuePayload(models.VenueInfo{Name: fmt.Sprintf("Venue %d", i+1)})
		if err != nil {
			fmt.Println("FAILED: cannot encode venue payload:", err)
			return
		}
		payloads[i] = p
	}

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Check-in and check-out race on the single current slot; 409 and 404 are expected outcomes.
	fmt.Println("\n--- Phase 1: Check-in churn ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return doCheckIn(rng, payloads)
		}
		return doPost("/checkout", nil, http.StatusOK, http.StatusNotFound, http.StatusUnprocessableEntity)
	})

	fmt.Println("\n--- Phase 2: Read-heavy load with manual syncs ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doGet("/exposure", http.StatusOK)
		case r < 0.70:
			return doGet("/visited", http.StatusOK)
		case r < 0.85:
			return doGet("/current", http.StatusOK, http.StatusNoContent)
		case r < 0.98:
			return doGet("/health", http.StatusOK)
		default:
			return doPost("/sync", nil, http.StatusOK)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, seed>>1))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Uint64() + uint64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doCheckIn(rng *rand.Rand, payloads []string) result {
	body := map[string]any{
		"qrPayload":    payloads[rng.IntN(len(payloads))],
		"plusSelected": rng.Float64() < 0.2,
	}
	return doPost("/checkin", body, http.StatusCreated, http.StatusConflict)
}

func doPost(path string, body any, expected ...int) result {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	start := time.Now()
	resp, err := httpClient.Post(baseURL+path, "application/json", reader)
	return finish("POST "+path, resp, err, start, expected)
}

func doGet(path string, expected ...int) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	return finish("GET "+path, resp, err, start, expected)
}

func finish(endpoint string, resp *http.Response, err error, start time.Time, expected []int) result {
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	ok := false
	for _, code := range expected {
		if resp.StatusCode == code {
			ok = true
			break
		}
	}
	return result{endpoint, resp.StatusCode, lat, !ok}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
