// Command smoke runs a quick availability check against a deployed
// timetable API: each target endpoint must answer with the expected
// status and a parseable response envelope.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type target struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	WantStatus int    `json:"want_status"`
	Critical   bool   `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type result struct {
	Target   target
	Status   int
	Duration time.Duration
	Err      error
}

func main() {
	var (
		base        string
		token       string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&token, "token", "", "Bearer token for authenticated routes")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "smoke", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		results  []result
		breaking int
		minor    int
	)

	for _, t := range targets {
		res := checkTarget(client, base, token, t)
		if res.Err != nil {
			if t.Critical {
				breaking++
			} else {
				minor++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Critical failures: %d, Minor failures: %d\n", breaking, minor)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func checkTarget(client *http.Client, base, token string, tgt target) result {
	res := result{Target: tgt}

	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		res.Err = err
		return res
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("request failed: %w", err)
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode

	want := tgt.WantStatus
	if want == 0 {
		want = http.StatusOK
	}
	if resp.StatusCode != want {
		res.Err = fmt.Errorf("status %d, want %d", resp.StatusCode, want)
		return res
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read body: %w", err)
		return res
	}

	// Health and metrics endpoints do not use the envelope.
	if strings.HasPrefix(path, "/api/") && len(body) > 0 {
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			res.Err = fmt.Errorf("malformed envelope: %w", err)
			return res
		}
	}

	return res
}

func printReport(results []result) {
	fmt.Println("Smoke Check Report")
	fmt.Println("==================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s (%d in %s)\n", status, res.Target.Method, res.Target.Path, res.Status, res.Duration)
		if res.Err != nil {
			fmt.Printf("  Error: %v | Critical: %t\n", res.Err, res.Target.Critical)
		}
	}
}
