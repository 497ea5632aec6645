// Command smoke drives a running instance of the match API with a set of
// canned requests and checks the responses for contract-level sanity:
// endpoints answer, pagination metadata is coherent, and ranked results
// never place an unparseable closing rank ahead of a parseable one. It is
// meant for post-deploy verification against staging.
package main

import (
	"bytes"
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
	"unicode"
)

type smokeCase struct {
	Name     string          `json:"name"`
	Method   string          `json:"method"`
	Path     string          `json:"path"`
	Body     json.RawMessage `json:"body,omitempty"`
	Status   int             `json:"status"`
	Critical bool            `json:"critical"`
}

type casesFile struct {
	Cases []smokeCase `json:"cases"`
}

type outcome struct {
	Case     smokeCase
	Status   int
	Duration time.Duration
	Problems []string
	Err      error
}

func main() {
	var (
		base      string
		casesPath string
		timeout   time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&casesPath, "cases", filepath.Join("scripts", "smoke", "cases.json"), "Path to JSON cases file")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	cases, err := loadCases(casesPath)
	if err != nil {
		log.Fatalf("failed to load cases: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		outcomes []outcome
		breaking int
		warnings int
	)

	for _, c := range cases {
		out := runCase(client, base, c)
		if out.Err != nil || len(out.Problems) > 0 {
			if c.Critical {
				breaking++
			} else {
				warnings++
			}
		}
		outcomes = append(outcomes, out)
	}

	printReport(outcomes)

	fmt.Printf("Breaking failures: %d, Warnings: %d\n", breaking, warnings)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadCases(path string) ([]smokeCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cf casesFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	if len(cf.Cases) == 0 {
		return nil, fmt.Errorf("no cases defined in %s", path)
	}
	return cf.Cases, nil
}

func runCase(client *http.Client, base string, c smokeCase) outcome {
	out := outcome{Case: c}

	method := strings.ToUpper(strings.TrimSpace(c.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := c.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	var body io.Reader
	if len(c.Body) > 0 {
		body = bytes.NewReader(c.Body)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		out.Err = err
		return out
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	out.Duration = time.Since(start)
	if err != nil {
		out.Err = err
		return out
	}
	defer resp.Body.Close()

	out.Status = resp.StatusCode
	wantStatus := c.Status
	if wantStatus == 0 {
		wantStatus = http.StatusOK
	}
	if resp.StatusCode != wantStatus {
		out.Problems = append(out.Problems, fmt.Sprintf("status %d, want %d", resp.StatusCode, wantStatus))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		out.Err = fmt.Errorf("read body: %w", err)
		return out
	}
	if resp.StatusCode == http.StatusOK {
		out.Problems = append(out.Problems, checkEnvelope(raw)...)
	}
	return out
}

// checkEnvelope validates the invariants every successful match response
// must hold, independent of the dataset behind the API.
func checkEnvelope(raw []byte) []string {
	var envelope struct {
		Data []struct {
			ID          string `json:"id"`
			ClosingRank string `json:"closing_rank"`
		} `json:"data"`
		Pagination *struct {
			Page       int `json:"page"`
			PageSize   int `json:"page_size"`
			TotalCount int `json:"total_count"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		// Non-list payloads (margin, options) get no further checks.
		return nil
	}
	if envelope.Data == nil {
		return nil
	}

	var problems []string
	if envelope.Pagination != nil {
		p := envelope.Pagination
		if len(envelope.Data) > p.PageSize {
			problems = append(problems, fmt.Sprintf("%d rows exceed page_size %d", len(envelope.Data), p.PageSize))
		}
		if p.TotalCount > 0 && p.TotalPages < 1 {
			problems = append(problems, "total_pages is zero with a nonzero total_count")
		}
	}

	seenUnparseable := false
	for i, row := range envelope.Data {
		if row.ID == "" {
			problems = append(problems, fmt.Sprintf("row %d has no id", i))
		}
		if hasDigits(row.ClosingRank) {
			if seenUnparseable {
				problems = append(problems, fmt.Sprintf("row %d has a numeric closing rank after an unparseable one", i))
				break
			}
		} else {
			seenUnparseable = true
		}
	}
	return problems
}

func hasDigits(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func printReport(outcomes []outcome) {
	fmt.Println("Smoke Report")
	fmt.Println("============")
	for _, out := range outcomes {
		status := "OK"
		if out.Err != nil {
			status = "ERROR"
		} else if len(out.Problems) > 0 {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s (%s %s) %d in %s\n", status, out.Case.Name, out.Case.Method, out.Case.Path, out.Status, out.Duration)
		if out.Err != nil {
			fmt.Printf("  error: %v\n", out.Err)
		}
		for _, p := range out.Problems {
			fmt.Printf("  - %s\n", p)
		}
	}
}
