// Command recommend is a terminal client for the assessment
// recommender API.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

type result struct {
	Name            string   `json:"name"`
	URL             string   `json:"url"`
	RemoteTesting   string   `json:"remote_testing"`
	AdaptiveSupport string   `json:"adaptive_irt"`
	Duration        string   `json:"duration"`
	TestType        []string `json:"test_type"`
	SimilarityScore float64  `json:"similarity_score"`
}

type response struct {
	Results []result `json:"results"`
	Error   string   `json:"error"`
}

func main() {
	server := flag.String("server", "http://localhost:8080", "recommender server URL")
	pageURL := flag.String("url", "", "rank against a job posting URL instead of text")
	flag.Parse()

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" && *pageURL == "" {
		query = readStdin()
	}
	if query == "" && *pageURL == "" {
		fmt.Fprintln(os.Stderr, "usage: recommend [-server URL] [-url PAGE] [query text]")
		os.Exit(2)
	}

	body, _ := json.Marshal(map[string]string{"query": query, "url": *pageURL})
	resp, err := http.Post(*server+"/recommend", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to fetch recommendations: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		fmt.Fprintf(os.Stderr, "error from API: %d - %s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusOK || parsed.Error != "" {
		fmt.Fprintf(os.Stderr, "error from API: %d - %s\n", resp.StatusCode, parsed.Error)
		os.Exit(1)
	}

	if len(parsed.Results) == 0 {
		fmt.Println("No recommendations found.")
		return
	}

	fmt.Printf("%d recommendations found!\n", len(parsed.Results))
	for _, r := range parsed.Results {
		fmt.Println("----")
		fmt.Printf("Name:             %s\n", r.Name)
		fmt.Printf("URL:              %s\n", r.URL)
		fmt.Printf("Adaptive Support: %s\n", r.AdaptiveSupport)
		fmt.Printf("Remote Support:   %s\n", r.RemoteTesting)
		fmt.Printf("Duration:         %s\n", r.Duration)
		fmt.Printf("Test Type:        %s\n", strings.Join(r.TestType, ", "))
		fmt.Printf("Similarity Score: %.2f\n", r.SimilarityScore)
	}
}

// readStdin collects piped query text, so `cat posting.txt | recommend`
// works.
func readStdin() string {
	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return ""
	}
	var b strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteString(" ")
	}
	return strings.TrimSpace(b.String())
}
