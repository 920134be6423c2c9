package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	baseURL = "http://localhost:8080"
)

// Smoke test against a running server: ingest a small graph over HTTP, then
// exercise the main query endpoints.
func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	fmt.Println("1. Ingesting Nodes...")
	nodes := []map[string]interface{}{
		{"id": 9001, "name": "Alice", "type": "person"},
		{"id": 9002, "name": "Bob", "type": "person"},
		{"id": 9003, "name": "Carol", "type": "person"},
	}
	if !sendRequest("POST", "/nodes", nodes) {
		fmt.Println("FAILED: Ingest nodes")
		os.Exit(1)
	}
	fmt.Println("PASSED: Ingest nodes")

	fmt.Println("2. Ingesting Edges...")
	edges := []map[string]interface{}{
		{"from_id": 9001, "to_id": 9002, "relationship_type": "knows", "weight": 2.0, "confidence": 0.9},
		{"from_id": 9002, "to_id": 9003, "relationship_type": "knows", "weight": 1.0, "confidence": 0.8},
	}
	if !sendRequest("POST", "/edges", edges) {
		fmt.Println("FAILED: Ingest edges")
		os.Exit(1)
	}
	fmt.Println("PASSED: Ingest edges")

	fmt.Println("3. Ingesting Community...")
	communities := []map[string]interface{}{
		{"id": 9100, "level": 0, "name": "smoke", "member_ids": []int64{9001, 9002, 9003}},
	}
	if !sendRequest("POST", "/communities", communities) {
		fmt.Println("FAILED: Ingest community")
		os.Exit(1)
	}
	fmt.Println("PASSED: Ingest community")

	fmt.Println("4. Recomputing Degree Metrics...")
	if !sendRequest("POST", "/metrics/degree", nil) {
		fmt.Println("FAILED: Degree metrics")
		os.Exit(1)
	}
	fmt.Println("PASSED: Degree metrics")

	fmt.Println("5. Querying Shortest Path...")
	if !sendRequest("GET", "/path?from=9001&to=9003", nil) {
		fmt.Println("FAILED: Shortest path")
		os.Exit(1)
	}
	fmt.Println("PASSED: Shortest path")

	fmt.Println("6. Querying Neighborhood...")
	if !sendRequest("GET", "/nodes/9002/neighborhood?depth=1", nil) {
		fmt.Println("FAILED: Neighborhood")
		os.Exit(1)
	}
	fmt.Println("PASSED: Neighborhood")

	fmt.Println("7. Exporting Visualization...")
	exportOpts := map[string]interface{}{
		"community_ids":   []int64{9100},
		"aggregate_edges": true,
	}
	if !sendRequest("POST", "/export", exportOpts) {
		fmt.Println("FAILED: Export")
		os.Exit(1)
	}
	fmt.Println("PASSED: Export")

	fmt.Println("8. Fetching Statistics...")
	if !sendRequest("GET", "/statistics", nil) {
		fmt.Println("FAILED: Statistics")
		os.Exit(1)
	}
	fmt.Println("PASSED: Statistics")
}

func sendRequest(method, endpoint string, payload interface{}) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Response: %s\n", string(respBody))

	return true
}
