package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const (
	baseURL = "http://localhost:5000/api"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func show(body []byte) {
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	prettyPrint(parsed)
}

func main() {
	color.Cyan("🚀 Focus Shield Enforcement Flow Simulation\n")

	// 1. Start a session
	color.Yellow("\n[SESSION] 1. Start a 10-minute session")
	resp, body, err := sendRequest("POST", "/session/v1/start", map[string]interface{}{
		"domain":      "writing my thesis chapter on distributed consensus",
		"duration_ms": 10 * 60 * 1000,
		"context": []map[string]string{
			{"question": "What are you working on?", "answer": "Thesis chapter 3"},
		},
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 2. Navigation event for an unknown URL (expect analyzing redirect)
	color.Yellow("\n[NAVIGATION] 2. Navigate to an unknown URL")
	resp, body, err = sendRequest("POST", "/navigation/v1/decide", map[string]interface{}{
		"tab_id":   1,
		"url":      "https://en.wikipedia.org/wiki/Raft_(algorithm)",
		"frame_id": 0,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 3. Classify the URL (what the analyzing surface does)
	color.Yellow("\n[CLASSIFY] 3. Ask the gateway to classify the URL")
	resp, body, err = sendRequest("POST", "/classify/v1", map[string]interface{}{
		"url": "https://en.wikipedia.org/wiki/Raft_(algorithm)",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 4. Same navigation again (expect allow or blocked redirect, no re-analysis)
	color.Yellow("\n[NAVIGATION] 4. Navigate to the same URL again")
	resp, body, err = sendRequest("POST", "/navigation/v1/decide", map[string]interface{}{
		"tab_id":   1,
		"url":      "https://en.wikipedia.org/wiki/Raft_(algorithm)",
		"frame_id": 0,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 5. State snapshot
	color.Yellow("\n[STATE] 5. Fetch the state snapshot")
	resp, body, err = sendRequest("GET", "/state/v1", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 6. Recent activity
	color.Yellow("\n[ACTIVITY] 6. Fetch the recent activity trail")
	resp, body, err = sendRequest("GET", "/activity/v1?limit=10", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 7. End the session
	color.Yellow("\n[SESSION] 7. End the session")
	resp, body, err = sendRequest("POST", "/session/v1/end", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	color.Cyan("\n✅ Simulation complete")
}
