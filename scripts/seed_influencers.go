// seed_influencers.go: standalone script to register influencer handles via the Vouch API.
//
// Usage:
//
//	go run scripts/seed_influencers.go -file handles.txt -api http://localhost:8000 -email me@example.com -password secret
//
// One handle per line. Blank lines and lines starting with # are ignored. A
// line may carry a platform after a comma: "acme_brand,tiktok".
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
)

type influencer struct {
	Handle   string `json:"handle"`
	Platform string `json:"platform,omitempty"`
}

func main() {
	filePath := flag.String("file", "handles.txt", "path to handles file")
	apiURL := flag.String("api", "http://localhost:8000", "Vouch API base URL")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	token := flag.String("token", os.Getenv("VOUCH_TOKEN"), "bearer token (skips login)")
	batchSize := flag.Int("batch", 50, "handles per request")
	dryRun := flag.Bool("dry-run", false, "print handles without posting")
	flag.Parse()

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("open %s: %v", *filePath, err)
	}
	defer f.Close()

	var items []influencer
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		handle, platform, _ := strings.Cut(line, ",")
		handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
		if handle == "" {
			continue
		}
		key := strings.ToLower(handle)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, influencer{Handle: handle, Platform: strings.TrimSpace(platform)})
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("scan %s: %v", *filePath, err)
	}

	log.Printf("parsed %d handles from %s", len(items), *filePath)

	if *dryRun {
		for i, item := range items {
			platform := item.Platform
			if platform == "" {
				platform = "instagram"
			}
			fmt.Printf("[%d] %s (platform=%s)\n", i+1, item.Handle, platform)
		}
		return
	}

	client := &http.Client{}
	if *token == "" {
		*token, err = login(client, *apiURL, *email, *password)
		if err != nil {
			log.Fatalf("login: %v", err)
		}
	}

	if *batchSize < 1 {
		*batchSize = 1
	}
	created, failed := 0, 0
	for start := 0; start < len(items); start += *batchSize {
		end := min(start+*batchSize, len(items))
		batch := items[start:end]

		body, _ := json.Marshal(batch)
		req, err := http.NewRequest("POST", *apiURL+"/api/influencers", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip batch %d-%d: %v", start, end, err)
			failed += len(batch)
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+*token)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip batch %d-%d: %v", start, end, err)
			failed += len(batch)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created += len(batch)
		} else {
			log.Printf("skip batch %d-%d: status %d", start, end, resp.StatusCode)
			failed += len(batch)
		}
	}

	log.Printf("done: %d created, %d failed", created, failed)
}

func login(client *http.Client, apiURL, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("-email and -password are required without -token")
	}
	form := url.Values{"username": {email}, "password": {password}}
	resp, err := client.PostForm(apiURL+"/api/auth/login", form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	return out.AccessToken, nil
}
