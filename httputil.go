package invdash

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
)

// dayCache is an http.RoundTripper that stores successful responses on disk
// under a key derived from the request and the current date. Cached entries
// are therefore valid for one calendar day at most, which is the freshness
// quote lookups need: within a day the same endpoint is hit at most once.
type dayCache struct {
	next http.RoundTripper
}

// cacheFile maps a request to its cache location for today.
func (c *dayCache) cacheFile(req *http.Request) string {
	sum := sha1.Sum([]byte(Today().String() + " " + req.Method + " " + req.URL.String()))
	return filepath.Join(os.TempDir(), fmt.Sprintf("invdash-%x", sum))
}

func (c *dayCache) RoundTrip(req *http.Request) (*http.Response, error) {
	file := c.cacheFile(req)
	if content, err := os.ReadFile(file); err == nil {
		if resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req); err == nil {
			return resp, nil
		}
	}

	resp, err := c.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%s %s%s %s", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		// Errors are not worth keeping for a day.
		return resp, nil
	}
	if err := c.store(file, resp); err != nil {
		log.Printf("quote cache write failed (ignored): %v", err)
	}
	return resp, nil
}

// store dumps the response, body included, to the cache file. DumpResponse
// replaces resp.Body, so the response stays readable by the caller.
func (c *dayCache) store(file string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(file, content, 0600)
}

// daily returns an HTTP client whose responses are cached until the end of
// the day.
func daily() *http.Client {
	return &http.Client{Transport: &dayCache{next: http.DefaultTransport}}
}

// jwget GETs addr and unmarshals the JSON response body into data.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %s%s: %s", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
