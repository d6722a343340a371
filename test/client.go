//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type apiResponse struct {
	status int
	header http.Header
	body   []byte
}

func (r apiResponse) decode(v any) error {
	return json.Unmarshal(r.body, v)
}

func doRequest(ctx context.Context, client *http.Client, method, path, body string, headers map[string]string) (apiResponse, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reader)
	if err != nil {
		return apiResponse{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("User-Agent", "test-agent")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return apiResponse{}, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiResponse{}, fmt.Errorf("read body: %w", err)
	}

	return apiResponse{
		status: resp.StatusCode,
		header: resp.Header,
		body:   respBytes,
	}, nil
}
