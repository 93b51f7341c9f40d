package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

func httpClient() *resty.Client {
	return resty.New().
		SetBaseURL(apiFlag).
		SetTimeout(2 * time.Minute)
}

func doGet(path string) ([]byte, error) {
	resp, err := httpClient().R().Get(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

func doPostJSON(path string, payload interface{}) ([]byte, error) {
	req := httpClient().R()
	if payload != nil {
		req.SetBody(payload)
	}
	resp, err := req.Post(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

func sessionPath(suffix string) string {
	return fmt.Sprintf("/api/users/%s/saves/%s%s", userFlag, saveFlag, suffix)
}
