package service

import (
	"io"
	"net/http"
	"time"
)

func GetExpiresAt(now time.Time, expiresIn int64) time.Time {
	return now.Add(time.Duration(expiresIn) * time.Second)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// readBody drains and closes the response body.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
