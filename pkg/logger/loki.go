package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type LokiLogEntry struct {
	Streams []LokiStream `json:"streams"`
}

type LokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// LokiWriter receives encoded zap records and pushes each one to the Loki
// push API. Delivery is best effort and never blocks the caller on network.
type LokiWriter struct {
	serviceName string
	pushURL     string
	httpClient  *http.Client
	now         func() time.Time
}

func NewLokiWriter(serviceName, lokiURL string) *LokiWriter {
	return &LokiWriter{
		serviceName: serviceName,
		pushURL:     strings.TrimRight(lokiURL, "/") + "/loki/api/v1/push",
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		now:         time.Now,
	}
}

func (w *LokiWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	entry := w.entry(line)

	go w.push(entry)

	return len(p), nil
}

func (w *LokiWriter) Sync() error {
	return nil
}

func (w *LokiWriter) entry(line string) LokiLogEntry {
	level := "info"

	var decoded struct {
		Level string `json:"level"`
	}

	if err := json.Unmarshal([]byte(line), &decoded); err == nil && decoded.Level != "" {
		level = decoded.Level
	}

	return LokiLogEntry{
		Streams: []LokiStream{
			{
				Stream: map[string]string{
					"service": w.serviceName,
					"level":   level,
				},
				Values: [][]string{
					{fmt.Sprintf("%d", w.now().UnixNano()), line},
				},
			},
		},
	}
}

func (w *LokiWriter) push(entry LokiLogEntry) {
	body, err := json.Marshal(entry)

	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, w.pushURL, bytes.NewReader(body))

	if err != nil {
		return
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)

	if err != nil {
		return
	}

	resp.Body.Close()
}
