package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var ErrEmptyCompletion = errors.New("completion has no choices")

type Config struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat completion returned status %d: %s", e.StatusCode, e.Body)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *logrus.Logger
}

func NewClient(config Config, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "ChatCompletion",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("CircuitBreaker[%s] state changed from %s to %s", name, from, to)
		},
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		log:        log,
	}
}

// Complete sends prompt as a single user message and returns the text of the
// first choice.
func (client *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, client.config.Timeout)
	defer cancel()

	result, err := client.breaker.Execute(func() (interface{}, error) {
		return client.send(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (client *Client) send(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    client.config.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", errors.Wrap(err, "encode chat request")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.config.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "build chat request")
	}
	request.Header.Set("Content-Type", "application/json")
	if client.config.APIKey != "" {
		request.Header.Set("Authorization", "Bearer "+client.config.APIKey)
	}

	started := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", errors.Wrap(err, "call chat completion")
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", errors.Wrap(err, "read chat response")
	}

	client.log.WithFields(logrus.Fields{
		"llm.model":    client.config.Model,
		"llm.status":   response.StatusCode,
		"llm.took_ms":  time.Since(started).Milliseconds(),
		"llm.resp_len": len(body),
	}).Debug("chat completion finished")

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", &StatusError{StatusCode: response.StatusCode, Body: truncate(string(body), 512)}
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", errors.Wrap(err, "decode chat response")
	}
	if len(decoded.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return decoded.Choices[0].Message.Content, nil
}

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}
