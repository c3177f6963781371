package api

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAISummaryFlow(t *testing.T) {
	server := newTestServer(t)

	status, body := server.get(t, "/api/summaries/ai")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 without diary data, got %d: %s", status, body)
	}
	if message := errorMessage(t, body); message != "No diary data available" {
		t.Fatalf("unexpected error message %q", message)
	}

	userID := server.registerUser(t, "summary@example.com")
	for _, date := range []string{"2024-04-01", "2024-04-05"} {
		payload := fmt.Sprintf(`{"user_id":%d,"date":"%s","mood":"ok","bp":"118/76"}`, userID, date)
		if status, body := server.postJSON(t, "/api/diary", payload); status != http.StatusCreated {
			t.Fatalf("expected 201 adding entry, got %d: %s", status, body)
		}
	}

	server.completer.response = "```json\n{\"summary\":\"Steady readings\",\"insights\":[\"BP in range\"],\"recommendations\":[\"Keep logging\"]}\n```"
	status, body = server.get(t, fmt.Sprintf("/api/summaries/ai?user_id=%d", userID))
	if status != http.StatusOK {
		t.Fatalf("expected 200 for summary, got %d: %s", status, body)
	}

	var summary struct {
		Period          string   `json:"period"`
		Summary         string   `json:"summary"`
		Insights        []string `json:"insights"`
		Recommendations []string `json:"recommendations"`
	}
	decodeBody(t, body, &summary)
	if summary.Period != "2024-04-01 to 2024-04-05" {
		t.Fatalf("unexpected period %q", summary.Period)
	}
	if summary.Summary != "Steady readings" || len(summary.Recommendations) != 1 {
		t.Fatalf("unexpected summary %#v", summary)
	}
}

func TestAISummaryKeepsRawTextWhenModelIsNotJSON(t *testing.T) {
	server := newTestServer(t)
	userID := server.registerUser(t, "raw@example.com")
	payload := fmt.Sprintf(`{"user_id":%d,"date":"2024-04-01"}`, userID)
	if status, body := server.postJSON(t, "/api/diary", payload); status != http.StatusCreated {
		t.Fatalf("expected 201 adding entry, got %d: %s", status, body)
	}

	server.completer.response = "Everything looks fine."
	status, body := server.get(t, "/api/summaries/ai")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var summary struct {
		Summary         string `json:"summary"`
		Insights        []any  `json:"insights"`
		Recommendations []any  `json:"recommendations"`
	}
	decodeBody(t, body, &summary)
	if summary.Summary != "Everything looks fine." || summary.Insights == nil || summary.Recommendations == nil {
		t.Fatalf("unexpected fallback summary %#v", summary)
	}
}
