package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shamaiem10/Vytal/internal/db"
	"github.com/shamaiem10/Vytal/internal/services"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type fakeCompleter struct {
	response string
	err      error
}

func (fake *fakeCompleter) Complete(context.Context, string) (string, error) {
	return fake.response, fake.err
}

type fakeExtractor struct {
	text string
}

func (fake fakeExtractor) ExtractText(context.Context, []byte) (string, error) {
	return fake.text, nil
}

type memoryUploads struct {
	count int
}

func (uploads *memoryUploads) Save(_ context.Context, filename string, _ []byte) (string, error) {
	uploads.count++
	return "memory://" + filename, nil
}

type testServer struct {
	app       *fiber.App
	repos     *db.Repositories
	completer *fakeCompleter
	uploads   *memoryUploads
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := quietTestLogger()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "api.db"), log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repos := db.NewRepositories(database)
	completer := &fakeCompleter{}
	uploads := &memoryUploads{}
	ocr := fakeExtractor{text: "Amoxicillin 500mg twice daily"}

	handler, err := NewHandler(Dependencies{
		Accounts:      services.NewAccountService(repos.Users).WithHashCost(bcrypt.MinCost),
		Diary:         services.NewDiaryService(repos.Diary, repos.Users, time.UTC),
		Summaries:     services.NewSummaryService(repos.Diary, completer, log),
		Prescriptions: services.NewPrescriptionService(uploads, ocr, completer, repos.Prescriptions, time.UTC, log),
		Log:           log,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := NewApp(handler, 1<<20)
	return &testServer{app: app, repos: repos, completer: completer, uploads: uploads}
}

func (server *testServer) do(t *testing.T, request *http.Request) (int, []byte) {
	t.Helper()

	response, err := server.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response.StatusCode, body
}

func (server *testServer) postJSON(t *testing.T, path string, payload string) (int, []byte) {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(payload))
	request.Header.Set("Content-Type", "application/json")
	return server.do(t, request)
}

func (server *testServer) get(t *testing.T, path string) (int, []byte) {
	t.Helper()
	return server.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (server *testServer) registerUser(t *testing.T, email string) uint {
	t.Helper()

	status, body := server.postJSON(t, "/api/users", `{"name":"Ana","email":"`+email+`","password":"pw"}`)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 registering %s, got %d: %s", email, status, body)
	}
	var created struct {
		UserID uint `json:"user_id"`
	}
	decodeBody(t, body, &created)
	return created.UserID
}

func multipartUpload(t *testing.T, field string, filename string, content []byte) *http.Request {
	t.Helper()

	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/api/prescriptions/upload", buffer)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

func decodeBody(t *testing.T, body []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("decode response %s: %v", body, err)
	}
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()

	var payload struct {
		Error string `json:"error"`
	}
	decodeBody(t, body, &payload)
	return payload.Error
}

func quietTestLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}
