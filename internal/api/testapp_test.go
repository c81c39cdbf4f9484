package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/symptomap/internal/db"
	"github.com/terraincognita07/symptomap/internal/models"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "symptomap-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.NewSymptomRepository(database).ReplaceAll(models.DefaultCatalogSymptoms()); err != nil {
		t.Fatalf("seed symptom catalog: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, NewHandler(database, "api-test-secret"))
	return app, database
}

func performJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
}

// registerTestUser creates an account through the public API and returns
// the issued bearer token.
func registerTestUser(t *testing.T, app *fiber.App, username string, latitude *float64, longitude *float64) string {
	t.Helper()

	response := performJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "longenough",
		"latitude":  latitude,
		"longitude": longitude,
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected status 201, got %d", username, response.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	decodeJSONBody(t, response, &body)
	if body.Token == "" {
		t.Fatalf("register %s: expected a bearer token", username)
	}
	return body.Token
}

// catalogIDsByName resolves catalog symptom names to ids through the API.
func catalogIDsByName(t *testing.T, app *fiber.App, token string) map[string]uint {
	t.Helper()

	response := performJSON(t, app, http.MethodGet, "/api/symptoms", token, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("list symptoms: expected status 200, got %d", response.StatusCode)
	}

	var symptoms []models.Symptom
	decodeJSONBody(t, response, &symptoms)
	idsByName := make(map[string]uint, len(symptoms))
	for _, symptom := range symptoms {
		idsByName[symptom.Name] = symptom.ID
	}
	return idsByName
}

func symptomRefs(ids ...uint) []map[string]uint {
	refs := make([]map[string]uint, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, map[string]uint{"id": id})
	}
	return refs
}

func submitEntry(t *testing.T, app *fiber.App, token string, date string, ids ...uint) map[string]any {
	t.Helper()

	payload := map[string]any{"symptoms": symptomRefs(ids...)}
	if date != "" {
		payload["date"] = date
	}
	response := performJSON(t, app, http.MethodPost, "/api/symptoms/entry", token, payload)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("submit entry: expected status 200, got %d", response.StatusCode)
	}

	var body struct {
		Message string         `json:"message"`
		Entry   map[string]any `json:"entry"`
	}
	decodeJSONBody(t, response, &body)
	if body.Message != "Symptoms logged successfully" {
		t.Fatalf("submit entry: unexpected message %q", body.Message)
	}
	if body.Entry == nil {
		t.Fatal("submit entry: expected an entry in the response")
	}
	return body.Entry
}

func entrySymptomNames(t *testing.T, entry map[string]any) []string {
	t.Helper()

	rawSymptoms, ok := entry["symptoms"].([]any)
	if !ok {
		t.Fatalf("expected a symptoms array, got %T", entry["symptoms"])
	}
	names := make([]string, 0, len(rawSymptoms))
	for _, rawSymptom := range rawSymptoms {
		symptom, ok := rawSymptom.(map[string]any)
		if !ok {
			t.Fatalf("expected a symptom object, got %T", rawSymptom)
		}
		names = append(names, fmt.Sprintf("%v", symptom["name"]))
	}
	return names
}
