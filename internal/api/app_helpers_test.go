package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitcoach/internal/db"
	"github.com/terraincognita07/fitcoach/internal/fitness"
	"github.com/terraincognita07/fitcoach/internal/plans"
	"github.com/terraincognita07/fitcoach/internal/predict"
	"gorm.io/gorm"
)

const (
	testSecretKey = "test-secret-key-0123456789abcdef"
	testPassword  = "StrongPass1"
)

type testAppOptions struct {
	pair    predict.Pair
	limiter LoginLimiter
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppWithOptions(t, testAppOptions{})
}

func newTestAppWithOptions(t *testing.T, opts testAppOptions) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "fitcoach-api-test.db")
	database, err := db.OpenSQLite(databasePath, nil)
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

	catalog, err := plans.DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	pair := opts.pair
	if pair.Gym == nil || pair.Diet == nil {
		pair = predict.Pair{
			Gym:  predict.Static{Label: 2, Features: fitness.GymFeatureCount},
			Diet: predict.Static{Label: 1, Features: fitness.DietFeatureCount},
		}
	}

	handler, err := NewHandler(database, pair, plans.NewDecoder(catalog), Options{
		SecretKey:    testSecretKey,
		Location:     time.UTC,
		LoginLimiter: opts.limiter,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(RequestID())
	RegisterRoutes(app, handler)
	return app, database
}

func jsonRequest(method string, target string, payload interface{}, cookie string) *http.Request {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = strings.NewReader(string(raw))
	}
	request := httptest.NewRequest(method, target, body)
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return request
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) *http.Response {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func registerUser(t *testing.T, app *fiber.App, username string) {
	t.Helper()

	response := doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Test User",
		"username": username,
		"password": testPassword,
	}, ""))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, username string, password string) string {
	t.Helper()

	form := url.Values{
		"username": {username},
		"password": {password},
	}
	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response := doRequest(t, app, request)
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login status 303, got %d", response.StatusCode)
	}

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("auth cookie is missing in login response")
	}
	return cookie.Name + "=" + cookie.Value
}

func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	registerUser(t, app, username)
	return loginAndExtractAuthCookie(t, app, username, testPassword)
}

func validQuestionnaire() map[string]interface{} {
	return map[string]interface{}{
		"age":                              34,
		"gender":                           "Male",
		"height_cm":                        170,
		"weight_kg":                        90,
		"disease":                          "Diabetes",
		"severity":                         "Moderate",
		"physical_activity_level":          "Sedentary",
		"dietary_restrictions":             "Low Sugar",
		"allergies":                        "None",
		"preferred_cuisine":                "Indian",
		"fitness_goal":                     "Weight Loss",
		"fitness_type":                     "Cardio Fitness",
		"daily_caloric_intake":             2400,
		"cholesterol":                      210,
		"blood_pressure":                   135,
		"glucose":                          140,
		"weekly_exercise_hours":            2,
		"adherence_to_diet_plan":           60,
		"dietary_nutrient_imbalance_score": 3,
	}
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]interface{}{}
	decodeJSONBody(t, body, &payload)
	message, _ := payload["error"].(string)
	return message
}

func decodeJSONBody(t *testing.T, body io.Reader, target interface{}) {
	t.Helper()

	bytes, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(bytes, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(bytes), err)
	}
}
