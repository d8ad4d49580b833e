package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stnicholas-parish/parish-app/controllers"
	"github.com/stnicholas-parish/parish-app/db"
	"github.com/stnicholas-parish/parish-app/models"
	"github.com/stnicholas-parish/parish-app/routes"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "password123"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("underlying db: %v", err)
	}
	// One connection so every session sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	routes.SetupAuthRoutes(app, controllers.NewAuthController(conn))
	routes.SetupParishRoutes(app,
		controllers.NewMemberController(conn),
		controllers.NewAppointmentController(conn, nil),
		controllers.NewChatController(conn),
		controllers.NewPresenceController(conn),
	)
	routes.SetupGalleryRoutes(app, controllers.NewGalleryController(conn))
	routes.SetupContentRoutes(app, controllers.NewContentController(conn))
	return app, conn
}

// request performs a JSON request against the test app and decodes the
// response body into out when it is non-nil.
func request(t *testing.T, app *fiber.App, method, path string, body any, token string, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("decode response %q: %v", raw, err)
		}
	}
	return resp.StatusCode
}

func createMember(t *testing.T, conn *gorm.DB, username string, role models.MemberRole, status models.MemberStatus) models.Member {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	member := models.Member{
		Username:    username,
		Email:       username + "@example.com",
		Password:    string(hashed),
		FullName:    "Test " + username,
		PhoneNumber: "555-0100",
		Status:      status,
		Role:        role,
	}
	if err := conn.Create(&member).Error; err != nil {
		t.Fatalf("create member %s: %v", username, err)
	}
	return member
}

func memberToken(t *testing.T, member models.Member) string {
	t.Helper()
	token, err := controllers.SignToken(jwt.MapClaims{
		"id":       member.ID,
		"username": member.Username,
		"role":     string(member.Role),
		"type":     "member",
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := controllers.SignToken(jwt.MapClaims{
		"id":       uint(9000),
		"username": "admin",
		"role":     "admin",
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
