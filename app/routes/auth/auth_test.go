package auth_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"apex-academy/app/models"
	"apex-academy/app/routes/auth"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := auth.GenerateJWT("user-1", "admin@apex.test", "Ada", "Nankya", []string{models.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := auth.ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Email != "admin@apex.test" {
		t.Errorf("Email = %q, want admin@apex.test", claims.Email)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != models.RoleAdmin {
		t.Errorf("Roles = %v, want [admin]", claims.Roles)
	}
}

func TestValidateJWT_Tampered(t *testing.T) {
	token, err := auth.GenerateJWT("user-1", "admin@apex.test", "Ada", "Nankya", []string{models.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := auth.ValidateJWT(tampered); err == nil {
		t.Error("ValidateJWT() accepted a tampered token")
	}

	if _, err := auth.ValidateJWT("not-a-token"); err == nil {
		t.Error("ValidateJWT() accepted garbage")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !auth.CheckPasswordHash("correct horse battery", hash) {
		t.Error("CheckPasswordHash() rejected the right password")
	}
	if auth.CheckPasswordHash("wrong password", hash) {
		t.Error("CheckPasswordHash() accepted the wrong password")
	}
}

func testApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/guarded", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestMiddleware_RoleGating(t *testing.T) {
	app := testApp()

	adminToken, err := auth.GenerateJWT("u1", "admin@apex.test", "Ada", "Nankya", []string{models.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	coachToken, err := auth.GenerateJWT("u2", "coach@apex.test", "Dan", "Otim", []string{models.RoleCoach})
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"no token", "", 401},
		{"garbage token", "Bearer garbage", 401},
		{"coach blocked", "Bearer " + coachToken, 403},
		{"admin allowed", "Bearer " + adminToken, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/guarded", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				body, _ := io.ReadAll(resp.Body)
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.wantStatus, body)
			}
		})
	}
}

func TestMiddleware_CookieToken(t *testing.T) {
	app := testApp()

	token, err := auth.GenerateJWT("u1", "admin@apex.test", "Ada", "Nankya", []string{models.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	req := httptest.NewRequest("GET", "/api/guarded", nil)
	req.AddCookie(&http.Cookie{Name: "jwt_token", Value: token})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
