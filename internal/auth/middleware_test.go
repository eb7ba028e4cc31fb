package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/news-service/internal/domain"
	apperrors "github.com/spec-kit/news-service/pkg/util"
)

func newTestApp(tm *TokenManager, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": de.Code, "message": de.Message},
			})
		},
	})
	mw := NewAuthMiddleware(tm)
	chain := append([]fiber.Handler{mw.Handle}, extra...)
	chain = append(chain, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("no principal")
		}
		return c.JSON(fiber.Map{"id": principal.ID, "role": principal.Role})
	})
	app.Get("/protected", chain...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return resp.StatusCode, body
}

func bodyErrorCode(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

func TestMiddlewareMissingHeader(t *testing.T) {
	app := newTestApp(NewTokenManager("secret", 60))

	status, body := doRequest(t, app, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if code := bodyErrorCode(body); code != "MISSING_TOKEN" {
		t.Fatalf("expected MISSING_TOKEN, got %s", code)
	}
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	app := newTestApp(NewTokenManager("secret", 60))

	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		status, body := doRequest(t, app, header)
		if status != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, status)
		}
		if code := bodyErrorCode(body); code != "MISSING_TOKEN" {
			t.Fatalf("header %q: expected MISSING_TOKEN, got %s", header, code)
		}
	}
}

func TestMiddlewareValidToken(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := newTestApp(tm)

	token, _, err := tm.GenerateToken("user-7", domain.RoleReader)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	status, body := doRequest(t, app, "Bearer "+token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["id"] != "user-7" {
		t.Fatalf("expected principal user-7, got %v", body["id"])
	}
}

func TestMiddlewareTamperedToken(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	other := NewTokenManager("other", 60)
	app := newTestApp(tm)

	token, _, err := other.GenerateToken("user-7", domain.RoleReader)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	status, body := doRequest(t, app, "Bearer "+token)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if code := bodyErrorCode(body); code != "INVALID_SIGNATURE" {
		t.Fatalf("expected INVALID_SIGNATURE, got %s", code)
	}
}

func TestRoleGate(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := newTestApp(tm, RequireRole(domain.RolePublisher))

	readerToken, _, err := tm.GenerateToken("reader-1", domain.RoleReader)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	status, body := doRequest(t, app, "Bearer "+readerToken)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
	if code := bodyErrorCode(body); code != "INSUFFICIENT_ROLE" {
		t.Fatalf("expected INSUFFICIENT_ROLE, got %s", code)
	}

	publisherToken, _, err := tm.GenerateToken("pub-1", domain.RolePublisher)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	status, _ = doRequest(t, app, "Bearer "+publisherToken)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for publisher, got %d", status)
	}
}
