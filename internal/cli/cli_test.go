package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommandWithIO(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStarsCommand(t *testing.T) {
	out, err := run(t, "", "stars", "3.5")
	if err != nil {
		t.Fatalf("stars: %v", err)
	}
	if !strings.HasPrefix(out, "★★★⯪☆") || !strings.Contains(out, "3 full, 1 half, 1 empty") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = run(t, "", "stars", "--slots", "3", "2.8")
	if err != nil {
		t.Fatalf("stars: %v", err)
	}
	if !strings.Contains(out, "3 full, 0 half, 0 empty") {
		t.Fatalf("unexpected output: %q", out)
	}

	if _, err := run(t, "", "stars", "abc"); err == nil {
		t.Fatalf("expected error for non-numeric average")
	}
}

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error {
		var body map[string]string
		_ = c.Bind(&body)
		if body["password"] != "secret" {
			return c.JSON(http.StatusBadRequest, map[string]string{"status": "error", "message": "Invalid credentials"})
		}
		return c.JSON(http.StatusOK, map[string]string{"token": "opaque-token", "username": "alice", "role": "USER"})
	})
	e.GET("/profile/me", func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") != "Bearer opaque-token" {
			return c.NoContent(http.StatusUnauthorized)
		}
		return c.JSON(http.StatusOK, map[string]any{"username": "alice", "email": "alice@example.com", "totalPoints": 42})
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginWhoamiLogout(t *testing.T) {
	srv := fakeBackend(t)
	t.Setenv("BACKEND_URL", srv.URL)
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("STORE_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "disabled")

	out, err := run(t, "", "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "Not signed in.") {
		t.Fatalf("expected signed out, got %q", out)
	}

	_, err = run(t, "wrong\n", "login", "-u", "alice")
	if err == nil || ErrorText(err) != "Invalid credentials" {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	out, err = run(t, "secret\n", "login", "-u", "alice")
	if err != nil {
		t.Fatalf("login: %s", ErrorText(err))
	}
	if !strings.Contains(out, "Signed in as alice (USER)") {
		t.Fatalf("unexpected login output: %q", out)
	}

	out, err = run(t, "", "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "username: alice") || !strings.Contains(out, "points:   42") {
		t.Fatalf("unexpected whoami output: %q", out)
	}

	if out, err = run(t, "", "logout"); err != nil || !strings.Contains(out, "Signed out.") {
		t.Fatalf("logout: %q %v", out, err)
	}
	out, _ = run(t, "", "whoami")
	if !strings.Contains(out, "Not signed in.") {
		t.Fatalf("expected signed out after logout, got %q", out)
	}
}

func TestErrorText(t *testing.T) {
	if got := ErrorText(domain.NewError(domain.ErrLockedOut, "Try again in 30 minutes.", nil)); got != "Try again in 30 minutes." {
		t.Fatalf("unexpected text: %q", got)
	}
	if got := ErrorText(context.Canceled); got != "context canceled" {
		t.Fatalf("unexpected text: %q", got)
	}
}
