package inspect_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/simple-inject/framework/container"
	"github.com/km-arc/simple-inject/framework/inspect"
	"github.com/km-arc/simple-inject/framework/routing"
)

type superpower struct{ Ability string }
type superhero struct{ Superpower *superpower }

func setup(t *testing.T) (*container.Container, *routing.Router, *inspect.Inspector) {
	t.Helper()

	c := container.New()
	require.NoError(t, c.Register("superpower", container.Class(func() *superpower {
		return &superpower{Ability: "heat vision"}
	})))
	require.NoError(t, c.Register("superhero", "superpower", container.Class(func(p *superpower) *superhero {
		return &superhero{Superpower: p}
	})))
	require.NoError(t, c.Register("orphan", "missing", container.Class(func(any) int { return 0 })))
	require.NoError(t, c.Register("chicken", "egg", container.Class(func(any) int { return 0 })))
	require.NoError(t, c.Register("egg", "chicken", container.Class(func(any) int { return 0 })))
	require.NoError(t, c.Register("broken", container.Class(func() (int, error) { return 0, errors.New("boom") })))

	r := routing.New(nil)
	return c, r, inspect.Mount(c, r)
}

func do(t *testing.T, r *routing.Router, method, path string) (int, map[string]any) {
	t.Helper()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, nil))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return rr.Code, body
}

// TestServices_SortedWithState verifies labels are listed in order with their resolution state.
func TestServices_SortedWithState(t *testing.T) {
	t.Parallel()

	c, _, i := setup(t)
	_, err := c.Get("superpower")
	require.NoError(t, err)

	want := []inspect.Service{
		{Label: container.SelfLabel, Resolved: true},
		{Label: "broken"},
		{Label: "chicken"},
		{Label: "egg"},
		{Label: "orphan"},
		{Label: "superhero"},
		{Label: "superpower", Resolved: true},
	}
	if diff := cmp.Diff(want, i.Services()); diff != "" {
		t.Errorf("Services() mismatch (-want +got):\n%s", diff)
	}
}

// TestList verifies GET /services wraps the listing in a data envelope.
func TestList(t *testing.T) {
	t.Parallel()

	_, r, _ := setup(t)
	code, body := do(t, r, http.MethodGet, inspect.Prefix+"/services")

	assert.Equal(t, http.StatusOK, code)
	data, ok := body["data"].([]any)
	require.True(t, ok, "expected data array, got %T", body["data"])
	assert.Len(t, data, 7)
}

// TestShow verifies GET /services/{label} for bound and unbound labels.
func TestShow(t *testing.T) {
	t.Parallel()

	_, r, _ := setup(t)

	code, body := do(t, r, http.MethodGet, inspect.Prefix+"/services/superhero")
	assert.Equal(t, http.StatusOK, code)
	want := map[string]any{"data": map[string]any{"label": "superhero", "resolved": false}}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}

	code, body = do(t, r, http.MethodGet, inspect.Prefix+"/services/nobody")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "service not registered: nobody", body["message"])
}

// TestResolve verifies POST /services/{label}/resolve maps container errors to statuses.
func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label   string
		status  int
		message string
	}{
		{"superhero", http.StatusOK, ""},
		{"nobody", http.StatusNotFound, "service not registered: nobody"},
		{"orphan", http.StatusNotFound, "service not registered: missing"},
		{"chicken", http.StatusConflict, "circular dependency detected: chicken -> egg -> chicken"},
		{"broken", http.StatusInternalServerError, "constructing broken: boom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()

			_, r, _ := setup(t)
			code, body := do(t, r, http.MethodPost, inspect.Prefix+"/services/"+tt.label+"/resolve")
			assert.Equal(t, tt.status, code)
			if tt.message != "" {
				assert.Equal(t, tt.message, body["message"])
			}
		})
	}
}

// TestResolve_MarksResolved verifies resolution through HTTP memoizes in the container.
func TestResolve_MarksResolved(t *testing.T) {
	t.Parallel()

	c, r, _ := setup(t)
	code, body := do(t, r, http.MethodPost, inspect.Prefix+"/services/superhero/resolve")
	require.Equal(t, http.StatusOK, code)

	data := body["data"].(map[string]any)
	assert.Equal(t, "*inspect_test.superhero", data["type"])
	assert.True(t, c.Resolved("superhero"))
	assert.True(t, c.Resolved("superpower"))
}

// TestResolve_PanickingConstructor verifies a panic is reported as 500 and the inspector keeps serving.
func TestResolve_PanickingConstructor(t *testing.T) {
	t.Parallel()

	c, r, _ := setup(t)
	calls := 0
	require.NoError(t, c.Register("volatile", container.Class(func() *superpower {
		calls++
		if calls == 1 {
			panic("boom")
		}
		return &superpower{Ability: "recovered"}
	})))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, inspect.Prefix+"/services/volatile/resolve", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	done := make(chan int, 1)
	go func() {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, inspect.Prefix+"/services", nil))
		done <- rr.Code
	}()
	select {
	case code := <-done:
		assert.Equal(t, http.StatusOK, code)
	case <-time.After(5 * time.Second):
		t.Fatal("inspector did not respond after a panicking resolve")
	}

	code, body := do(t, r, http.MethodPost, inspect.Prefix+"/services/volatile/resolve")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "*inspect_test.superpower", body["data"].(map[string]any)["type"])
}
