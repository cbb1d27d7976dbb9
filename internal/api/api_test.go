package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/midaytech/brainloop/internal/models"
)

type recorded struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

type server struct {
	*httptest.Server
	routes   map[string]http.HandlerFunc
	requests []recorded
	mu       sync.Mutex
}

func newServer(t *testing.T, routes map[string]http.HandlerFunc) *server {
	t.Helper()

	s := &server{routes: routes}

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&body)

		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing request id on %s %s", r.Method, r.URL.Path)
		}

		s.mu.Lock()
		s.requests = append(s.requests, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		s.mu.Unlock()

		h, ok := s.routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		h(w, r)
	}))

	t.Cleanup(s.Close)

	return s
}

func (s *server) got() []recorded {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recorded(nil), s.requests...)
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestFetchProblems(t *testing.T) {
	srv := newServer(t, map[string]http.HandlerFunc{
		"GET /questions": reply(http.StatusOK, `[
			{"ID": 1, "Title": "Two Sum", "Status": "Done", "Difficulty": "Easy",
			 "NextRevisionDate": "2024-06-10T00:00:00Z", "TimeTaken": 12,
			 "Tags": [{"ID": 3, "Name": "arrays"}]},
			{"ID": 2, "Title": "LRU Cache", "Status": "To Do", "Difficulty": "Medium",
			 "NextRevisionDate": null}
		]`),
	})

	c := New(srv.URL, WithToken("secret"))

	problems, err := c.FetchProblems(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []models.Problem{
		{
			ID: "1", Title: "Two Sum", Status: models.Done, Difficulty: models.Easy,
			NextRevisionDate: models.NewDate(2024, 6, 10), TimeTaken: 12,
			Tags: []models.Tag{{ID: "3", Name: "arrays"}},
		},
		{ID: "2", Title: "LRU Cache", Status: models.ToDo, Difficulty: models.Medium},
	}

	if diff := cmp.Diff(want, problems); diff != "" {
		t.Fatalf("FetchProblems() mismatch (-want +got):\n%s", diff)
	}

	if got := srv.got()[0].Auth; got != "Bearer secret" {
		t.Fatalf("expected bearer token, got %q", got)
	}
}

func TestMissingToken(t *testing.T) {
	srv := newServer(t, nil)

	_, err := New(srv.URL).FetchProblems(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}

	if len(srv.got()) != 0 {
		t.Fatal("expected no request without a token")
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"top level message", 400, `{"message": "title is required"}`, "title is required"},
		{"nested message", 401, `{"error": {"message": "Please verify your email"}}`, "Please verify your email"},
		{"string error", 409, `{"error": "duplicate"}`, "duplicate"},
		{"no body", 500, ``, "HTTP error! status: 500"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(t, map[string]http.HandlerFunc{
				"POST /questions": reply(tc.status, tc.body),
			})

			_, err := New(srv.URL, WithToken("t")).CreateProblem(
				context.Background(),
				&models.ProblemInput{Title: "x"},
			)

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %v", err)
			}

			if apiErr.Status != tc.status || err.Error() != tc.want {
				t.Fatalf("expected %d %q, got %d %q", tc.status, tc.want, apiErr.Status, err.Error())
			}
		})
	}
}

func TestNoContent(t *testing.T) {
	srv := newServer(t, map[string]http.HandlerFunc{
		"DELETE /questions/7": reply(http.StatusNoContent, ""),
	})

	if err := New(srv.URL, WithToken("t")).DeleteProblem(context.Background(), "7"); err != nil {
		t.Fatal(err)
	}
}

func TestLogRevision(t *testing.T) {
	srv := newServer(t, map[string]http.HandlerFunc{
		"POST /revisions": reply(http.StatusCreated, `{"ID": 9, "QuestionID": 7, "TimeTaken": 15}`),
	})

	rev, err := New(srv.URL, WithToken("t")).LogRevision(context.Background(), "7", 15)
	if err != nil {
		t.Fatal(err)
	}

	if rev.ID != "9" || rev.TimeTaken != 15 {
		t.Fatalf("unexpected revision: %+v", rev)
	}

	if got := srv.got()[0].Body; got != `{"questionID":7,"timeTaken":15}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestRevisionHistory(t *testing.T) {
	srv := newServer(t, map[string]http.HandlerFunc{
		"GET /questions/7/revisions": reply(http.StatusOK, `[
			{"ID": 1, "QuestionID": 7, "TimeTaken": "20", "CreatedAt": "2024-06-01T10:00:00Z"}
		]`),
	})

	revs, err := New(srv.URL, WithToken("t")).RevisionHistory(context.Background(), "7")
	if err != nil {
		t.Fatal(err)
	}

	want := []models.Revision{{
		ID: "1", QuestionID: "7", TimeTaken: 20,
		CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}}

	if diff := cmp.Diff(want, revs); diff != "" {
		t.Fatalf("RevisionHistory() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordFirstSolve(t *testing.T) {
	srv := newServer(t, map[string]http.HandlerFunc{
		"PUT /questions/4": reply(http.StatusOK, `{"ID": 4, "TimeTaken": 25}`),
		"POST /revisions":  reply(http.StatusInternalServerError, `{"message": "db down"}`),
	})

	err := New(srv.URL, WithToken("t")).RecordFirstSolve(context.Background(), "4", 25)
	if err == nil || !IsStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected revision failure to surface, got %v", err)
	}

	if len(srv.got()) != 2 {
		t.Fatalf("expected both calls to be made, got %d", len(srv.got()))
	}

	for _, r := range srv.got() {
		if r.Method == http.MethodPut && r.Body != `{"TimeTaken":25}` {
			t.Fatalf("unexpected patch body: %s", r.Body)
		}
	}
}

func TestLogin(t *testing.T) {
	srv := newServer(t, map[string]http.HandlerFunc{
		"POST /auth/login": reply(http.StatusOK, `{"token": "abc"}`),
	})

	c := New(srv.URL)

	token, err := c.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatal(err)
	}

	if token != "abc" || c.Token() != "abc" {
		t.Fatalf("expected token abc, got %q", token)
	}

	if srv.got()[0].Auth != "" {
		t.Fatal("expected login to be sent without a token")
	}
}

func TestNeedsVerification(t *testing.T) {
	srv := newServer(t, map[string]http.HandlerFunc{
		"POST /auth/login": reply(http.StatusForbidden, `{"error": {"message": "Please verify your email first"}}`),
	})

	_, err := New(srv.URL).Login(context.Background(), "a@b.c", "pw")
	if !NeedsVerification(err) {
		t.Fatalf("expected verification error, got %v", err)
	}
}

func TestForgotPasswordToleratesNotFound(t *testing.T) {
	srv := newServer(t, nil)

	if err := New(srv.URL).ForgotPassword(context.Background(), "who@x.y"); err != nil {
		t.Fatalf("expected 404 to be tolerated, got %v", err)
	}

	if got := srv.got()[0].Body; got != `{"email":"who@x.y"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestResetPassword(t *testing.T) {
	srv := newServer(t, map[string]http.HandlerFunc{
		"POST /users/reset-password": reply(http.StatusOK, `{}`),
	})

	if err := New(srv.URL).ResetPassword(context.Background(), "tok", "new"); err != nil {
		t.Fatal(err)
	}

	if got := srv.got()[0].Body; got != `{"newPassword":"new","token":"tok"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestParseToken(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "ada",
		"email":    "ada@example.com",
		"id":       float64(42),
		"exp":      exp.Unix(),
	}).SignedString([]byte("key"))
	if err != nil {
		t.Fatal(err)
	}

	u, err := ParseToken(signed)
	if err != nil {
		t.Fatal(err)
	}

	want := models.User{
		Username:  "ada",
		Email:     "ada@example.com",
		ID:        "42",
		ExpiresAt: exp,
	}

	if diff := cmp.Diff(want, u); diff != "" {
		t.Fatalf("ParseToken() mismatch (-want +got):\n%s", diff)
	}

	if Expired(&u, exp.Add(-time.Hour)) || !Expired(&u, exp) {
		t.Fatal("unexpected expiry result")
	}

	if _, err := ParseToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
