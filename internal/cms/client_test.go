package cms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kalam-platform/app-analytics/internal/analytics"
	"github.com/kalam-platform/app-analytics/internal/config"
	"github.com/kalam-platform/app-analytics/internal/models"
)

func testConfig(baseURL string) config.CMSConfig {
	return config.CMSConfig{
		BaseURL:         baseURL,
		Timeout:         2 * time.Second,
		MaxRetries:      3,
		BloggerPath:     "/blogs/my-submissions",
		WriterPath:      "/kalams/writer/{id}",
		VocalistPath:    "/kalams/vocalist/{id}",
		AdminBlogsPath:  "/blogs",
		AdminKalamsPath: "/kalams",
	}
}

func TestListContentRoutesByRole(t *testing.T) {
	var gotAuth atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/blogs/my-submissions", func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Write([]byte(`[{"id":1,"created_at":"2024-01-01"}]`))
	})
	mux.HandleFunc("/kalams/writer/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":2},{"id":3}]}`))
	})
	mux.HandleFunc("/kalams/vocalist/9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":4}]`))
	})
	mux.HandleFunc("/blogs", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1},{"id":5}]`))
	})
	mux.HandleFunc("/kalams", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":2}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	tests := []struct {
		role     models.Role
		userID   string
		want     int
		wantKind analytics.ContentKind
	}{
		{models.RoleBlogger, "", 1, analytics.KindBlog},
		{models.RoleWriter, "7", 2, analytics.KindKalam},
		{models.RoleVocalist, "9", 1, analytics.KindKalam},
		{models.RoleAdmin, "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			items, err := client.ListContent(context.Background(), tt.role, tt.userID, "tok")
			if err != nil {
				t.Fatalf("ListContent() error = %v", err)
			}
			if len(items) != tt.want {
				t.Fatalf("got %d items, want %d", len(items), tt.want)
			}
			if tt.wantKind != "" && items[0].Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", items[0].Kind, tt.wantKind)
			}
		})
	}

	if auth, _ := gotAuth.Load().(string); auth != "Bearer tok" {
		t.Errorf("Authorization = %q, want bearer token forwarded", auth)
	}
}

func TestListContentAdminKinds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/blogs", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1}]`))
	})
	mux.HandleFunc("/kalams", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	items, err := NewClient(testConfig(srv.URL)).ListContent(context.Background(), models.RoleAdmin, "", "")
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if items[0].Kind != analytics.KindBlog || items[1].Kind != analytics.KindKalam {
		t.Errorf("kinds = %q, %q", items[0].Kind, items[1].Kind)
	}
}

func TestListContentRequiresUserID(t *testing.T) {
	client := NewClient(testConfig("http://127.0.0.1:1"))
	for _, role := range []models.Role{models.RoleWriter, models.RoleVocalist} {
		if _, err := client.ListContent(context.Background(), role, " ", ""); !errors.Is(err, ErrUserIDRequired) {
			t.Errorf("%s: error = %v, want ErrUserIDRequired", role, err)
		}
	}
}

func TestListContentStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTeapot, ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewClient(testConfig(srv.URL)).ListContent(context.Background(), models.RoleBlogger, "", "")
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			var statusErr *StatusError
			if !errors.As(err, &statusErr) || statusErr.StatusCode != tt.status {
				t.Errorf("StatusError = %v", statusErr)
			}
			if n := atomic.LoadInt32(&calls); n != 1 {
				t.Errorf("4xx should not be retried, got %d calls", n)
			}
		})
	}
}

func TestListContentRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"id":1}]`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL)).WithBackoff(time.Millisecond)
	items, err := client.ListContent(context.Background(), models.RoleBlogger, "", "")
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items", len(items))
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestListContentGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL)).WithBackoff(time.Millisecond)
	_, err := client.ListContent(context.Background(), models.RoleBlogger, "", "")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestListContentStopsRetryingWhenContextEnds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(testConfig(srv.URL)).WithBackoff(time.Hour)
	start := time.Now()
	_, err := client.ListContent(ctx, models.RoleBlogger, "", "")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("retry wait ignored the context, took %v", elapsed)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestNewBackOff(t *testing.T) {
	bo := NewClient(testConfig("http://cms.local")).WithBackoff(40 * time.Millisecond).newBackOff()
	if bo.InitialInterval != 40*time.Millisecond || bo.Multiplier != 2 || bo.MaxInterval != 5*time.Second {
		t.Errorf("backoff = initial %v, multiplier %v, max %v", bo.InitialInterval, bo.Multiplier, bo.MaxInterval)
	}
}

func TestListContentInvalidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL)).ListContent(context.Background(), models.RoleBlogger, "", "")
	if !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("error = %v, want ErrInvalidPayload", err)
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if err := NewClient(testConfig(srv.URL)).Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v, 404 still means reachable", err)
	}

	srv.Close()
	if err := NewClient(testConfig(srv.URL)).Ping(context.Background()); err == nil {
		t.Error("Ping() on closed server should fail")
	}
}
