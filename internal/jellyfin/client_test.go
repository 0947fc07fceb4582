package jellyfin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		params map[string]string
		want   string
	}{
		{
			name:   "no params",
			path:   "/System/Info",
			params: nil,
			want:   "/System/Info",
		},
		{
			name:   "empty params",
			path:   "/System/Info",
			params: map[string]string{},
			want:   "/System/Info",
		},
		{
			name:   "single param",
			path:   "/Users/u1/Items",
			params: map[string]string{"ParentId": "p1"},
			want:   "/Users/u1/Items?ParentId=p1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildURL(tt.path, tt.params); got != tt.want {
				t.Errorf("BuildURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError(t *testing.T) {
	err := &APIError{Status: 401, Body: "Invalid token"}

	want := "jellyfin API error 401: Unauthorized"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !IsUnauthorized(err) {
		t.Error("IsUnauthorized() = false, want true")
	}
	if err.IsNotFound() {
		t.Error("IsNotFound() = true, want false")
	}
}

func TestRequestSetsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok123", "user1", "dev1")
	if err := c.Get(context.Background(), "/System/Info", nil); err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	for _, part := range []string{`Token="tok123"`, `DeviceId="dev1"`, `Client="reel"`} {
		if !strings.Contains(gotAuth, part) {
			t.Errorf("Authorization header %q missing %q", gotAuth, part)
		}
	}
}

func TestRequestDoesNotRetry4xx(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", "u", "d")
	err := c.Get(context.Background(), "/Users/u/Items/missing", nil)

	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1 (no retry on 4xx)", calls)
	}
	apiErr, ok := err.(*APIError)
	if !ok || !apiErr.IsNotFound() {
		t.Errorf("error = %v, want *APIError 404", err)
	}
}

func TestRequestRetries5xx(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"Id":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", "u", "d")
	var item BaseItem
	if err := c.Get(context.Background(), "/Users/u/Items/x", &item); err != nil {
		t.Fatalf("Get() error after retries: %v", err)
	}
	if calls != 3 {
		t.Errorf("server called %d times, want 3", calls)
	}
	if item.ID != "ok" {
		t.Errorf("item.ID = %q, want %q", item.ID, "ok")
	}
}

func TestVideoStreamURL(t *testing.T) {
	c := New("https://h", "key1", "u1", "dev1")
	got := c.VideoStreamURL("src9", "mkv", "etag7")

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if u.Path != "/Videos/src9/stream.mkv" {
		t.Errorf("path = %q, want /Videos/src9/stream.mkv", u.Path)
	}

	q := u.Query()
	want := map[string]string{
		"Static":        "true",
		"tag":           "etag7",
		"mediaSourceId": "src9",
		"deviceId":      "dev1",
		"api_key":       "key1",
	}
	for k, v := range want {
		if q.Get(k) != v {
			t.Errorf("query %s = %q, want %q", k, q.Get(k), v)
		}
	}
	if len(q) != len(want) {
		t.Errorf("query has %d params, want %d", len(q), len(want))
	}
}

func TestAudioStreamURL(t *testing.T) {
	c := New("https://h", "key1", "u1", "dev1")
	got := c.AudioStreamURL("item3")

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if u.Path != "/Audio/item3/universal" {
		t.Errorf("path = %q, want /Audio/item3/universal", u.Path)
	}

	q := u.Query()
	if q.Get("userId") != "u1" || q.Get("deviceId") != "dev1" {
		t.Errorf("query = %v, want userId=u1 deviceId=dev1", q)
	}
	if len(q) != 2 {
		t.Errorf("query has %d params, want 2", len(q))
	}
}

func TestTranscodeURL(t *testing.T) {
	c := New("https://h", "k", "u", "d")
	got := c.TranscodeURL("/videos/123/master.m3u8")

	if got != "https://h/videos/123/master.m3u8" {
		t.Errorf("TranscodeURL() = %q, want %q", got, "https://h/videos/123/master.m3u8")
	}
}
