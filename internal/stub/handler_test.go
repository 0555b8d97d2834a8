package stub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
	"github.com/KasumiMercury/wake-walk-alert/internal/infra/googlefit"
	"github.com/KasumiMercury/wake-walk-alert/internal/infra/pushbullet"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/alert"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/steps"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/wake"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newStubServer(t *testing.T) (*httptest.Server, *Storage) {
	t.Helper()

	storage := NewStorage()
	r := gin.New()
	NewHandler(storage).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv, storage
}

func seed(t *testing.T, srvURL string, req SeedRequest) {
	t.Helper()

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal seed: %v", err)
	}
	resp, err := http.Post(srvURL+"/stub/seed", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("seed request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("seed status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestStorage_AddSteps(t *testing.T) {
	start := time.Date(2025, 1, 16, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		end        time.Time
		count      int64
		wantPoints int
	}{
		{name: "even split", end: start.Add(10 * time.Minute), count: 100, wantPoints: 10},
		{name: "remainder", end: start.Add(3 * time.Minute), count: 10, wantPoints: 3},
		{name: "shorter than a minute", end: start.Add(30 * time.Second), count: 7, wantPoints: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStorage()
			if got := s.AddSteps(start, tt.end, tt.count); got != tt.wantPoints {
				t.Errorf("points: got %d, want %d", got, tt.wantPoints)
			}

			var total int64
			for _, p := range s.StepsInRange(start, start.Add(time.Hour)) {
				total += p.count
			}
			if total != tt.count {
				t.Errorf("total: got %d, want %d", total, tt.count)
			}
		})
	}
}

func TestParseDatasetID(t *testing.T) {
	start := time.Unix(1700000000, 0)
	end := start.Add(30 * time.Minute)

	gotStart, gotEnd, err := parseDatasetID(googlefit.DatasetID(start, end))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotStart.Equal(start) || !gotEnd.Equal(end) {
		t.Errorf("got %v-%v, want %v-%v", gotStart, gotEnd, start, end)
	}

	for _, bad := range []string{"", "123", "a-1", "1-b"} {
		if _, _, err := parseDatasetID(bad); err == nil {
			t.Errorf("parseDatasetID(%q): expected error", bad)
		}
	}
}

func TestHandleSeed_Invalid(t *testing.T) {
	srv, _ := newStubServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "bad json", body: `{"sleep":`},
		{name: "bad time", body: `{"sleep":[{"start_time":"yesterday","end_time":"2025-01-16T07:00:00Z","stage":"deep"}]}`},
		{name: "bad stage", body: `{"sleep":[{"start_time":"2025-01-16T06:00:00Z","end_time":"2025-01-16T07:00:00Z","stage":"dreaming"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/stub/seed", "application/json", bytes.NewReader([]byte(tt.body)))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
		})
	}
}

func TestHandlePush_RequiresToken(t *testing.T) {
	srv, storage := newStubServer(t)

	resp, err := http.Post(srv.URL+"/v2/pushes", "application/json", bytes.NewReader([]byte(`{"type":"note"}`)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if len(storage.Pushes()) != 0 {
		t.Errorf("pushes: got %d, want 0", len(storage.Pushes()))
	}
}

// TestWakeAlertCheckAgainstStub drives a full check through the real Google
// Fit and Pushbullet clients.
func TestWakeAlertCheckAgainstStub(t *testing.T) {
	now := time.Date(2025, 1, 16, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		seed       SeedRequest
		wantState  domain.CheckState
		wantSteps  int64
		wantPushes int
	}{
		{
			name: "too few steps after waking",
			seed: SeedRequest{
				Sleep: []SeedSleep{
					{StartTime: "2025-01-15T22:00:00Z", EndTime: "2025-01-16T02:00:00Z", Stage: "light"},
					{StartTime: "2025-01-16T02:05:00Z", EndTime: "2025-01-16T06:00:00Z", Stage: "deep"},
					{StartTime: "2025-01-16T06:00:00Z", EndTime: "2025-01-16T06:10:00Z", Stage: "awake"},
				},
				Steps: []SeedSteps{
					{StartTime: "2025-01-16T06:00:00Z", EndTime: "2025-01-16T06:30:00Z", Count: 300},
					{StartTime: "2025-01-16T06:30:00Z", EndTime: "2025-01-16T07:00:00Z", Count: 5000},
				},
			},
			wantState:  domain.CheckStateAlertSent,
			wantSteps:  300,
			wantPushes: 1,
		},
		{
			name: "enough steps",
			seed: SeedRequest{
				Sleep: []SeedSleep{
					{StartTime: "2025-01-15T23:00:00Z", EndTime: "2025-01-16T06:00:00Z", Stage: "sleep"},
				},
				Steps: []SeedSteps{
					{StartTime: "2025-01-16T06:00:00Z", EndTime: "2025-01-16T06:30:00Z", Count: 1200},
				},
			},
			wantState: domain.CheckStateNoAlertNeeded,
			wantSteps: 1200,
		},
		{
			name: "only short naps",
			seed: SeedRequest{
				Sleep: []SeedSleep{
					{StartTime: "2025-01-16T05:00:00Z", EndTime: "2025-01-16T05:20:00Z", Stage: "rem"},
				},
			},
			wantState: domain.CheckStateNoWakeFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, storage := newStubServer(t)
			seed(t, srv.URL, tt.seed)

			ctx := context.Background()
			fitClient, err := googlefit.NewClient(ctx, srv.Client(), googlefit.ClientConfig{
				Endpoint:         srv.URL + "/fitness/v1/users/",
				StepStreamMatch:  "derived:com.google.step_count.delta",
				SleepStreamMatch: "derived:com.google.sleep.segment",
			})
			if err != nil {
				t.Fatalf("failed to create fit client: %v", err)
			}

			svc := alert.NewService(
				fitClient,
				wake.NewAnalyzer(wake.Config{MergeGap: wake.DefaultMergeGap, MinSegment: wake.DefaultMinSegment}),
				steps.NewEvaluator(steps.Config{Window: steps.DefaultWindow, Threshold: steps.DefaultThreshold}),
				pushbullet.NewClient(pushbullet.Config{Token: "pb", BaseURL: srv.URL, Timeout: 5 * time.Second}),
				nil, nil, nil,
				alert.Config{},
			)

			result, err := svc.Run(ctx, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.State != tt.wantState {
				t.Errorf("State: got %s, want %s", result.State, tt.wantState)
			}
			if result.TotalSteps != tt.wantSteps {
				t.Errorf("TotalSteps: got %d, want %d", result.TotalSteps, tt.wantSteps)
			}

			pushes := storage.Pushes()
			if len(pushes) != tt.wantPushes {
				t.Fatalf("pushes: got %d, want %d", len(pushes), tt.wantPushes)
			}
			if tt.wantPushes > 0 {
				if pushes[0].Title != alert.AlertTitle {
					t.Errorf("push title: got %q, want %q", pushes[0].Title, alert.AlertTitle)
				}
				wantBody := fmt.Sprintf("起床後30分以内の歩数が %d 歩です。もっと動こう！", tt.wantSteps)
				if pushes[0].Body != wantBody {
					t.Errorf("push body: got %q, want %q", pushes[0].Body, wantBody)
				}
			}
		})
	}
}
