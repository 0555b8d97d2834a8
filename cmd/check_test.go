package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/KasumiMercury/wake-walk-alert/internal/config"
	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/alert"
)

func init() {
	color.NoColor = true
	gin.SetMode(gin.TestMode)
}

func TestPrintResult(t *testing.T) {
	tests := []struct {
		name     string
		result   *alert.Result
		contains []string
		absent   []string
	}{
		{
			name: "alert sent",
			result: &alert.Result{
				State:      domain.CheckStateAlertSent,
				WakeTime:   time.Date(2025, 1, 15, 22, 0, 0, 0, time.UTC),
				TotalSteps: 320,
				Threshold:  1000,
				Window:     30 * time.Minute,
			},
			contains: []string{"alert_sent", "2025-01-15 22:00 UTC", "320 / 1000", "起床後30分以内の歩数が 320 歩です"},
		},
		{
			name: "malformed and outside points reported apart",
			result: &alert.Result{
				State:         domain.CheckStateNoAlertNeeded,
				WakeTime:      time.Date(2025, 1, 15, 22, 0, 0, 0, time.UTC),
				TotalSteps:    1200,
				Threshold:     1000,
				CountedPoints: 4,
				SkippedPoints: 1,
				OutsidePoints: 3,
			},
			contains: []string{"4 points, 1 malformed, 3 outside window"},
		},
		{
			name:     "no wake found",
			result:   &alert.Result{State: domain.CheckStateNoWakeFound, SegmentCount: 2},
			contains: []string{"no_wake_found", "2 merged, 0 qualifying"},
			absent:   []string{"wake time:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printResult(&buf, tt.result)

			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(out, unwanted) {
					t.Errorf("output contains %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestWebhookLimit(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.WebhookConfig
		wantCodes []int
	}{
		{
			name:      "disabled",
			cfg:       &config.WebhookConfig{RatePerMinute: 0},
			wantCodes: []int{http.StatusOK, http.StatusOK, http.StatusOK},
		},
		{
			name:      "burst of one",
			cfg:       &config.WebhookConfig{RatePerMinute: 1, Burst: 1},
			wantCodes: []int{http.StatusOK, http.StatusTooManyRequests},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/wake_alert", webhookLimit(tt.cfg), func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})

			for i, want := range tt.wantCodes {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wake_alert", nil))
				if w.Code != want {
					t.Errorf("request %d: got %d, want %d", i, w.Code, want)
				}
			}
		})
	}
}

func TestWebhookRate(t *testing.T) {
	tests := []struct {
		name      string
		perMinute int
		want      rate.Limit
	}{
		{name: "default", perMinute: 6, want: 0.1},
		{name: "one per second", perMinute: 60, want: 1},
		{name: "very large stays finite", perMinute: 1 << 40, want: rate.Limit(float64(1<<40) / 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := webhookRate(tt.perMinute)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got == rate.Inf {
				t.Errorf("got unlimited rate for %d per minute", tt.perMinute)
			}
		})
	}
}
