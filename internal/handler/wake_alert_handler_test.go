package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
	"github.com/KasumiMercury/wake-walk-alert/internal/infra/taskqueue"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/alert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRunner struct {
	result *alert.Result
	err    error
	calls  int
}

func (f *fakeRunner) Run(_ context.Context, _ time.Time) (*alert.Result, error) {
	f.calls++
	return f.result, f.err
}

func newRouter(h *WakeAlertHandler) *gin.Engine {
	r := gin.New()
	r.GET("/", h.HandleIndex)
	r.GET("/wake_alert", h.HandleWakeAlert)
	r.POST("/tasks/wake_alert", h.HandleCheckTask)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleIndex(t *testing.T) {
	h := NewWakeAlertHandler(&fakeRunner{}, nil)

	w := serve(newRouter(h), http.MethodGet, "/", "")

	if w.Code != http.StatusOK {
		t.Errorf("code: got %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != IndexMessage {
		t.Errorf("body: got %q, want %q", w.Body.String(), IndexMessage)
	}
}

func TestHandleWakeAlert_Enqueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := taskqueue.NewMockTaskQueue(ctrl)
	runner := &fakeRunner{}
	h := NewWakeAlertHandler(runner, queue)

	queue.EXPECT().EnqueueCheck(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, task *taskqueue.CheckTask) (*taskqueue.TaskResponse, error) {
			if task.TaskID == "" {
				t.Error("TaskID is empty")
			}
			if task.Trigger != taskqueue.TriggerWebhook {
				t.Errorf("Trigger: got %q, want %q", task.Trigger, taskqueue.TriggerWebhook)
			}
			return &taskqueue.TaskResponse{Name: "local/" + task.TaskID}, nil
		},
	)

	w := serve(newRouter(h), http.MethodGet, "/wake_alert", "")

	if w.Code != http.StatusOK {
		t.Errorf("code: got %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != AcceptedMessage {
		t.Errorf("body: got %q, want %q", w.Body.String(), AcceptedMessage)
	}
	if runner.calls != 0 {
		t.Errorf("runner calls: got %d, want 0", runner.calls)
	}
}

func TestHandleWakeAlert_EnqueueFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := taskqueue.NewMockTaskQueue(ctrl)
	h := NewWakeAlertHandler(&fakeRunner{}, queue)

	queue.EXPECT().EnqueueCheck(gomock.Any(), gomock.Any()).Return(nil, taskqueue.ErrQueueClosed)

	w := serve(newRouter(h), http.MethodGet, "/wake_alert", "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("code: got %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if w.Body.String() != InternalErrorString {
		t.Errorf("body: got %q, want %q", w.Body.String(), InternalErrorString)
	}
}

func TestHandleWakeAlert_Sync(t *testing.T) {
	tests := []struct {
		name     string
		runner   *fakeRunner
		wantCode int
		wantBody string
	}{
		{
			name: "alert sent",
			runner: &fakeRunner{result: &alert.Result{
				State: domain.CheckStateAlertSent, TotalSteps: 120, Window: 30 * time.Minute,
			}},
			wantCode: http.StatusOK,
			wantBody: "起床後30分以内の歩数が 120 歩です。もっと動こう！",
		},
		{
			name:     "threshold met",
			runner:   &fakeRunner{result: &alert.Result{State: domain.CheckStateNoAlertNeeded, TotalSteps: 1800}},
			wantCode: http.StatusOK,
			wantBody: "歩数OK: 1800 歩",
		},
		{
			name:     "failure hides details",
			runner:   &fakeRunner{err: errors.New("data source not found: derived:com.google.step_count.delta")},
			wantCode: http.StatusInternalServerError,
			wantBody: InternalErrorString,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			queue := taskqueue.NewMockTaskQueue(ctrl)
			queue.EXPECT().EnqueueCheck(gomock.Any(), gomock.Any()).Times(0)
			h := NewWakeAlertHandler(tt.runner, queue)

			w := serve(newRouter(h), http.MethodGet, "/wake_alert?sync=true", "")

			if w.Code != tt.wantCode {
				t.Errorf("code: got %d, want %d", w.Code, tt.wantCode)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("body: got %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandleCheckTask(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		runner    *fakeRunner
		wantCode  int
		wantCalls int
	}{
		{
			name:      "with payload",
			body:      `{"task_id":"abc","trigger":"webhook","requested_at":"2025-01-16T00:00:00Z"}`,
			runner:    &fakeRunner{result: &alert.Result{State: domain.CheckStateNoWakeFound}},
			wantCode:  http.StatusOK,
			wantCalls: 1,
		},
		{
			name:      "empty body",
			body:      "",
			runner:    &fakeRunner{result: &alert.Result{State: domain.CheckStateNoWakeFound}},
			wantCode:  http.StatusOK,
			wantCalls: 1,
		},
		{
			name:      "invalid payload",
			body:      `{"task_id":`,
			runner:    &fakeRunner{},
			wantCode:  http.StatusBadRequest,
			wantCalls: 0,
		},
		{
			name:      "check failure",
			body:      `{"task_id":"abc"}`,
			runner:    &fakeRunner{err: errors.New("boom")},
			wantCode:  http.StatusInternalServerError,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWakeAlertHandler(tt.runner, nil)

			w := serve(newRouter(h), http.MethodPost, "/tasks/wake_alert", tt.body)

			if w.Code != tt.wantCode {
				t.Errorf("code: got %d, want %d", w.Code, tt.wantCode)
			}
			if tt.runner.calls != tt.wantCalls {
				t.Errorf("runner calls: got %d, want %d", tt.runner.calls, tt.wantCalls)
			}
		})
	}
}
