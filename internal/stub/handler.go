package stub

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/fitness/v1"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

// Handler emulates the parts of the Google Fit, Google OAuth and Pushbullet
// APIs a wake alert check talks to.
type Handler struct {
	storage *Storage
}

func NewHandler(storage *Storage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/stub/reset", h.HandleReset)
	r.POST("/stub/seed", h.HandleSeed)
	r.GET("/stub/pushes", h.HandleListPushes)

	r.POST("/token", h.HandleToken)

	fit := r.Group("/fitness/v1/users/:user")
	fit.GET("/dataSources", h.HandleListDataSources)
	fit.GET("/dataSources/:stream/datasets/:dataset", h.HandleGetDataset)

	r.POST("/v2/pushes", h.HandlePush)
}

func (h *Handler) HandleReset(c *gin.Context) {
	h.storage.Reset()

	slog.Info("reset stub data")

	c.JSON(http.StatusOK, gin.H{"status": "reset complete"})
}

func (h *Handler) HandleSeed(c *gin.Context) {
	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, s := range req.Sleep {
		start, end, err := parseRange(s.StartTime, s.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		stage, ok := domain.ParseSleepStage(strings.ToLower(s.Stage))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stage: " + s.Stage})
			return
		}
		h.storage.AddSleep(start, end, stage)
	}

	pointCount := 0
	var stepTotal int64
	for _, s := range req.Steps {
		start, end, err := parseRange(s.StartTime, s.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pointCount += h.storage.AddSteps(start, end, s.Count)
		stepTotal += s.Count
	}

	slog.Info("seeded stub data",
		slog.Int("sleep_segments", len(req.Sleep)),
		slog.Int("step_points", pointCount),
		slog.Int64("step_total", stepTotal),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":         "seeded",
		"sleep_segments": len(req.Sleep),
		"step_points":    pointCount,
		"step_total":     stepTotal,
	})
}

func (h *Handler) HandleListPushes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pushes": h.storage.Pushes()})
}

func (h *Handler) HandleToken(c *gin.Context) {
	if c.PostForm("grant_type") != "refresh_token" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported_grant_type"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: "stub-access-token",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	})
}

func (h *Handler) HandleListDataSources(c *gin.Context) {
	c.JSON(http.StatusOK, &fitness.ListDataSourcesResponse{
		DataSource: []*fitness.DataSource{
			{DataStreamId: StepStreamID, Type: "derived"},
			{DataStreamId: SleepStreamID, Type: "derived"},
		},
	})
}

// HandleGetDataset serves GET .../dataSources/:stream/datasets/<startNanos>-<endNanos>.
func (h *Handler) HandleGetDataset(c *gin.Context) {
	stream := c.Param("stream")

	start, end, err := parseDatasetID(c.Param("dataset"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset := &fitness.Dataset{
		DataSourceId:   stream,
		MinStartTimeNs: start.UnixNano(),
		MaxEndTimeNs:   end.UnixNano(),
	}

	switch stream {
	case SleepStreamID:
		for _, seg := range h.storage.SleepInRange(start, end) {
			dataset.Point = append(dataset.Point, &fitness.DataPoint{
				DataTypeName:   "com.google.sleep.segment",
				StartTimeNanos: seg.start.UnixNano(),
				EndTimeNanos:   seg.end.UnixNano(),
				Value:          []*fitness.Value{{IntVal: int64(seg.stage)}},
			})
		}
	case StepStreamID:
		for _, p := range h.storage.StepsInRange(start, end) {
			dataset.Point = append(dataset.Point, &fitness.DataPoint{
				DataTypeName:   "com.google.step_count.delta",
				StartTimeNanos: p.start.UnixNano(),
				EndTimeNanos:   p.end.UnixNano(),
				Value:          []*fitness.Value{{IntVal: p.count}},
			})
		}
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown data source: " + stream})
		return
	}

	slog.Debug("served dataset",
		slog.String("stream", stream),
		slog.Time("start", start),
		slog.Time("end", end),
		slog.Int("points", len(dataset.Point)),
	)

	c.JSON(http.StatusOK, dataset)
}

func (h *Handler) HandlePush(c *gin.Context) {
	token := c.GetHeader("Access-Token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
			"code":    "invalid_access_token",
			"type":    "invalid_request",
			"message": "Access token is missing or invalid.",
		}})
		return
	}

	var push Push
	if err := c.ShouldBindJSON(&push); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}
	push.Token = token
	push.ReceivedAt = time.Now()

	h.storage.AddPush(push)

	slog.Info("push received",
		slog.String("title", push.Title),
		slog.String("body", push.Body),
	)

	c.JSON(http.StatusOK, gin.H{
		"iden":    fmt.Sprintf("stub-%d", push.ReceivedAt.UnixNano()),
		"created": float64(push.ReceivedAt.UnixNano()) / 1e9,
		"type":    push.Type,
	})
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_time: %s", startStr)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_time: %s", endStr)
	}
	return start, end, nil
}

func parseDatasetID(id string) (time.Time, time.Time, error) {
	startStr, endStr, ok := strings.Cut(id, "-")
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid dataset id: %s", id)
	}
	startNanos, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid dataset start: %s", startStr)
	}
	endNanos, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid dataset end: %s", endStr)
	}
	return time.Unix(0, startNanos), time.Unix(0, endNanos), nil
}
