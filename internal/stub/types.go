package stub

import "time"

const (
	StepStreamID  = "derived:com.google.step_count.delta:com.google.android.gms:estimated_steps"
	SleepStreamID = "derived:com.google.sleep.segment:com.google.android.gms:merged"
)

type SeedRequest struct {
	Sleep []SeedSleep `json:"sleep"`
	Steps []SeedSteps `json:"steps"`
}

type SeedSleep struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	// Stage is a Google Fit sleep stage name or number, e.g. "deep" or "5".
	Stage string `json:"stage"`
}

// SeedSteps spreads Count steps evenly over one-minute points.
type SeedSteps struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Count     int64  `json:"count"`
}

type Push struct {
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Token      string    `json:"-"`
	ReceivedAt time.Time `json:"received_at"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
