package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

type MatchCompletedEvent struct {
	Type           string  `json:"type"`
	RequestID      string  `json:"request_id"`
	JobTitle       string  `json:"job_title"`
	CandidateCount int     `json:"candidate_count"`
	TopScore       float64 `json:"top_score"`
	Timestamp      string  `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyMatchCompleted is a no-op until a hub is installed, so usecases can
// call it unconditionally (tests included).
func NotifyMatchCompleted(requestID, jobTitle string, candidateCount int, topScore float64) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := MatchCompletedEvent{
		Type:           "match_completed",
		RequestID:      requestID,
		JobTitle:       jobTitle,
		CandidateCount: candidateCount,
		TopScore:       topScore,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
