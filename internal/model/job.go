package model

import "time"

// Job is a job-board posting, persisted under the "jobs" key.
type Job struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	PostedAt    time.Time `json:"postedAt"`
}
