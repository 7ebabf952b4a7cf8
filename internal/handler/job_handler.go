package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-storefront-kv/internal/repository"
)

type JobHandler struct {
	jobs repository.JobRepository
}

func NewJobHandler(jobs repository.JobRepository) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// GetJobs lists the job-board postings
// GET /api/v1/jobs
func (h *JobHandler) GetJobs(c *fiber.Ctx) error {
	jobs, err := h.jobs.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(jobs)
}
