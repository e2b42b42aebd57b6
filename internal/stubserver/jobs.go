package stubserver

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sajilokaam/client-core/internal/core/domain"
)

// stubJob is the wire shape of a job on the stub board.
type stubJob struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget,omitempty"`
	BudgetType  string    `json:"budgetType,omitempty"`
	Deadline    string    `json:"deadline,omitempty"`
	Status      string    `json:"status"`
	ClientID    int64     `json:"clientId"`
	CategoryID  int64     `json:"categoryId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type createJobRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description" validate:"required"`
	Budget      float64 `json:"budget"      validate:"omitempty,gt=0"`
	BudgetType  string  `json:"budgetType"  validate:"omitempty,oneof=FIXED HOURLY"`
	Deadline    string  `json:"deadline"`
	CategoryID  int64   `json:"categoryId"`
}

// JobsHandler serves an in-memory jobs board: enough for the CLI and the
// find-work flow to have something real to list and post against.
type JobsHandler struct {
	mu     sync.RWMutex
	jobs   map[int64]stubJob
	nextID int64
}

func NewJobsHandler() *JobsHandler {
	return &JobsHandler{jobs: make(map[int64]stubJob), nextID: 1}
}

// List answers all jobs, optionally narrowed by clientId and status.
func (h *JobsHandler) List(c echo.Context) error {
	clientID, _ := strconv.ParseInt(c.QueryParam("clientId"), 10, 64)
	status := c.QueryParam("status")

	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]stubJob, 0, len(h.jobs))
	for _, job := range h.jobs {
		if clientID != 0 && job.ClientID != clientID {
			continue
		}
		if status != "" && job.Status != status {
			continue
		}
		out = append(out, job)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *JobsHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}

	h.mu.RLock()
	job, ok := h.jobs[id]
	h.mu.RUnlock()
	if !ok {
		return ErrJobNotFound
	}
	return c.JSON(http.StatusOK, job)
}

// Create posts a job owned by the authenticated client.
func (h *JobsHandler) Create(c echo.Context) error {
	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	clientID, _ := c.Get("user_id").(int64)

	h.mu.Lock()
	job := stubJob{
		ID:          h.nextID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		BudgetType:  req.BudgetType,
		Deadline:    req.Deadline,
		Status:      "OPEN",
		ClientID:    clientID,
		CategoryID:  req.CategoryID,
		CreatedAt:   time.Now().UTC(),
	}
	h.nextID++
	h.jobs[job.ID] = job
	h.mu.Unlock()

	return c.JSON(http.StatusCreated, job)
}

// rbacJobPosters limits job posting to accounts that can own jobs.
func rbacJobPosters() echo.MiddlewareFunc {
	return RBAC(domain.RoleClient, domain.RoleAdmin)
}
