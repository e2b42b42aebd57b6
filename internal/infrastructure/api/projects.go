package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Project is an accepted bid turned into tracked work.
type Project struct {
	ID           int64     `json:"id"`
	JobID        int64     `json:"jobId"`
	ClientID     int64     `json:"clientId"`
	FreelancerID int64     `json:"freelancerId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Budget       float64   `json:"budget"`
	Deadline     string    `json:"deadline,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Task is a unit of work inside a project.
type Task struct {
	ID             int64  `json:"id"`
	ProjectID      int64  `json:"projectId"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Status         string `json:"status"`
	Priority       string `json:"priority,omitempty"`
	DueDate        string `json:"dueDate,omitempty"`
	MilestoneID    int64  `json:"milestoneId,omitempty"`
	AssigneeID     int64  `json:"assigneeId,omitempty"`
	EstimatedHours int    `json:"estimatedHours,omitempty"`
}

// Milestone groups tasks toward a delivery date.
type Milestone struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectId"`
	Title     string `json:"title"`
	DueDate   string `json:"dueDate,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Message is one entry of a project conversation.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	SenderID       int64     `json:"senderId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ProjectFilter narrows a listing; zero values mean "any".
type ProjectFilter struct {
	ClientID     int64
	FreelancerID int64
	Status       string
}

// TaskDraft is the payload for creating a project task.
type TaskDraft struct {
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Status         string `json:"status,omitempty"`
	Priority       string `json:"priority,omitempty"`
	DueDate        string `json:"dueDate,omitempty"`
	MilestoneID    int64  `json:"milestoneId,omitempty"`
	AssigneeID     int64  `json:"assigneeId,omitempty"`
	EstimatedHours int    `json:"estimatedHours,omitempty"`
}

// MessageDraft is the payload for sending a conversation message.
type MessageDraft struct {
	Content       string  `json:"content,omitempty"`
	RichContent   string  `json:"richContent,omitempty"`
	AttachmentIDs []int64 `json:"attachmentIds,omitempty"`
}

// ProjectsAPI talks to the /projects endpoints and the conversation endpoints
// hanging off them.
type ProjectsAPI struct {
	c *Client
}

func NewProjectsAPI(c *Client) *ProjectsAPI {
	return &ProjectsAPI{c: c}
}

func (p *ProjectsAPI) List(ctx context.Context, f ProjectFilter) ([]Project, error) {
	q := url.Values{}
	if f.ClientID != 0 {
		q.Set("clientId", strconv.FormatInt(f.ClientID, 10))
	}
	if f.FreelancerID != 0 {
		q.Set("freelancerId", strconv.FormatInt(f.FreelancerID, 10))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}

	var out []Project
	err := p.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "projects_list",
		path:     "/projects",
		query:    q,
		out:      &out,
	})
	return out, err
}

func (p *ProjectsAPI) Get(ctx context.Context, id int64) (*Project, error) {
	var out Project
	err := p.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "projects_get",
		path:     fmt.Sprintf("/projects/%d", id),
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptBid converts an accepted bid into a project.
func (p *ProjectsAPI) AcceptBid(ctx context.Context, bidID int64, title, description string) (*Project, error) {
	body := map[string]string{"title": title}
	if description != "" {
		body["description"] = description
	}

	var out Project
	err := p.c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "projects_accept_bid",
		path:     fmt.Sprintf("/projects/accept-bid/%d", bidID),
		body:     body,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) Tasks(ctx context.Context, projectID int64) ([]Task, error) {
	var out []Task
	err := p.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "projects_tasks",
		path:     fmt.Sprintf("/projects/%d/tasks", projectID),
		out:      &out,
	})
	return out, err
}

func (p *ProjectsAPI) CreateTask(ctx context.Context, projectID int64, draft TaskDraft) (*Task, error) {
	var out Task
	err := p.c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "projects_create_task",
		path:     fmt.Sprintf("/projects/%d/tasks", projectID),
		body:     draft,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) UpdateTaskStatus(ctx context.Context, projectID, taskID int64, status string) error {
	return p.c.do(ctx, call{
		method:   http.MethodPatch,
		endpoint: "projects_update_task_status",
		path:     fmt.Sprintf("/projects/%d/tasks/%d/status", projectID, taskID),
		body:     map[string]string{"status": status},
	})
}

func (p *ProjectsAPI) Milestones(ctx context.Context, projectID int64) ([]Milestone, error) {
	var out []Milestone
	err := p.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "projects_milestones",
		path:     fmt.Sprintf("/projects/%d/milestones", projectID),
		out:      &out,
	})
	return out, err
}

func (p *ProjectsAPI) Messages(ctx context.Context, conversationID int64, page, size int) ([]Message, error) {
	if size <= 0 {
		size = 50
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var out []Message
	err := p.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "conversations_messages",
		path:     fmt.Sprintf("/conversations/%d/messages", conversationID),
		query:    q,
		out:      &out,
	})
	return out, err
}

func (p *ProjectsAPI) SendMessage(ctx context.Context, conversationID int64, draft MessageDraft) (*Message, error) {
	var out Message
	err := p.c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "conversations_send_message",
		path:     fmt.Sprintf("/conversations/%d/messages", conversationID),
		body:     draft,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
