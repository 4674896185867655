// Package models defines the core data structures for the TaskLane chatbot service.
//
// It includes the chat request/response contracts, the structured Command
// descriptor handed to the task executor, and shared API envelope types.
package models

import (
	"errors"
	"strings"
)

// Validation constants for input validation
const (
	// MaxMessageLength defines the maximum allowed length for an inbound chat message
	MaxMessageLength = 1000
)

// Error variables for better error handling and testability
var (
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrMessageTooLong = errors.New("message exceeds maximum length")
	ErrEmptyUserID    = errors.New("user_id cannot be empty")
)

// Role identifies the author of a conversation turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is a single message in the conversation history supplied
// by the caller. The engine only reads turns; it never mutates them.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Task is the read-only task view supplied by the caller per request.
// The engine uses it to disambiguate references and render summaries.
type Task struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

// SummaryBucket carries a single count inside the weekly summary.
type SummaryBucket struct {
	Count int `json:"count"`
}

// WeeklySummary is the caller-computed weekly insights payload.
type WeeklySummary struct {
	Completed    SummaryBucket `json:"completed"`
	HighPriority SummaryBucket `json:"high_priority"`
	Upcoming     SummaryBucket `json:"upcoming"`
	Overdue      SummaryBucket `json:"overdue"`
}

// TaskRef identifies the task a command operates on. TaskID is preferred;
// Title is the fallback when no ID is known.
type TaskRef struct {
	TaskID string `json:"task_id,omitempty"`
	Title  string `json:"title,omitempty"`
}

// Command intent values consumed by the task executor.
const (
	CommandAddTask    = "add_task"
	CommandUpdateTask = "update_task"
	CommandDeleteTask = "delete_task"
	CommandListTasks  = "list_tasks"
)

// ReadyConfidenceThreshold is the confidence level at or above which the
// caller executes a ready command.
const ReadyConfidenceThreshold = 0.8

// Command is the structured intent descriptor returned alongside a reply.
// Ready is a hard contract: it is never true unless every mandatory field
// for the intent is present and, for update/delete, the user confirmed in
// the immediately preceding turn.
type Command struct {
	Intent        string         `json:"intent"`
	Confidence    float64        `json:"confidence"`
	Fields        map[string]any `json:"fields,omitempty"`
	Ref           *TaskRef       `json:"ref,omitempty"`
	Filter        map[string]any `json:"filter,omitempty"`
	Ready         bool           `json:"ready"`
	MissingFields []string       `json:"missing_fields,omitempty"`
}

// Executable reports whether the caller should run this command.
func (c *Command) Executable() bool {
	return c != nil && c.Ready && c.Confidence >= ReadyConfidenceThreshold
}

// ChatRequest is the inbound payload for POST /chat.
type ChatRequest struct {
	Message             string             `json:"message"`
	UserID              string             `json:"user_id"`
	Tasks               []Task             `json:"tasks,omitempty"`
	WeeklySummary       *WeeklySummary     `json:"weekly_summary,omitempty"`
	ConversationHistory []ConversationTurn `json:"conversation_history,omitempty"`
}

// Validate performs boundary validation on a ChatRequest. Requests that fail
// here are rejected before any engine logic runs.
func (r *ChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return ErrEmptyMessage
	}
	if len(r.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if strings.TrimSpace(r.UserID) == "" {
		return ErrEmptyUserID
	}
	return nil
}

// ChatResponse is the outbound payload for POST /chat.
type ChatResponse struct {
	Reply       string   `json:"reply"`
	Intent      string   `json:"intent,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Command     *Command `json:"command,omitempty"`
}

// Exchange is a processed chat exchange recorded in the store. It is an
// audit record for the insights aggregation, never session state: the
// engine does not read exchanges back.
type Exchange struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Message      string `json:"message"`
	Reply        string `json:"reply"`
	Intent       string `json:"intent,omitempty"`
	CommandReady bool   `json:"command_ready"`
	Time         int64  `json:"time"`
}
