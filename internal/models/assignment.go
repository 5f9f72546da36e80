package models

import (
	"encoding/json"
	"strings"

	"github.com/orgflow/raci-management-api/pkg/utils"
)

// RACIRole classifies a user's responsibility on a task
type RACIRole string

const (
	RoleResponsible RACIRole = "R"
	RoleAccountable RACIRole = "A"
	RoleConsulted   RACIRole = "C"
	RoleInformed    RACIRole = "I"
)

// IsValid reports whether the role is one of the four RACI roles
func (r RACIRole) IsValid() bool {
	switch r {
	case RoleResponsible, RoleAccountable, RoleConsulted, RoleInformed:
		return true
	}
	return false
}

// Assignment represents the WF_RACI_ASSIGNMENT table: one (task, role, user)
// RACI row, optionally bearing a financial approval ceiling and a level.
type Assignment struct {
	AssignmentID      string   `db:"ASSIGNMENT_ID" json:"assignmentId"`
	TaskID            string   `db:"TASK_ID" json:"taskId"`
	RACIRole          RACIRole `db:"RACI_ROLE" json:"role"`
	UserID            string   `db:"USER_ID" json:"userId"`
	ApprovalLevel     int      `db:"APPROVAL_LEVEL" json:"approvalLevel"`
	FinancialLimitMin *float64 `db:"FINANCIAL_LIMIT_MIN" json:"financialLimitMin,omitempty"`
	FinancialLimitMax *float64 `db:"FINANCIAL_LIMIT_MAX" json:"financialLimitMax,omitempty"`
	CreatedTime       int64    `db:"CREATED_TIME" json:"createdTime"`
	CompanyID         string   `db:"COMPANY_ID" json:"companyId"`
}

// FinancialLimit carries a raw financial ceiling value from the API. Upstream
// forms send these inconsistently as JSON numbers or strings, so both are
// accepted and kept as raw text until coercion.
type FinancialLimit string

// UnmarshalJSON accepts a JSON number or string
func (f *FinancialLimit) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = FinancialLimit(asString)
		return nil
	}
	*f = FinancialLimit(strings.TrimSpace(string(data)))
	return nil
}

// MarshalJSON renders the raw text back out
func (f FinancialLimit) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// Float coerces the raw value through standard float parsing. Non-numeric
// values degrade to nil rather than failing the surrounding operation.
func (f *FinancialLimit) Float() *float64 {
	if f == nil {
		return nil
	}
	raw := string(*f)
	return utils.ParseFinancialLimit(&raw)
}

// RosterEntry is one user listed under a RACI role in a roster replacement
type RosterEntry struct {
	UserID            string          `json:"userId" binding:"required"`
	ApprovalLevel     *int            `json:"approvalLevel,omitempty"`
	FinancialLimitMin *FinancialLimit `json:"financialLimitMin,omitempty"`
	FinancialLimitMax *FinancialLimit `json:"financialLimitMax,omitempty"`
}

// TaskRosterRequest is the full replacement roster for one task: four lists,
// one per RACI role. The previous generation of assignment rows for the task
// is discarded before these are inserted.
type TaskRosterRequest struct {
	Responsible []RosterEntry `json:"responsible"`
	Accountable []RosterEntry `json:"accountable"`
	Consulted   []RosterEntry `json:"consulted"`
	Informed    []RosterEntry `json:"informed"`
}

// IsEmpty reports whether the roster lists no users at all
func (r *TaskRosterRequest) IsEmpty() bool {
	return len(r.Responsible) == 0 && len(r.Accountable) == 0 &&
		len(r.Consulted) == 0 && len(r.Informed) == 0
}

// ByRole returns the roster entries keyed by RACI role, in fixed R/A/C/I order
func (r *TaskRosterRequest) ByRole() []struct {
	Role    RACIRole
	Entries []RosterEntry
} {
	return []struct {
		Role    RACIRole
		Entries []RosterEntry
	}{
		{RoleResponsible, r.Responsible},
		{RoleAccountable, r.Accountable},
		{RoleConsulted, r.Consulted},
		{RoleInformed, r.Informed},
	}
}

// TaskRosterItem pairs a task with its replacement roster in an event batch
type TaskRosterItem struct {
	TaskID string            `json:"taskId" binding:"required"`
	Roster TaskRosterRequest `json:"roster"`
}

// EventRosterRequest replaces the rosters of several tasks in one unit of work
type EventRosterRequest struct {
	Tasks []TaskRosterItem `json:"tasks" binding:"required"`
}

// TaskMatrixResponse is one task's slice of the event RACI matrix
type TaskMatrixResponse struct {
	TaskID      string       `json:"taskId"`
	TaskName    string       `json:"taskName"`
	TaskStatus  TaskStatus   `json:"taskStatus"`
	Assignments []Assignment `json:"assignments"`
}

// EventMatrixResponse is the full RACI matrix of an event
type EventMatrixResponse struct {
	EventID string               `json:"eventId"`
	Total   int                  `json:"total"`
	Tasks   []TaskMatrixResponse `json:"tasks"`
}
