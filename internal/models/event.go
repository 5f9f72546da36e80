package models

// GateStatus is the event's own single-approver approval state. It is a
// separate state machine from the RACI decision consensus and shares no
// mutable state with it.
type GateStatus string

const (
	GateStatusNotSubmitted GateStatus = "NOT_SUBMITTED"
	GateStatusPending      GateStatus = "PENDING"
	GateStatusApproved     GateStatus = "APPROVED"
	GateStatusRejected     GateStatus = "REJECTED"
)

// TaskStatus lists task lifecycle statuses
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// Event represents the WF_EVENT table
type Event struct {
	EventID          string     `db:"EVENT_ID" json:"eventId"`
	EventName        string     `db:"EVENT_NAME" json:"eventName"`
	DepartmentID     string     `db:"DEPARTMENT_ID" json:"departmentId"`
	HodID            string     `db:"HOD_ID" json:"hodId"`
	ApprovalStatus   GateStatus `db:"APPROVAL_STATUS" json:"approvalStatus"`
	ApproverID       *string    `db:"APPROVER_ID" json:"approverId,omitempty"`
	ApprovalComments *string    `db:"APPROVAL_COMMENTS" json:"approvalComments,omitempty"`
	DecidedTime      *int64     `db:"DECIDED_TIME" json:"decidedTime,omitempty"`
	CreatedTime      int64      `db:"CREATED_TIME" json:"createdTime"`
	UpdatedTime      int64      `db:"UPDATED_TIME" json:"updatedTime"`
	CompanyID        string     `db:"COMPANY_ID" json:"companyId"`
}

// Task represents the WF_TASK table
type Task struct {
	TaskID      string     `db:"TASK_ID" json:"taskId"`
	EventID     string     `db:"EVENT_ID" json:"eventId"`
	TaskName    string     `db:"TASK_NAME" json:"taskName"`
	Description *string    `db:"DESCRIPTION" json:"description,omitempty"`
	TaskStatus  TaskStatus `db:"TASK_STATUS" json:"taskStatus"`
	CreatedTime int64      `db:"CREATED_TIME" json:"createdTime"`
	UpdatedTime int64      `db:"UPDATED_TIME" json:"updatedTime"`
	CompanyID   string     `db:"COMPANY_ID" json:"companyId"`
}

// SubmitEventRequest is the payload for submitting an event for gate approval.
// When approverId is absent the event's department head is assigned.
type SubmitEventRequest struct {
	ApproverID string `json:"approverId,omitempty"`
}

// GateDecisionRequest is the payload for the one-shot gate decision
type GateDecisionRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Comments string `json:"comments,omitempty"`
}
