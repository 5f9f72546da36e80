package models

import "sort"

// DecisionStatus is the lifecycle status of a decision request and of the
// derived consensus. The literals are a closed enumeration; no other casing
// or spelling is ever persisted.
type DecisionStatus string

const (
	DecisionStatusPending  DecisionStatus = "PENDING"
	DecisionStatusApproved DecisionStatus = "APPROVED"
	DecisionStatusRejected DecisionStatus = "REJECTED"
)

// DecisionAction is the verb an approver submits
type DecisionAction string

const (
	ActionApprove DecisionAction = "approve"
	ActionReject  DecisionAction = "reject"
)

// DecisionRequest represents the WF_DECISION_REQUEST table: one approval
// obligation for one approver on one assignment at one level.
type DecisionRequest struct {
	RequestID      string         `db:"REQUEST_ID" json:"requestId"`
	AssignmentID   string         `db:"ASSIGNMENT_ID" json:"assignmentId"`
	ApprovalLevel  int            `db:"APPROVAL_LEVEL" json:"approvalLevel"`
	ApproverID     string         `db:"APPROVER_ID" json:"approverId"`
	RequestStatus  DecisionStatus `db:"REQUEST_STATUS" json:"status"`
	DecisionReason *string        `db:"DECISION_REASON" json:"reason,omitempty"`
	DecidedTime    *int64         `db:"DECIDED_TIME" json:"decidedTime,omitempty"`
	CreatedTime    int64          `db:"CREATED_TIME" json:"createdTime"`
	CompanyID      string         `db:"COMPANY_ID" json:"companyId"`
}

// ApproverAssignment names one approver and the level they rule at
type ApproverAssignment struct {
	UserID        string `json:"userId" binding:"required"`
	ApprovalLevel int    `json:"approvalLevel" binding:"required"`
}

// GenerateRequestsRequest is the payload for materializing decision requests
type GenerateRequestsRequest struct {
	Approvers []ApproverAssignment `json:"approvers" binding:"required"`
}

// RecordDecisionRequest is the payload for an approver's batch decision on an
// event. The approver identity comes from the caller context, not the body.
type RecordDecisionRequest struct {
	Action DecisionAction `json:"action" binding:"required"`
	Reason string         `json:"reason,omitempty"`
}

// LevelConsensus is the per-approval-level slice of a consensus result
type LevelConsensus struct {
	Level    int `json:"level"`
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Pending  int `json:"pending"`
}

// ConsensusResult is the derived, never persisted, overall state of an
// event's RACI matrix approval.
type ConsensusResult struct {
	EventID  string           `json:"eventId"`
	Overall  DecisionStatus   `json:"overall"`
	Total    int              `json:"total"`
	Approved int              `json:"approved"`
	Rejected int              `json:"rejected"`
	Pending  int              `json:"pending"`
	ByLevel  []LevelConsensus `json:"byLevel"`
}

// ComputeConsensus aggregates decision requests into a consensus result.
// A single rejection anywhere forces REJECTED regardless of other rows; only
// a non-empty, fully approved set yields APPROVED. An empty set is PENDING,
// indistinguishable from a matrix not yet submitted for approval.
func ComputeConsensus(eventID string, requests []DecisionRequest) ConsensusResult {
	result := ConsensusResult{
		EventID: eventID,
		Overall: DecisionStatusPending,
		Total:   len(requests),
		ByLevel: []LevelConsensus{},
	}

	byLevel := make(map[int]*LevelConsensus)
	for _, req := range requests {
		level, ok := byLevel[req.ApprovalLevel]
		if !ok {
			level = &LevelConsensus{Level: req.ApprovalLevel}
			byLevel[req.ApprovalLevel] = level
		}
		level.Total++

		switch req.RequestStatus {
		case DecisionStatusApproved:
			result.Approved++
			level.Approved++
		case DecisionStatusRejected:
			result.Rejected++
			level.Rejected++
		default:
			result.Pending++
			level.Pending++
		}
	}

	levels := make([]int, 0, len(byLevel))
	for l := range byLevel {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	for _, l := range levels {
		result.ByLevel = append(result.ByLevel, *byLevel[l])
	}

	switch {
	case result.Rejected > 0:
		result.Overall = DecisionStatusRejected
	case result.Total > 0 && result.Approved == result.Total:
		result.Overall = DecisionStatusApproved
	}

	return result
}

// DecisionListResponse is the audit listing of an event's decision requests
type DecisionListResponse struct {
	EventID string            `json:"eventId"`
	Total   int               `json:"total"`
	Data    []DecisionRequest `json:"data"`
}
