package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// PendingRequestPrefix starts the sort key of every pending approval request.
	PendingRequestPrefix = "PENDING#"
	// PendingCounterKey is the sort key of a domain's pending counter row.
	PendingCounterKey = "itemsForApproval"
)

// NewRequestID returns the request id for an approval request created at t.
func NewRequestID(t time.Time) string {
	return PendingRequestPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// IsPendingRequestID reports whether id has the pending request shape.
func IsPendingRequestID(id string) bool {
	ms, ok := strings.CutPrefix(id, PendingRequestPrefix)
	if !ok || ms == "" {
		return false
	}
	_, err := strconv.ParseInt(ms, 10, 64)
	return err == nil
}

// ApprovalRequest is an outstanding request for an owner domain to approve
// sharing one of its resources with a target domain.
type ApprovalRequest struct {
	OwnerDomainID      string
	RequestID          string
	Mode               ApprovalMode
	ContinuationToken  string
	TargetDomainID     string
	SourceResourceKey  string
	ResourceMappingKey string
	InstanceID         uuid.UUID
	CreatedAt          time.Time
}

// PendingCounter is the number of live approval requests of a domain.
type PendingCounter struct {
	OwnerDomainID string
	PendingCount  int
}

// DecisionAction is a reviewer's verdict on an approval request.
type DecisionAction string

const (
	DecisionApprove DecisionAction = "approve"
	DecisionReject  DecisionAction = "reject"
)

func (a DecisionAction) String() string { return string(a) }

func (a DecisionAction) IsValid() bool {
	switch a {
	case DecisionApprove, DecisionReject:
		return true
	}
	return false
}

// ShareStatus is the sharing state of a resource with a target domain.
type ShareStatus string

const (
	ShareStatusPending  ShareStatus = "pending"
	ShareStatusShared   ShareStatus = "shared"
	ShareStatusRejected ShareStatus = "rejected"
)

func (s ShareStatus) String() string { return string(s) }

func (s ShareStatus) IsValid() bool {
	switch s {
	case ShareStatusPending, ShareStatusShared, ShareStatusRejected:
		return true
	}
	return false
}

// ShareMapping records whether a resource (or tag set) of an owner domain is
// shared with a target domain. Rows are never deleted.
type ShareMapping struct {
	OwnerDomainID      string
	ResourceMappingKey string
	TargetDomainID     string
	Mode               ApprovalMode
	Status             ShareStatus
	UpdatedAt          time.Time
}
