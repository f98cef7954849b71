package rest

import (
	"time"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

type resourceDTO struct {
	Database string `json:"database"`
	Table    string `json:"table"`
}

type tagDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type shareRequestBody struct {
	OwnerDomainID  string       `json:"ownerDomainId"`
	TargetDomainID string       `json:"targetDomainId"`
	Resource       *resourceDTO `json:"resource,omitempty"`
	Tags           []tagDTO     `json:"tags,omitempty"`
}

type decisionBody struct {
	OwnerDomainID string `json:"ownerDomainId"`
	RequestID     string `json:"requestId"`
	ActionType    string `json:"actionType"`
}

type instanceResponse struct {
	ID                 string            `json:"id"`
	State              string            `json:"state"`
	Mode               string            `json:"mode"`
	OwnerDomainID      string            `json:"ownerDomainId"`
	TargetDomainID     string            `json:"targetDomainId"`
	RequestedBy        string            `json:"requestedBy"`
	Resource           *resourceDTO      `json:"resource,omitempty"`
	Tags               []tagDTO          `json:"tags,omitempty"`
	OwnerNamespace     string            `json:"ownerNamespace,omitempty"`
	ApprovalRequired   bool              `json:"approvalRequired"`
	RequestID          string            `json:"requestId,omitempty"`
	ResourceMappingKey string            `json:"resourceMappingKey"`
	Review             map[string]string `json:"review,omitempty"`
	Failure            string            `json:"failure,omitempty"`
	Revision           int64             `json:"revision"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// approvalResponse never carries the continuation token.
type approvalResponse struct {
	OwnerDomainID      string    `json:"ownerDomainId"`
	RequestID          string    `json:"requestId"`
	Mode               string    `json:"mode"`
	TargetDomainID     string    `json:"targetDomainId"`
	SourceResourceKey  string    `json:"sourceResourceKey"`
	ResourceMappingKey string    `json:"resourceMappingKey"`
	InstanceID         string    `json:"instanceId"`
	CreatedAt          time.Time `json:"createdAt"`
}

type pendingPageResponse struct {
	Items      []approvalResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

type pendingCountResponse struct {
	DomainID     string `json:"domainId,omitempty"`
	PendingCount int    `json:"pendingCount"`
}

type shareMappingResponse struct {
	OwnerDomainID      string    `json:"ownerDomainId"`
	ResourceMappingKey string    `json:"resourceMappingKey"`
	TargetDomainID     string    `json:"targetDomainId"`
	Mode               string    `json:"mode"`
	Status             string    `json:"status"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type sharesPageResponse struct {
	Items []shareMappingResponse `json:"items"`
	Total int                    `json:"total"`
}

func toTags(in []tagDTO) []domain.Tag {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Tag, len(in))
	for i, t := range in {
		out[i] = domain.Tag{Key: t.Key, Value: t.Value}
	}
	return out
}

func fromTags(in []domain.Tag) []tagDTO {
	if len(in) == 0 {
		return nil
	}
	out := make([]tagDTO, len(in))
	for i, t := range in {
		out[i] = tagDTO{Key: t.Key, Value: t.Value}
	}
	return out
}

func toInstanceResponse(inst *domain.WorkflowInstance) instanceResponse {
	c := inst.Context
	resp := instanceResponse{
		ID:                 inst.ID.String(),
		State:              inst.State.String(),
		Mode:               c.Mode.String(),
		OwnerDomainID:      c.OwnerDomainID,
		TargetDomainID:     c.TargetDomainID,
		RequestedBy:        c.RequestedBy,
		Tags:               fromTags(c.Tags),
		OwnerNamespace:     c.OwnerNamespace,
		ApprovalRequired:   c.ApprovalRequired,
		RequestID:          c.RequestID,
		ResourceMappingKey: c.ResourceMappingKey,
		Review:             c.ReviewOutput,
		Failure:            inst.Failure,
		Revision:           inst.Revision,
		CreatedAt:          inst.CreatedAt,
		UpdatedAt:          inst.UpdatedAt,
	}
	if c.Resource != nil {
		resp.Resource = &resourceDTO{Database: c.Resource.Database, Table: c.Resource.Table}
	}
	return resp
}

func toApprovalResponse(req domain.ApprovalRequest) approvalResponse {
	return approvalResponse{
		OwnerDomainID:      req.OwnerDomainID,
		RequestID:          req.RequestID,
		Mode:               req.Mode.String(),
		TargetDomainID:     req.TargetDomainID,
		SourceResourceKey:  req.SourceResourceKey,
		ResourceMappingKey: req.ResourceMappingKey,
		InstanceID:         req.InstanceID.String(),
		CreatedAt:          req.CreatedAt,
	}
}

func toShareMappingResponse(m domain.ShareMapping) shareMappingResponse {
	return shareMappingResponse{
		OwnerDomainID:      m.OwnerDomainID,
		ResourceMappingKey: m.ResourceMappingKey,
		TargetDomainID:     m.TargetDomainID,
		Mode:               m.Mode.String(),
		Status:             m.Status.String(),
		UpdatedAt:          m.UpdatedAt,
	}
}
