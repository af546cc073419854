package request

import (
	"encoding/json"
	"time"

	domainRequest "asset-custody/internal/domain/request"
)

type CreateInput struct {
	Kind        domainRequest.Kind
	RequesterID uint64
	Title       string
	Details     string
	Payload     string // opaque JSON
}

type DecisionInput struct {
	ApproverID uint64
	Reason     string // only kept on reject
}

type RequestDTO struct {
	ID              uint64          `json:"id"`
	Kind            string          `json:"kind"`
	RequesterID     uint64          `json:"requester_id"`
	RequesterName   string          `json:"requester_name"`
	Title           string          `json:"title"`
	Details         string          `json:"details,omitempty"`
	Payload         json.RawMessage `json:"payload,omitempty"`
	Status          string          `json:"status"`
	ApproverID      *uint64         `json:"approver_id,omitempty"`
	ApproverName    string          `json:"approver_name,omitempty"`
	DecisionAt      *time.Time      `json:"decision_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toDTO(r *domainRequest.Request) *RequestDTO {
	dto := &RequestDTO{
		ID:              r.ID,
		Kind:            string(r.Kind),
		RequesterID:     r.RequesterID,
		RequesterName:   r.RequesterName,
		Title:           r.Title,
		Details:         r.Details,
		Status:          string(r.Status),
		ApproverID:      r.ApproverID,
		ApproverName:    r.ApproverName,
		DecisionAt:      r.DecisionAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
	if r.Payload != "" && json.Valid([]byte(r.Payload)) {
		dto.Payload = json.RawMessage(r.Payload)
	}
	return dto
}
