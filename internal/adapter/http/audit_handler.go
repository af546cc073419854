package http

import (
	"net/http"
	"time"

	"asset-custody/internal/domain/audit"

	"github.com/labstack/echo/v4"
)

type AuditHandler struct{ reader audit.Reader }

func NewAuditHandler(r audit.Reader) *AuditHandler { return &AuditHandler{reader: r} }

type auditRecordDTO struct {
	EventID   string    `json:"event_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	UserID    *uint64   `json:"user_id,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// History lists the audit trail of one product, assignment or request.
func (h *AuditHandler) History(c echo.Context) error {
	et := audit.EntityType(c.Param("entity"))
	if !et.Valid() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown entity type " + string(et)})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id " + err.Error()})
	}
	recs, err := h.reader.ListByEntity(c.Request().Context(), et, id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]auditRecordDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, auditRecordDTO{
			EventID:   r.EventID,
			Action:    string(r.Action),
			Details:   r.Details,
			UserID:    r.UserID,
			UserName:  r.UserName,
			IPAddress: r.IPAddress,
			RequestID: r.RequestID,
			CreatedAt: r.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}
