package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/retailops/backend/internal/application/report"
	"github.com/retailops/backend/internal/domain/report"
)

// ReportHandler handles report API endpoints
type ReportHandler struct {
	BaseHandler
	service *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Create handles POST /reports. The response carries the pending record;
// generation proceeds in the background and is observed by polling.
func (h *ReportHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	rep, err := h.service.CreateReport(c.Request.Context(), reportapp.CreateReportInput{
		Name:      req.Name,
		Type:      report.Type(req.Type),
		Format:    report.Format(req.Format),
		Filters:   req.Filters.toDomain(),
		CreatedBy: userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toReportResponse(rep))
}

// Get handles GET /reports/:id. Ownership is intentionally not checked
// here; listings are owner-scoped but direct reads are not.
func (h *ReportHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid report id")
		return
	}

	rep, err := h.service.GetReport(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toReportResponse(rep))
}

// List handles GET /reports, returning only the caller's reports
func (h *ReportHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.ListUserReports(c.Request.Context(), userID, req.Page, req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ReportResponse, 0, len(result.Reports))
	for i := range result.Reports {
		responses = append(responses, toReportResponse(&result.Reports[i]))
	}

	h.SuccessWithMeta(c, responses, result.Total, result.Page, result.PageSize, result.TotalPages)
}

// Download handles GET /reports/:id/download. Only json renders; pdf and
// excel were accepted at creation but are rejected here.
func (h *ReportHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid report id")
		return
	}

	payload, contentType, err := h.service.DownloadReport(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, payload)
}

// Statistics handles GET /statistics/:type, computing an on-demand
// aggregation for dashboards without persisting a report
func (h *ReportHandler) Statistics(c *gin.Context) {
	typ := report.Type(c.Param("type"))

	var req FiltersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	data, err := h.service.Statistics(c.Request.Context(), typ, req.toDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, data)
}
