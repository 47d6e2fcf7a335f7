package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baokaotong/baokao-backend/internal/enrich"
	"github.com/baokaotong/baokao-backend/internal/response"
	"github.com/baokaotong/baokao-backend/internal/service"
	"github.com/baokaotong/baokao-backend/internal/validator"
)

type MajorHandler struct {
	detailService service.MajorDetailService
}

func NewMajorHandler(detailService service.MajorDetailService) *MajorHandler {
	return &MajorHandler{detailService: detailService}
}

type qaRequest struct {
	MajorName string `json:"major_name" binding:"required"`
	Question  string `json:"question" binding:"required"`
}

type qaResponse struct {
	Answer   string `json:"answer"`
	Major    string `json:"major"`
	Question string `json:"question"`
}

// GetDetail returns the enriched record for a major code, generating it on
// first access.
func (h *MajorHandler) GetDetail(c *gin.Context) {
	code := c.Param("code")

	detail, err := h.detailService.GetMajorDetail(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, enrich.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrMajorNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrGenerationFailed)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// AskQuestion answers one free-form question about a major. Answers are not
// cached.
func (h *MajorHandler) AskQuestion(c *gin.Context) {
	var req qaRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer, err := h.detailService.AnswerQuestion(c.Request.Context(), req.MajorName, req.Question)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, qaResponse{
		Answer:   answer,
		Major:    req.MajorName,
		Question: req.Question,
	})
}
