package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"motes-generator.backend/internal/domain/entities"
	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/internal/interfaces/http/response"
	"motes-generator.backend/pkg/utils"
)

type profileService interface {
	Submit(ctx context.Context, input *entities.SubmitProfileInput) (int64, error)
	List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.ProfileSummary, utils.PaginationMeta, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ProfileHandler struct {
	service profileService
}

func NewProfileHandler(service profileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// submitProfileRequest mirrors the signup form field names
type submitProfileRequest struct {
	FullName    string      `json:"FullName"`
	Email       string      `json:"Email"`
	Phone       string      `json:"Phone"`
	Gender      string      `json:"Gender"`
	Preference  string      `json:"Preference"`
	City        string      `json:"City"`
	FBLink      string      `json:"FBLink"`
	SearchType  string      `json:"SearchType"`
	ConsentGDPR interface{} `json:"ConsentGDPR"`
}

// SubmitProfile stores a consenting profile.
// POST /submitProfile
func (h *ProfileHandler) SubmitProfile(c *gin.Context) {
	var req submitProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, domainerrors.BadRequest("Invalid JSON body"))
		return
	}

	// only the JSON literal true counts as consent
	consent, _ := req.ConsentGDPR.(bool)

	id, err := h.service.Submit(c.Request.Context(), &entities.SubmitProfileInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Gender:      req.Gender,
		Preference:  req.Preference,
		City:        req.City,
		FBLink:      req.FBLink,
		SearchType:  req.SearchType,
		ConsentGDPR: consent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": id})
}

// SubmitProfileLive answers liveness probes on the intake route.
// GET /submitProfile
func (h *ProfileHandler) SubmitProfileLive(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{"message": "SubmitProfile live (POST expected)"})
}

// ListProfiles returns profile summaries, newest first.
// GET /profiles?page=1&limit=50
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.MaxLimit)))

	items, meta, err := h.service.List(c.Request.Context(), utils.GetPaginationParams(page, limit))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"profiles": items, "meta": meta})
}

// DeleteProfile removes one profile.
// DELETE /profiles?id=12
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, ok := utils.ParsePositiveID(c.Query("id"))
	if !ok {
		response.Error(c, domainerrors.BadRequest("id must be a positive integer"))
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": id, "deleted": deleted})
}
