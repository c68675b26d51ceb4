package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "siteproof/internal/errors"
	"siteproof/internal/evidencepack"
	"siteproof/internal/services"
)

// EvidenceHandler handles capture submissions and evidence reads.
type EvidenceHandler struct {
	evidenceService services.EvidenceServicer
	auditService    services.AuditServicer
}

// NewEvidenceHandler creates a new EvidenceHandler
func NewEvidenceHandler(evidenceService services.EvidenceServicer, auditService services.AuditServicer) *EvidenceHandler {
	return &EvidenceHandler{evidenceService: evidenceService, auditService: auditService}
}

// Capture accepts a multipart field submission for a work package
// @Summary     Submit evidence
// @Description Upload a photo with optional GPS for a work package. The photo
// @Description is stored before the row is written; a failed row write removes
// @Description the photo again.
// @Tags        evidence
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       photo formData file true "Photo"
// @Param       work_package_id formData string true "Work package ID"
// @Param       notes formData string false "Progress notes"
// @Param       gps_lat formData number false "Latitude"
// @Param       gps_lng formData number false "Longitude"
// @Param       gps_required formData boolean false "Reject the submission when no GPS fix is attached"
// @Success     201 {object} models.Evidence "Created evidence"
// @Failure     400 {object} ErrorResponse "Validation error"
// @Failure     404 {object} ErrorResponse "Work package not found"
// @Failure     502 {object} ErrorResponse "Photo upload failed"
// @Router      /projects/{id}/evidence [post]
func (h *EvidenceHandler) Capture(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	req := services.CaptureRequest{
		ProjectID:     projectID,
		WorkPackageID: strings.TrimSpace(c.PostForm("work_package_id")),
		SubmittedBy:   userID,
		Notes:         c.PostForm("notes"),
		DeviceInfo:    c.GetHeader("User-Agent"),
	}

	req.GPSRequired, err = parseFormBool(c.PostForm("gps_required"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "gps_required must be a boolean"))
		return
	}

	req.GPSLat, err = parseFormFloat(c.PostForm("gps_lat"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "gps_lat must be a number"))
		return
	}
	req.GPSLng, err = parseFormFloat(c.PostForm("gps_lng"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "gps_lng must be a number"))
		return
	}

	if file, ferr := c.FormFile("photo"); ferr == nil {
		opened, oerr := file.Open()
		if oerr != nil {
			respondWithError(c, apperrors.Wrap(apperrors.ErrMissingPhoto, oerr))
			return
		}
		defer opened.Close()

		req.Photo = opened
		req.FileName = file.Filename
		req.ContentType = file.Header.Get("Content-Type")
	}

	evidence, err := h.evidenceService.Capture(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "evidence.capture", "evidence", evidence.ID, c.ClientIP(), map[string]interface{}{
		"project_id":      evidence.ProjectID,
		"work_package_id": evidence.WorkPackageID,
		"has_gps":         evidence.HasGPS(),
	})

	c.JSON(http.StatusCreated, evidence)
}

// GetDetail returns one piece of evidence with its audit trail
// @Summary     Get evidence detail
// @Description Evidence with its work package, decision history newest-first,
// @Description and a time-limited photo URL
// @Tags        evidence
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Evidence ID"
// @Success     200 {object} services.EvidenceDetail "Evidence detail"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /evidence/{id} [get]
func (h *EvidenceHandler) GetDetail(c *gin.Context) {
	evidenceID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	detail, err := h.evidenceService.GetDetail(c.Request.Context(), evidenceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetPack renders the printable evidence pack
// @Summary     Download evidence pack
// @Description Render the evidence and its full decision history as a PDF
// @Tags        evidence
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       id path string true "Evidence ID"
// @Success     200 {file} binary "Evidence pack PDF"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /evidence/{id}/pack [get]
func (h *EvidenceHandler) GetPack(c *gin.Context) {
	evidenceID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	detail, err := h.evidenceService.GetDetail(c.Request.Context(), evidenceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pack, err := evidencepack.Render(evidencepack.PackData{
		Project:     detail.Project,
		WorkPackage: detail.WorkPackage,
		Evidence:    detail.Evidence,
		Logs:        detail.Logs,
		GeneratedAt: time.Now().UTC(),
	})
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="evidence-pack-`+evidenceID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pack)
}

func parseFormFloat(raw string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseFormBool(raw string) (bool, error) {
	if strings.TrimSpace(raw) == "" {
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(raw))
}
