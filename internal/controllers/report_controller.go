package controllers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"

	"taka_track/internal/middleware"
	"taka_track/internal/models"
	"taka_track/internal/notify"
	"taka_track/internal/stores"
)

// nearbyDegrees is the half-width of the public-list bounding box, roughly
// 5km at the equator.
const nearbyDegrees = 0.05

// notifyTimeout bounds a single fire-and-forget email dispatch.
const notifyTimeout = 30 * time.Second

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// ReportController handles the report lifecycle: create, list, fetch,
// status update, delete, plus the admin-gated variants.
type ReportController struct {
	Reports   stores.ReportStore
	Users     stores.UserStore
	Notifier  notify.Notifier
	UploadDir string
}

func NewReportController(reports stores.ReportStore, users stores.UserStore, notifier notify.Notifier, uploadDir string) *ReportController {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logrus.WithError(err).Warn("could not create upload dir")
	}
	return &ReportController{Reports: reports, Users: users, Notifier: notifier, UploadDir: uploadDir}
}

// Create persists a new report owned by the caller. Multipart body with
// required garbage_type, description, latitude, longitude and an optional
// image constrained to the jpeg/jpg/png/gif allow-list.
func (rc *ReportController) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
		return
	}

	garbageType := c.PostForm("garbage_type")
	description := c.PostForm("description")
	latStr := c.PostForm("latitude")
	lngStr := c.PostForm("longitude")
	if garbageType == "" || description == "" || latStr == "" || lngStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "latitude and longitude must be numeric"})
		return
	}

	report := models.Report{
		UserID:      userID,
		GarbageType: garbageType,
		Description: description,
		Latitude:    lat,
		Longitude:   lng,
		Status:      models.StatusPending,
	}

	if file, err := c.FormFile("image"); err == nil {
		filename, err := rc.saveImage(c, file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		report.Image = filename
	}

	if err := rc.Reports.Create(c.Request.Context(), &report); err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		logrus.WithError(err).Error("CreateReport: store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating report"})
		return
	}

	if owner, err := rc.Users.FindByID(c.Request.Context(), userID); err == nil {
		rc.notifyAsync("new_report", report, *owner, rc.Notifier.SendNewReport)
	} else {
		logrus.WithError(err).Warn("CreateReport: owner lookup for notification failed")
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Report submitted successfully!",
		"report":  report,
	})
}

// ListMine returns the caller's reports, newest first.
func (rc *ReportController) ListMine(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
		return
	}

	reports, err := rc.Reports.ListByUser(c.Request.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("ListMine: store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(reports), "reports": reports})
}

// ListAll is the public listing, optionally narrowed to a bounding box
// around the supplied coordinates. A partial latitude/longitude pair means
// no filter, not an error.
func (rc *ReportController) ListAll(c *gin.Context) {
	var filter stores.ReportFilter

	latStr := c.Query("latitude")
	lngStr := c.Query("longitude")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr == nil && lngErr == nil {
			bounds := geom.NewBounds(geom.XY)
			bounds.Set(lng-nearbyDegrees, lat-nearbyDegrees, lng+nearbyDegrees, lat+nearbyDegrees)
			filter.Bounds = bounds
		}
	}

	reports, err := rc.Reports.List(c.Request.Context(), filter)
	if err != nil {
		logrus.WithError(err).Error("ListAll: store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(reports), "reports": reports})
}

// Get fetches a single report by id.
func (rc *ReportController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := rc.Reports.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreErr(c, err, "Error fetching report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

type updateStatusInput struct {
	Status string `json:"status"`
}

// UpdateStatus is the self-service status edit. Only the owner may update,
// and the value must come from the two-state enumeration.
func (rc *ReportController) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	report, err := rc.Reports.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreErr(c, err, "Error updating report")
		return
	}
	if report.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to update this report"})
		return
	}

	if input.Status != "" {
		if !models.IsValidStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": models.ErrInvalidStatus.Error()})
			return
		}
		report.Status = input.Status
	}

	if err := rc.Reports.Save(c.Request.Context(), report); err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		logrus.WithError(err).Error("UpdateStatus: store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report updated successfully!", "report": report})
}

// Delete is the self-service delete; owner only, hard delete.
func (rc *ReportController) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := rc.Reports.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreErr(c, err, "Error deleting report")
		return
	}
	if report.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to delete this report"})
		return
	}

	if err := rc.Reports.Delete(c.Request.Context(), id); err != nil {
		respondStoreErr(c, err, "Error deleting report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report deleted successfully!"})
}

// AdminList returns all reports with an optional status filter plus aggregate
// counts computed over the full store, never the filtered subset.
func (rc *ReportController) AdminList(c *gin.Context) {
	var filter stores.ReportFilter
	if status := c.Query("status"); status != "" && status != "All" {
		filter.Status = status
	}

	reports, err := rc.Reports.List(c.Request.Context(), filter)
	if err != nil {
		logrus.WithError(err).Error("AdminList: store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching reports"})
		return
	}

	stats, err := rc.Reports.Stats(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("AdminList: stats failure")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(reports),
		"reports":    reports,
		"statistics": stats,
	})
}

// AdminResolve forces a report to Resolved regardless of owner and notifies
// the owner plus the operations address. The status change is never rolled
// back on notification failure.
func (rc *ReportController) AdminResolve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := rc.Reports.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreErr(c, err, "Error resolving report")
		return
	}

	report.Status = models.StatusResolved
	if err := rc.Reports.Save(c.Request.Context(), report); err != nil {
		logrus.WithError(err).Error("AdminResolve: store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error resolving report"})
		return
	}

	owner := report.User
	if owner == nil {
		if u, err := rc.Users.FindByID(c.Request.Context(), report.UserID); err == nil {
			owner = u
		}
	}
	if owner != nil {
		rc.notifyAsync("report_resolved", *report, *owner, rc.Notifier.SendReportResolved)
	} else {
		logrus.WithField("report_id", report.ID).Warn("AdminResolve: owner lookup for notification failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Report resolved and notification sent!",
		"report":  report,
	})
}

// AdminDelete removes any report, no ownership check.
func (rc *ReportController) AdminDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := rc.Reports.Delete(c.Request.Context(), id); err != nil {
		respondStoreErr(c, err, "Error deleting report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report deleted successfully!"})
}

// saveImage validates the upload against the image allow-list and stores it
// under a server-generated timestamp filename.
func (rc *ReportController) saveImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if !allowedImageExts[ext] || !allowedImageTypes[contentType] {
		return "", errors.New("Only image files are allowed")
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixMilli(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(rc.UploadDir, filename)); err != nil {
		logrus.WithError(err).Error("saveImage: could not store upload")
		return "", errors.New("could not store uploaded image")
	}
	return filename, nil
}

// notifyAsync dispatches a notification on its own goroutine with a bounded
// lifetime. The triggering request never waits on or fails with the mail
// transport; failures go to the log.
func (rc *ReportController) notifyAsync(event string, report models.Report, owner models.User, send func(context.Context, *models.Report, *models.User) error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("event", event).Errorf("notification panic: %v", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := send(ctx, &report, &owner); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"event":     event,
				"report_id": report.ID,
			}).Error("notification dispatch failed")
		}
	}()
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid report id"})
		return 0, false
	}
	return uint(id), true
}

func respondStoreErr(c *gin.Context, err error, fallback string) {
	if errors.Is(err, stores.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		return
	}
	logrus.WithError(err).Error(fallback)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fallback})
}

func isValidationErr(err error) bool {
	return errors.Is(err, models.ErrInvalidGarbageType) ||
		errors.Is(err, models.ErrInvalidStatus) ||
		errors.Is(err, models.ErrInvalidDescription)
}
