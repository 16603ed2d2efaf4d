package handlers

import (
	"net/http"
	"time"

	"estate_manager/internal/apperrors"
	"estate_manager/internal/models"
	"estate_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService   services.ProjectService
	milestoneService services.MilestoneService
	progressService  services.ProgressService
}

func NewProjectHandler(
	projectService services.ProjectService,
	milestoneService services.MilestoneService,
	progressService services.ProgressService,
) *ProjectHandler {
	return &ProjectHandler{
		projectService:   projectService,
		milestoneService: milestoneService,
		progressService:  progressService,
	}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.projectService.CreateProject(&project); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	project, err := h.projectService.GetProject(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) GetAllProjects(c *gin.Context) {
	projects, err := h.projectService.GetAllProjects()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	project.ID = id

	if err := h.projectService.UpdateProject(&project); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.projectService.DeleteProject(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ProjectHandler) GetProjectProgress(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	progress, err := h.progressService.GetProjectProgress(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project_id": id, "progress": progress})
}

type createScheduleRequest struct {
	Date       time.Time          `json:"date" binding:"required"`
	Milestones []models.Milestone `json:"milestones"`
}

func (h *ProjectHandler) CreateSchedule(c *gin.Context) {
	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	schedule, err := h.milestoneService.AddScheduleWithMilestones(projectID, req.Date, req.Milestones)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"schedule": schedule, "milestones": req.Milestones})
}

func (h *ProjectHandler) GetSchedules(c *gin.Context) {
	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}
	schedules, err := h.milestoneService.GetSchedulesByProject(projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (h *ProjectHandler) AddMilestone(c *gin.Context) {
	var milestone models.Milestone
	if err := c.ShouldBindJSON(&milestone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.milestoneService.AddMilestone(&milestone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *ProjectHandler) UpdateMilestone(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var milestone models.Milestone
	if err := c.ShouldBindJSON(&milestone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	milestone.ID = id

	err := h.milestoneService.UpdateMilestone(&milestone)
	if err != nil {
		// The milestone row is already saved when only the payment
		// fan-out failed; report success with a warning instead of
		// failing the user's action.
		if apperrors.IsCascade(err) {
			c.JSON(http.StatusOK, gin.H{
				"milestone": milestone,
				"warning":   "payment schedule update may be delayed: " + err.Error(),
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}

func (h *ProjectHandler) DeleteMilestone(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.milestoneService.DeleteMilestone(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
