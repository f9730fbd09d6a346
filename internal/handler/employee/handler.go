package employee

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinicore/internal/handler"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/service/employee"
	"github.com/clinicore/clinicore/internal/service/specialty"
	apperr "github.com/clinicore/clinicore/pkg/errors"
	"github.com/clinicore/clinicore/pkg/validator"
)

type Handler struct {
	service      employee.Service
	specialtySvc specialty.Service
	validate     *validator.Validator
}

func NewHandler(service employee.Service, specialtySvc specialty.Service, validate *validator.Validator) *Handler {
	return &Handler{
		service:      service,
		specialtySvc: specialtySvc,
		validate:     validate,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.GET("/new", h.NewForm)
	r.GET("/edit/:id", h.EditForm)
	r.GET("/render-fields", h.RenderFields)
	r.POST("/save", h.Save)
	r.DELETE("/delete/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	h.renderList(c, http.StatusOK, c.Query("success"), c.Query("error"))
}

func (h *Handler) NewForm(c *gin.Context) {
	specialties, err := h.specialtySvc.ListSpecialties(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list specialties for employee form")
	}
	handler.Render(c, http.StatusOK, "employees/form", "employees/form_page", gin.H{
		"Specialties": specialties,
	})
}

func (h *Handler) EditForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid employee id", "/employees", "the employee list")
		return
	}

	emp, err := h.service.GetEmployee(c.Request.Context(), id)
	if err != nil {
		handler.RenderNotFound(c, "employee "+c.Param("id")+" does not exist", "/employees", "the employee list")
		return
	}

	var specialties []*model.Specialty
	if emp.Role.Clinical() {
		specialties, err = h.specialtySvc.ListSpecialties(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to list specialties for employee form")
		}
	}

	form := model.EmployeeForm{
		EmployeeID:  emp.ID,
		Name:        emp.Name,
		CPF:         emp.CPF,
		BirthDate:   emp.BirthDate.Format(model.DateLayout),
		Role:        string(emp.Role),
		CRM:         emp.CRM,
		SpecialtyID: emp.SpecialtyID,
		Department:  emp.Department,
	}
	handler.Render(c, http.StatusOK, "employees/form", "employees/form_page", gin.H{
		"Form":        form,
		"Specialties": specialties,
	})
}

// RenderFields returns the role-dependent form partial: license and
// specialty inputs for clinical roles, a department input otherwise.
func (h *Handler) RenderFields(c *gin.Context) {
	role := model.Role(c.Query("role"))
	if role.Clinical() {
		specialties, err := h.specialtySvc.ListSpecialties(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to list specialties for role fields")
		}
		c.HTML(http.StatusOK, "employees/fields_clinical", gin.H{
			"Specialties": specialties,
		})
		return
	}
	c.HTML(http.StatusOK, "employees/fields_administrative", gin.H{})
}

// Save creates or updates depending on the hidden employee_id field.
func (h *Handler) Save(c *gin.Context) {
	var form model.EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, &form, "invalid form data")
		return
	}
	if err := h.validate.Struct(&form); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, &form, err.Error())
		return
	}

	var err error
	success := "employee created successfully"
	if form.EmployeeID == 0 {
		_, err = h.service.CreateEmployee(c.Request.Context(), &form)
	} else {
		_, err = h.service.UpdateEmployee(c.Request.Context(), form.EmployeeID, &form)
		success = "employee updated successfully"
	}
	if err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "employee does not exist", "/employees", "the employee list")
			return
		}
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Msg("failed to save employee")
		}
		h.renderForm(c, handler.ErrorStatus(err), &form, handler.ErrorMessage(err))
		return
	}

	h.renderList(c, http.StatusOK, success, "")
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid employee id", "/employees", "the employee list")
		return
	}

	if err := h.service.DeleteEmployee(c.Request.Context(), id); err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "employee "+c.Param("id")+" does not exist", "/employees", "the employee list")
			return
		}
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Int64("employee_id", id).Msg("failed to delete employee")
		}
		h.renderList(c, handler.ErrorStatus(err), "", handler.ErrorMessage(err))
		return
	}

	h.renderList(c, http.StatusOK, "employee deleted successfully", "")
}

func (h *Handler) renderList(c *gin.Context, status int, success, errMsg string) {
	var page model.Pagination
	_ = c.ShouldBindQuery(&page)

	employees, meta, err := h.service.ListEmployees(c.Request.Context(), page)
	if err != nil {
		log.Error().Err(err).Msg("failed to list employees")
		status = http.StatusInternalServerError
		errMsg = "internal error while loading employees"
	}

	handler.Render(c, status, "employees/list", "employees/list_page", gin.H{
		"Employees": employees,
		"Meta":      meta,
		"Success":   success,
		"Error":     errMsg,
	})
}

func (h *Handler) renderForm(c *gin.Context, status int, form *model.EmployeeForm, errMsg string) {
	specialties, err := h.specialtySvc.ListSpecialties(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list specialties for employee form")
	}
	handler.Render(c, status, "employees/form", "employees/form_page", gin.H{
		"Form":        form,
		"Specialties": specialties,
		"Error":       errMsg,
	})
}
