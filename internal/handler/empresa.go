package handler

import (
	"net/http"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/apierror"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// EmpresaHandler exposes the single-row company profile used on PDF headers.
type EmpresaHandler struct{ svc service.EmpresaService }

func NewEmpresaHandler(svc service.EmpresaService) *EmpresaHandler {
	return &EmpresaHandler{svc: svc}
}

func (h *EmpresaHandler) Obter(c *gin.Context) {
	resp, err := h.svc.Obter(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmpresaHandler) Atualizar(c *gin.Context) {
	var req dto.AtualizarEmpresaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
