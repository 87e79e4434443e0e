package handler

import (
	"errors"
	"net/http"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/apierror"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/middleware"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrcamentosHandler exposes the quote lifecycle: CRUD, live totals preview,
// status transitions, PDF export and drafted text suggestions.
type OrcamentosHandler struct {
	svc      service.OrcamentoService
	sugestao service.SugestaoService
}

func NewOrcamentosHandler(svc service.OrcamentoService, sugestao service.SugestaoService) *OrcamentosHandler {
	return &OrcamentosHandler{svc: svc, sugestao: sugestao}
}

// Criar godoc
// @Summary Cria um orcamento
// @Tags orcamentos
// @Accept json
// @Produce json
// @Param body body dto.CriarOrcamentoRequest true "Orcamento"
// @Success 201 {object} dto.OrcamentoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/orcamentos [post]
func (h *OrcamentosHandler) Criar(c *gin.Context) {
	var req dto.CriarOrcamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido"))
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrcamentosHandler) ObterPorID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrcamentosHandler) Listar(c *gin.Context) {
	var filter dto.OrcamentoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar orcamentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrcamentosHandler) Atualizar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarOrcamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, service.ErrOrcamentoNaoEncontrado):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrOrcamentoAprovado):
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrcamentosHandler) AtualizarStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarStatusOrcamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AtualizarStatus(c.Request.Context(), id, req.Status); err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, service.ErrOrcamentoNaoEncontrado):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrTransicaoInvalida):
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrcamentosHandler) Excluir(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, service.ErrOrcamentoNaoEncontrado):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrOrcamentoAprovado):
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Preview computes totals without persisting; the quote editor calls it on
// every change.
func (h *OrcamentosHandler) Preview(c *gin.Context) {
	var req dto.PreviewTotaisRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Preview(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarPDF enqueues the async export; 202 means "accepted, being built".
func (h *OrcamentosHandler) ExportarPDF(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ExportarPDFRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ExportarPDF(c.Request.Context(), id, req); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrOrcamentoNaoEncontrado) {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "Exportacao enfileirada"})
}

// SugerirTexto drafts quote copy through the sidecar.
func (h *OrcamentosHandler) SugerirTexto(c *gin.Context) {
	var req dto.SugestaoTextoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sugestao.SugerirTexto(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrSugestaoIndisponivel) {
			c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadGateway, apierror.New("Falha ao obter sugestao"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
