package handler

import (
	"errors"
	"net/http"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/apierror"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ContasPagarHandler struct{ svc service.ContaPagarService }

func NewContasPagarHandler(svc service.ContaPagarService) *ContasPagarHandler {
	return &ContasPagarHandler{svc: svc}
}

// Criar returns the full list of created entries — one for a simple payable,
// the whole series when parceled.
func (h *ContasPagarHandler) Criar(c *gin.Context) {
	var req dto.CriarContaPagarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ContasPagarHandler) ObterPorID(c *gin.Context) {
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

func (h *ContasPagarHandler) Listar(c *gin.Context) {
	var filter dto.ContaPagarFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar contas a pagar"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContasPagarHandler) Atualizar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarContaPagarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrContaNaoEncontrada) {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContasPagarHandler) AlternarPago(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.AlternarPago(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContasPagarHandler) Excluir(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContasPagarHandler) ExcluirSerie(c *gin.Context) {
	serieID, ok := pathUUID(c, "serieId")
	if !ok {
		return
	}
	removidas, err := h.svc.ExcluirSerie(c.Request.Context(), serieID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"removidas": removidas})
}
