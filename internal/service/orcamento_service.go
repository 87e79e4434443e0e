package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/money"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/pricing"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/repository"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrcamentoNaoEncontrado = errors.New("orcamento nao encontrado")
	ErrOrcamentoAprovado      = errors.New("orcamento aprovado nao pode ser alterado")
	ErrTransicaoInvalida      = errors.New("transicao de status invalida")
)

type OrcamentoService interface {
	Criar(ctx context.Context, usuarioID uuid.UUID, req dto.CriarOrcamentoRequest) (*dto.OrcamentoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.OrcamentoResponse, error)
	Listar(ctx context.Context, filter dto.OrcamentoFilter) (*dto.OrcamentoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarOrcamentoRequest) (*dto.OrcamentoResponse, error)
	AtualizarStatus(ctx context.Context, id uuid.UUID, status string) error
	Excluir(ctx context.Context, id uuid.UUID) error
	Preview(ctx context.Context, req dto.PreviewTotaisRequest) (*dto.TotaisResponse, error)
	ExportarPDF(ctx context.Context, id uuid.UUID, req dto.ExportarPDFRequest) error
}

type orcamentoService struct {
	repo        repository.OrcamentoRepository
	clienteRepo repository.ClienteRepository
	produtoRepo repository.ProdutoRepository
	calc        pricing.Calculadora
	dispatcher  *worker.Dispatcher
}

func NewOrcamentoService(
	repo repository.OrcamentoRepository,
	clienteRepo repository.ClienteRepository,
	produtoRepo repository.ProdutoRepository,
	calc pricing.Calculadora,
	dispatcher *worker.Dispatcher,
) OrcamentoService {
	return &orcamentoService{
		repo:        repo,
		clienteRepo: clienteRepo,
		produtoRepo: produtoRepo,
		calc:        calc,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or directly when db is nil (unit tests with stub repositories).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolverItens turns the request lines into quote items, snapshotting the
// catalog name and price. For "m2" products the quantity is always derived
// from the dimensions server-side; a client-sent quantity is ignored.
func (s *orcamentoService) resolverItens(ctx context.Context, reqItens []dto.ItemOrcamentoRequest) ([]model.OrcamentoItem, error) {
	itens := make([]model.OrcamentoItem, 0, len(reqItens))
	for i, ri := range reqItens {
		pid, err := uuid.Parse(ri.ProdutoID)
		if err != nil {
			return nil, fmt.Errorf("item %d: produto_id invalido", i+1)
		}
		produto, err := s.produtoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("item %d: produto nao encontrado", i+1)
		}
		if !produto.Ativo {
			return nil, fmt.Errorf("item %d: produto %q esta inativo", i+1, produto.Nome)
		}

		item := model.OrcamentoItem{
			ProdutoID:     &produto.ID,
			ProdutoNome:   produto.Nome,
			ModeloPreco:   produto.ModeloPreco,
			PrecoUnitario: produto.PrecoUnitario,
		}

		switch produto.ModeloPreco {
		case model.ModeloPrecoM2:
			if ri.Largura == nil || ri.Altura == nil {
				return nil, fmt.Errorf("item %d: largura e altura sao obrigatorias para produto por m2", i+1)
			}
			pecas := 1
			if ri.Pecas != nil {
				pecas = *ri.Pecas
			}
			item.Largura = ri.Largura
			item.Altura = ri.Altura
			item.Pecas = &pecas
			item.Quantidade = ri.Largura.Mul(*ri.Altura).Mul(decimal.NewFromInt(int64(pecas)))
		default:
			if ri.Quantidade == nil {
				return nil, fmt.Errorf("item %d: quantidade e obrigatoria", i+1)
			}
			item.Quantidade = *ri.Quantidade
		}

		item.PrecoTotal = money.Round2(item.Quantidade.Mul(item.PrecoUnitario))
		itens = append(itens, item)
	}
	return itens, nil
}

func (s *orcamentoService) Criar(ctx context.Context, usuarioID uuid.UUID, req dto.CriarOrcamentoRequest) (*dto.OrcamentoResponse, error) {
	itens, err := s.resolverItens(ctx, req.Itens)
	if err != nil {
		return nil, err
	}

	descontoTipo := req.DescontoTipo
	if descontoTipo == "" {
		descontoTipo = model.DescontoNenhum
	}
	totais := s.calc.Calcular(itens, pricing.Desconto{Tipo: descontoTipo, Valor: req.DescontoValor})

	o := &model.Orcamento{
		UsuarioID:           usuarioID,
		Status:              model.OrcamentoRascunho,
		DescontoTipo:        descontoTipo,
		DescontoValor:       req.DescontoValor,
		FormaPagamento:      req.FormaPagamento,
		SinalAplicado:       req.SinalAplicado,
		Subtotal:            totais.Subtotal,
		ValorDesconto:       totais.ValorDesconto,
		SubtotalComDesconto: totais.SubtotalComDesconto,
		TotalVista:          totais.TotalVista,
		TotalCartao:         totais.TotalCartao,
		Observacoes:         req.Observacoes,
		Itens:               itens,
	}
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, errors.New("cliente_id invalido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, cid); err != nil {
			return nil, errors.New("cliente nao encontrado")
		}
		o.ClienteID = &cid
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumero(ctx, tx)
		if err != nil {
			return err
		}
		o.Numero = numero
		return s.repo.Create(ctx, tx, o)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Int("numero", o.Numero).Str("orcamento_id", o.ID.String()).Msg("orcamento criado")
	return s.toResponse(o), nil
}

func (s *orcamentoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrcamentoNaoEncontrado
	}
	return s.toResponse(o), nil
}

func (s *orcamentoService) Listar(ctx context.Context, filter dto.OrcamentoFilter) (*dto.OrcamentoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orcamentos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrcamentoResponse, 0, len(orcamentos))
	for i := range orcamentos {
		data = append(data, *s.toResponse(&orcamentos[i]))
	}
	return &dto.OrcamentoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *orcamentoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarOrcamentoRequest) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrcamentoNaoEncontrado
	}
	if o.Status == model.OrcamentoAprovado {
		return nil, ErrOrcamentoAprovado
	}

	itens, err := s.resolverItens(ctx, req.Itens)
	if err != nil {
		return nil, err
	}

	descontoTipo := req.DescontoTipo
	if descontoTipo == "" {
		descontoTipo = model.DescontoNenhum
	}
	totais := s.calc.Calcular(itens, pricing.Desconto{Tipo: descontoTipo, Valor: req.DescontoValor})

	o.DescontoTipo = descontoTipo
	o.DescontoValor = req.DescontoValor
	o.FormaPagamento = req.FormaPagamento
	o.SinalAplicado = req.SinalAplicado
	o.Observacoes = req.Observacoes
	o.Subtotal = totais.Subtotal
	o.ValorDesconto = totais.ValorDesconto
	o.SubtotalComDesconto = totais.SubtotalComDesconto
	o.TotalVista = totais.TotalVista
	o.TotalCartao = totais.TotalCartao

	o.ClienteID = nil
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, errors.New("cliente_id invalido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, cid); err != nil {
			return nil, errors.New("cliente nao encontrado")
		}
		o.ClienteID = &cid
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ReplaceItens(ctx, tx, o.ID, itens); err != nil {
			return err
		}
		o.Itens = itens
		return s.repo.Update(ctx, tx, o)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.toResponse(o), nil
}

// transicoesValidas maps each status to the states it may move to. Approval
// and refusal are terminal.
var transicoesValidas = map[string][]string{
	model.OrcamentoRascunho: {model.OrcamentoEnviado},
	model.OrcamentoEnviado:  {model.OrcamentoAprovado, model.OrcamentoRecusado},
}

func (s *orcamentoService) AtualizarStatus(ctx context.Context, id uuid.UUID, status string) error {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrOrcamentoNaoEncontrado
	}
	permitido := false
	for _, destino := range transicoesValidas[o.Status] {
		if destino == status {
			permitido = true
			break
		}
	}
	if !permitido {
		return fmt.Errorf("%w: %s -> %s", ErrTransicaoInvalida, o.Status, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	log.Info().Int("numero", o.Numero).Str("status", status).Msg("status do orcamento atualizado")
	return nil
}

func (s *orcamentoService) Excluir(ctx context.Context, id uuid.UUID) error {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrOrcamentoNaoEncontrado
	}
	if o.Status == model.OrcamentoAprovado {
		return ErrOrcamentoAprovado
	}
	return s.repo.Delete(ctx, id)
}

// Preview computes totals for the editing UI without persisting anything.
// It runs the exact same pipeline as Criar, so what the editor shows is what
// a save would store.
func (s *orcamentoService) Preview(ctx context.Context, req dto.PreviewTotaisRequest) (*dto.TotaisResponse, error) {
	itens, err := s.resolverItens(ctx, req.Itens)
	if err != nil {
		return nil, err
	}
	descontoTipo := req.DescontoTipo
	if descontoTipo == "" {
		descontoTipo = model.DescontoNenhum
	}
	totais := s.calc.Calcular(itens, pricing.Desconto{Tipo: descontoTipo, Valor: req.DescontoValor})
	resp := s.totaisResponse(totais, req.FormaPagamento, req.SinalAplicado)
	return &resp, nil
}

func (s *orcamentoService) ExportarPDF(ctx context.Context, id uuid.UUID, req dto.ExportarPDFRequest) error {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrOrcamentoNaoEncontrado
	}
	payload := worker.OrcamentoPDFJobPayload{OrcamentoID: o.ID.String(), Email: req.Email}
	if err := s.dispatcher.EnqueueOrcamentoPDF(ctx, payload); err != nil {
		return fmt.Errorf("falha ao enfileirar exportacao: %w", err)
	}
	log.Info().Int("numero", o.Numero).Msg("exportacao de PDF enfileirada")
	return nil
}

func (s *orcamentoService) totaisResponse(t pricing.Totais, formaPagamento string, sinal decimal.Decimal) dto.TotaisResponse {
	fp := pricing.ParseFormaPagamento(formaPagamento)
	devido, sobrepago := s.calc.ValorDevido(t, fp, sinal)
	base := t.TotalVista
	if fp.UsaCartao() {
		base = t.TotalCartao
	}
	return dto.TotaisResponse{
		Subtotal:            t.Subtotal,
		ValorDesconto:       t.ValorDesconto,
		SubtotalComDesconto: t.SubtotalComDesconto,
		TotalVista:          t.TotalVista,
		TotalCartao:         t.TotalCartao,
		ValorDevido:         devido,
		Sobrepago:           sobrepago,
		TextoParcelamento:   pricing.TextoParcelamento(fp, base),
	}
}

func (s *orcamentoService) toResponse(o *model.Orcamento) *dto.OrcamentoResponse {
	itens := make([]dto.ItemOrcamentoResponse, 0, len(o.Itens))
	for _, item := range o.Itens {
		var produtoID *string
		if item.ProdutoID != nil {
			id := item.ProdutoID.String()
			produtoID = &id
		}
		itens = append(itens, dto.ItemOrcamentoResponse{
			ProdutoID:     produtoID,
			ProdutoNome:   item.ProdutoNome,
			ModeloPreco:   item.ModeloPreco,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			PrecoTotal:    item.PrecoTotal,
			Largura:       item.Largura,
			Altura:        item.Altura,
			Pecas:         item.Pecas,
		})
	}

	totais := pricing.Totais{
		Subtotal:            o.Subtotal,
		ValorDesconto:       o.ValorDesconto,
		SubtotalComDesconto: o.SubtotalComDesconto,
		TotalVista:          o.TotalVista,
		TotalCartao:         o.TotalCartao,
	}

	var clienteID *string
	clienteNome := ""
	if o.ClienteID != nil {
		id := o.ClienteID.String()
		clienteID = &id
	}
	if o.Cliente != nil {
		clienteNome = o.Cliente.Nome
	}

	return &dto.OrcamentoResponse{
		ID:             o.ID.String(),
		Numero:         o.Numero,
		Status:         o.Status,
		ClienteID:      clienteID,
		ClienteNome:    clienteNome,
		Itens:          itens,
		DescontoTipo:   o.DescontoTipo,
		DescontoValor:  o.DescontoValor,
		FormaPagamento: o.FormaPagamento,
		SinalAplicado:  o.SinalAplicado,
		Totais:         s.totaisResponse(totais, o.FormaPagamento, o.SinalAplicado),
		Observacoes:    o.Observacoes,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
}
