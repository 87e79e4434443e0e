package service

import (
	"context"
	"errors"
	"testing"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/dto"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/pricing"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubOrcamentoRepo is an in-memory OrcamentoRepository for testing.
type stubOrcamentoRepo struct {
	orcamentos map[uuid.UUID]*model.Orcamento
	numeroSeq  int
}

func newStubOrcamentoRepo() *stubOrcamentoRepo {
	return &stubOrcamentoRepo{orcamentos: make(map[uuid.UUID]*model.Orcamento)}
}

func (r *stubOrcamentoRepo) Create(_ context.Context, _ *gorm.DB, o *model.Orcamento) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orcamentos[o.ID] = o
	return nil
}

func (r *stubOrcamentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Orcamento, error) {
	o, ok := r.orcamentos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOrcamentoRepo) List(_ context.Context, filter dto.OrcamentoFilter) ([]model.Orcamento, int64, error) {
	var out []model.Orcamento
	for _, o := range r.orcamentos {
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrcamentoRepo) Update(_ context.Context, _ *gorm.DB, o *model.Orcamento) error {
	r.orcamentos[o.ID] = o
	return nil
}

func (r *stubOrcamentoRepo) ReplaceItens(_ context.Context, _ *gorm.DB, orcamentoID uuid.UUID, itens []model.OrcamentoItem) error {
	o, ok := r.orcamentos[orcamentoID]
	if !ok {
		return errors.New("not found")
	}
	o.Itens = itens
	return nil
}

func (r *stubOrcamentoRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := r.orcamentos[id]
	if !ok {
		return errors.New("not found")
	}
	o.Status = status
	return nil
}

func (r *stubOrcamentoRepo) UpdatePDFPath(_ context.Context, id uuid.UUID, path string) error {
	o, ok := r.orcamentos[id]
	if !ok {
		return errors.New("not found")
	}
	o.PDFPath = &path
	return nil
}

func (r *stubOrcamentoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orcamentos, id)
	return nil
}

func (r *stubOrcamentoRepo) NextNumero(_ context.Context, _ *gorm.DB) (int, error) {
	r.numeroSeq++
	return r.numeroSeq, nil
}

func (r *stubOrcamentoRepo) DB() *gorm.DB { return nil }

var _ repository.OrcamentoRepository = (*stubOrcamentoRepo)(nil)

// stubProdutoRepo serves catalog lookups for item resolution.
type stubProdutoRepo struct {
	produtos map[uuid.UUID]*model.Produto
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *stubProdutoRepo) add(p *model.Produto) *model.Produto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produtos[p.ID] = p
	return p
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	r.add(p)
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProdutoRepo) List(_ context.Context, _ dto.ProdutoFilter) ([]model.Produto, int64, error) {
	return nil, 0, nil
}
func (r *stubProdutoRepo) Update(_ context.Context, _ *model.Produto) error  { return nil }
func (r *stubProdutoRepo) SoftDelete(_ context.Context, _ uuid.UUID) error   { return nil }
func (r *stubProdutoRepo) Reativar(_ context.Context, _ uuid.UUID) error     { return nil }
func (r *stubProdutoRepo) FindByFornecedorID(_ context.Context, _ uuid.UUID) ([]model.Produto, error) {
	return nil, nil
}

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

// stubClienteRepo only needs FindByID for quote tests.
type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	return nil, 0, nil
}
func (r *stubClienteRepo) Update(_ context.Context, _ *model.Cliente) error { return nil }
func (r *stubClienteRepo) SoftDelete(_ context.Context, _ uuid.UUID) error  { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func newOrcamentoServiceForTest() (OrcamentoService, *stubOrcamentoRepo, *stubProdutoRepo, *stubClienteRepo) {
	repo := newStubOrcamentoRepo()
	produtos := newStubProdutoRepo()
	clientes := newStubClienteRepo()
	calc := pricing.NewCalculadora(pricing.DefaultAcrescimoCartaoPct)
	svc := NewOrcamentoService(repo, clientes, produtos, calc, nil)
	return svc, repo, produtos, clientes
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCriarOrcamentoUnidade(t *testing.T) {
	svc, repo, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Cartão de visita",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("0.10"),
		Ativo:         true,
	})

	qtd := d("200")
	resp, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
		Itens: []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Numero)
	assert.Equal(t, model.OrcamentoRascunho, resp.Status)
	require.Len(t, resp.Itens, 1)
	assert.True(t, resp.Itens[0].PrecoTotal.Equal(d("20.00")), "got %s", resp.Itens[0].PrecoTotal)
	assert.True(t, resp.Totais.Subtotal.Equal(d("20.00")))
	assert.True(t, resp.Totais.TotalCartao.Equal(d("23.00")))
	assert.Len(t, repo.orcamentos, 1)
}

func TestCriarOrcamentoM2DerivaQuantidade(t *testing.T) {
	svc, _, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Lona banner",
		ModeloPreco:   model.ModeloPrecoM2,
		PrecoUnitario: d("50.00"),
		Ativo:         true,
	})

	largura, altura, pecas := d("2"), d("1.5"), 2
	resp, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
		Itens: []dto.ItemOrcamentoRequest{{
			ProdutoID: p.ID.String(),
			Largura:   &largura,
			Altura:    &altura,
			Pecas:     &pecas,
		}},
	})
	require.NoError(t, err)

	// 2 * 1.5 * 2 pecas = 6 m2 * 50 = 300
	assert.True(t, resp.Itens[0].Quantidade.Equal(d("6")), "got %s", resp.Itens[0].Quantidade)
	assert.True(t, resp.Itens[0].PrecoTotal.Equal(d("300.00")))
}

func TestCriarOrcamentoM2SemDimensoes(t *testing.T) {
	svc, _, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Adesivo",
		ModeloPreco:   model.ModeloPrecoM2,
		PrecoUnitario: d("30.00"),
		Ativo:         true,
	})

	qtd := d("3")
	_, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
		Itens: []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "largura e altura")
}

func TestCriarOrcamentoProdutoInativo(t *testing.T) {
	svc, _, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Descontinuado",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("10.00"),
		Ativo:         false,
	})

	qtd := d("1")
	_, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
		Itens: []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inativo")
}

func TestCriarOrcamentoSnapshotPrecoCatalogo(t *testing.T) {
	svc, repo, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Flyer",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("1.00"),
		Ativo:         true,
	})

	qtd := d("100")
	resp, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
		Itens: []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
	})
	require.NoError(t, err)

	// Catalog edits after the fact must not rewrite the stored snapshot.
	p.PrecoUnitario = d("2.00")
	p.Nome = "Flyer novo"

	id := uuid.MustParse(resp.ID)
	stored := repo.orcamentos[id]
	assert.Equal(t, "Flyer", stored.Itens[0].ProdutoNome)
	assert.True(t, stored.Itens[0].PrecoUnitario.Equal(d("1.00")))
}

func TestCriarOrcamentoNumeracaoSequencial(t *testing.T) {
	svc, _, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Banner",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("80.00"),
		Ativo:         true,
	})

	qtd := d("1")
	for esperado := 1; esperado <= 3; esperado++ {
		resp, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
			Itens: []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
		})
		require.NoError(t, err)
		assert.Equal(t, esperado, resp.Numero)
	}
}

func TestAtualizarOrcamentoRecalculaTotais(t *testing.T) {
	svc, repo, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Placa",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("100.00"),
		Ativo:         true,
	})

	qtd := d("1")
	resp, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
		Itens: []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	novaQtd := d("2")
	atualizado, err := svc.Atualizar(context.Background(), id, dto.AtualizarOrcamentoRequest{
		Itens:         []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &novaQtd}},
		DescontoTipo:  model.DescontoPercentual,
		DescontoValor: d("10"),
	})
	require.NoError(t, err)

	assert.True(t, atualizado.Totais.Subtotal.Equal(d("200.00")))
	assert.True(t, atualizado.Totais.TotalVista.Equal(d("180.00")))
	assert.True(t, atualizado.Totais.TotalCartao.Equal(d("207.00")))

	stored := repo.orcamentos[id]
	assert.True(t, stored.TotalVista.Equal(d("180.00")))
}

func TestAtualizarOrcamentoAprovadoRejeitado(t *testing.T) {
	svc, repo, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Placa",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("100.00"),
		Ativo:         true,
	})

	qtd := d("1")
	resp, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
		Itens: []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
	})
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	repo.orcamentos[id].Status = model.OrcamentoAprovado

	_, err = svc.Atualizar(context.Background(), id, dto.AtualizarOrcamentoRequest{
		Itens: []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
	})
	assert.ErrorIs(t, err, ErrOrcamentoAprovado)
}

func TestAtualizarStatusTransicoes(t *testing.T) {
	svc, repo, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Placa",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("100.00"),
		Ativo:         true,
	})

	qtd := d("1")
	resp, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
		Itens: []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// rascunho -> aprovado is not allowed, must pass through enviado
	err = svc.AtualizarStatus(context.Background(), id, model.OrcamentoAprovado)
	assert.ErrorIs(t, err, ErrTransicaoInvalida)

	require.NoError(t, svc.AtualizarStatus(context.Background(), id, model.OrcamentoEnviado))
	require.NoError(t, svc.AtualizarStatus(context.Background(), id, model.OrcamentoAprovado))
	assert.Equal(t, model.OrcamentoAprovado, repo.orcamentos[id].Status)

	// aprovado is terminal
	err = svc.AtualizarStatus(context.Background(), id, model.OrcamentoRascunho)
	assert.ErrorIs(t, err, ErrTransicaoInvalida)
}

func TestExcluirOrcamentoAprovadoRejeitado(t *testing.T) {
	svc, repo, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Placa",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("100.00"),
		Ativo:         true,
	})

	qtd := d("1")
	resp, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
		Itens: []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)
	repo.orcamentos[id].Status = model.OrcamentoAprovado

	assert.ErrorIs(t, svc.Excluir(context.Background(), id), ErrOrcamentoAprovado)
	assert.Len(t, repo.orcamentos, 1)
}

func TestPreviewNaoPersiste(t *testing.T) {
	svc, repo, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Banner",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("100.00"),
		Ativo:         true,
	})

	qtd := d("1")
	resp, err := svc.Preview(context.Background(), dto.PreviewTotaisRequest{
		Itens:          []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
		FormaPagamento: "Cartão de Crédito 4x",
		SinalAplicado:  d("15.00"),
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalVista.Equal(d("100.00")))
	assert.True(t, resp.TotalCartao.Equal(d("115.00")))
	assert.True(t, resp.ValorDevido.Equal(d("100.00")))
	assert.False(t, resp.Sobrepago)
	assert.Equal(t, "(Em 4x de R$ 28,75)", resp.TextoParcelamento)
	assert.Empty(t, repo.orcamentos)
}

func TestPreviewSobrepago(t *testing.T) {
	svc, _, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Banner",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("50.00"),
		Ativo:         true,
	})

	qtd := d("1")
	resp, err := svc.Preview(context.Background(), dto.PreviewTotaisRequest{
		Itens:          []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
		FormaPagamento: "PIX",
		SinalAplicado:  d("80.00"),
	})
	require.NoError(t, err)

	assert.True(t, resp.ValorDevido.Equal(d("-30.00")))
	assert.True(t, resp.Sobrepago)
}

func TestCriarOrcamentoClienteInexistente(t *testing.T) {
	svc, _, produtos, _ := newOrcamentoServiceForTest()

	p := produtos.add(&model.Produto{
		Nome:          "Banner",
		ModeloPreco:   model.ModeloPrecoUnidade,
		PrecoUnitario: d("50.00"),
		Ativo:         true,
	})

	qtd := d("1")
	fantasma := uuid.New().String()
	_, err := svc.Criar(context.Background(), uuid.New(), dto.CriarOrcamentoRequest{
		ClienteID: &fantasma,
		Itens:     []dto.ItemOrcamentoRequest{{ProdutoID: p.ID.String(), Quantidade: &qtd}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cliente nao encontrado")
}
