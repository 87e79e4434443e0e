package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(total string) model.OrcamentoItem {
	return model.OrcamentoItem{PrecoTotal: dec(total)}
}

func TestCalcularSemItens(t *testing.T) {
	c := NewCalculadora(DefaultAcrescimoCartaoPct)
	totais := c.Calcular(nil, Desconto{Tipo: model.DescontoNenhum})

	assert.True(t, totais.Subtotal.IsZero())
	assert.True(t, totais.TotalVista.IsZero())
	assert.True(t, totais.TotalCartao.IsZero())
}

func TestCalcularSubtotalSomaItens(t *testing.T) {
	c := NewCalculadora(DefaultAcrescimoCartaoPct)
	itens := []model.OrcamentoItem{item("20.00"), item("35.50"), item("0.01")}

	totais := c.Calcular(itens, Desconto{Tipo: model.DescontoNenhum})
	assert.True(t, totais.Subtotal.Equal(dec("55.51")), "subtotal = %s", totais.Subtotal)
	assert.True(t, totais.ValorDesconto.IsZero())
	assert.True(t, totais.TotalVista.Equal(dec("55.51")))
}

// Scenario: 2 × R$10, 10% discount, 15% card surcharge.
func TestCalcularDescontoPercentual(t *testing.T) {
	c := NewCalculadora(DefaultAcrescimoCartaoPct)
	itens := []model.OrcamentoItem{{
		Quantidade:    dec("2"),
		PrecoUnitario: dec("10.00"),
		PrecoTotal:    dec("20.00"),
	}}

	totais := c.Calcular(itens, Desconto{Tipo: model.DescontoPercentual, Valor: dec("10")})

	assert.True(t, totais.Subtotal.Equal(dec("20.00")))
	assert.True(t, totais.ValorDesconto.Equal(dec("2.00")))
	assert.True(t, totais.SubtotalComDesconto.Equal(dec("18.00")))
	assert.True(t, totais.TotalVista.Equal(dec("18.00")))
	assert.True(t, totais.TotalCartao.Equal(dec("20.70")), "cartao = %s", totais.TotalCartao)
}

// The percentage is always taken from the pre-discount subtotal, and the
// surcharge multiplies the discounted value — no double discount, no
// surcharge-before-discount.
func TestCalcularOrdemDescontoAcrescimo(t *testing.T) {
	c := NewCalculadora(DefaultAcrescimoCartaoPct)
	itens := []model.OrcamentoItem{item("200.00")}

	totais := c.Calcular(itens, Desconto{Tipo: model.DescontoPercentual, Valor: dec("50")})
	assert.True(t, totais.ValorDesconto.Equal(dec("100.00")))
	assert.True(t, totais.TotalCartao.Equal(dec("115.00")))
}

func TestCalcularDescontoFixoNaoClampado(t *testing.T) {
	c := NewCalculadora(DefaultAcrescimoCartaoPct)
	itens := []model.OrcamentoItem{item("50.00")}

	totais := c.Calcular(itens, Desconto{Tipo: model.DescontoFixo, Valor: dec("80.00")})
	// Oversized fixed discount flows through; validation is the caller's job.
	assert.True(t, totais.SubtotalComDesconto.Equal(dec("-30.00")))
}

func TestCalcularAcrescimoConfiguravel(t *testing.T) {
	c := NewCalculadora(dec("10"))
	totais := c.Calcular([]model.OrcamentoItem{item("100.00")}, Desconto{Tipo: model.DescontoNenhum})
	assert.True(t, totais.TotalCartao.Equal(dec("110.00")))
}

func TestCalcularDeterministico(t *testing.T) {
	c := NewCalculadora(DefaultAcrescimoCartaoPct)
	itens := []model.OrcamentoItem{item("33.33"), item("66.67")}
	d := Desconto{Tipo: model.DescontoPercentual, Valor: dec("7.5")}

	a := c.Calcular(itens, d)
	b := c.Calcular(itens, d)
	assert.Equal(t, a, b)
}

func TestValorDevidoSelecionaTotalPorFormaPagamento(t *testing.T) {
	c := NewCalculadora(DefaultAcrescimoCartaoPct)
	totais := Totais{TotalVista: dec("100"), TotalCartao: dec("115")}

	valor, sobrepago := c.ValorDevido(totais, ParseFormaPagamento("PIX"), dec("30"))
	assert.True(t, valor.Equal(dec("70")))
	assert.False(t, sobrepago)

	valor, sobrepago = c.ValorDevido(totais, ParseFormaPagamento("Cartão de Crédito 3x"), dec("30"))
	assert.True(t, valor.Equal(dec("85")))
	assert.False(t, sobrepago)
}

func TestValorDevidoSobrepago(t *testing.T) {
	c := NewCalculadora(DefaultAcrescimoCartaoPct)
	totais := Totais{TotalVista: dec("100"), TotalCartao: dec("115")}

	valor, sobrepago := c.ValorDevido(totais, ParseFormaPagamento("Dinheiro"), dec("120"))
	// Unclamped by contract; the flag is how callers find out.
	assert.True(t, valor.Equal(dec("-20")))
	assert.True(t, sobrepago)
}

func TestTextoParcelamento(t *testing.T) {
	cases := []struct {
		metodo string
		valor  string
		want   string
	}{
		{"Cartão de Crédito 4x", "400.00", "(Em 4x de R$ 100,00)"},
		{"Cartão de Crédito 3x", "100.00", "(Em 3x de R$ 33,33)"},
		{"cartao de credito 12x", "1200.00", "(Em 12x de R$ 100,00)"},
		{"PIX", "400.00", ""},
		{"Cartão de Débito", "400.00", ""},   // debit never installs
		{"Cartão de Crédito", "400.00", ""},  // no Nx token
		{"Cartão de Crédito 0x", "400.00", ""},
		{"Cartão de Crédito 4x", "0", ""},    // nothing to install
		{"Cartão de Crédito 4x", "-10", ""},
	}
	for _, cse := range cases {
		got := TextoParcelamento(ParseFormaPagamento(cse.metodo), dec(cse.valor))
		assert.Equal(t, cse.want, got, "metodo=%q valor=%s", cse.metodo, cse.valor)
	}
}
