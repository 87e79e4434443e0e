// Package pricing implements the quote totals engine and the installment
// schedule generator. Everything here is pure computation over in-memory
// values — no I/O, no shared state, safe for concurrent use.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/money"
)

// DefaultAcrescimoCartaoPct is the card surcharge applied when no rate is
// configured. Tenants can override it via ACRESCIMO_CARTAO_PCT.
var DefaultAcrescimoCartaoPct = decimal.NewFromInt(15)

// Desconto is the discount configuration of a quote. For "percentual" the
// Valor is read as 0-100; for "fixo" it is a currency amount. Neither form
// is clamped to the subtotal — validating sane input is the caller's job,
// and an oversized discount flows through as a negative total.
type Desconto struct {
	Tipo  string
	Valor decimal.Decimal
}

// Totais are the derived amounts of a quote. The five fields are always
// computed together from the same inputs; they are never patched
// individually.
type Totais struct {
	Subtotal            decimal.Decimal
	ValorDesconto       decimal.Decimal
	SubtotalComDesconto decimal.Decimal
	TotalVista          decimal.Decimal
	TotalCartao         decimal.Decimal
}

// Calculadora derives quote totals. The card surcharge rate is carried as
// explicit state rather than a package global so tests and future
// multi-tenant rates do not fight over shared configuration.
type Calculadora struct {
	AcrescimoCartaoPct decimal.Decimal
}

func NewCalculadora(acrescimoCartaoPct decimal.Decimal) Calculadora {
	return Calculadora{AcrescimoCartaoPct: acrescimoCartaoPct}
}

var cem = decimal.NewFromInt(100)

// Calcular derives all quote totals from the item list and discount config.
// An empty item list yields all-zero totals. The percentage discount is
// taken from the pre-discount subtotal and the card surcharge is applied
// after the discount, so the two never compound in the wrong order.
func (c Calculadora) Calcular(itens []model.OrcamentoItem, desconto Desconto) Totais {
	subtotal := decimal.Zero
	for _, item := range itens {
		subtotal = subtotal.Add(item.PrecoTotal)
	}

	valorDesconto := decimal.Zero
	switch desconto.Tipo {
	case model.DescontoPercentual:
		valorDesconto = subtotal.Mul(desconto.Valor).Div(cem)
	case model.DescontoFixo:
		valorDesconto = desconto.Valor
	}

	comDesconto := subtotal.Sub(valorDesconto)
	return Totais{
		Subtotal:            subtotal,
		ValorDesconto:       valorDesconto,
		SubtotalComDesconto: comDesconto,
		TotalVista:          comDesconto,
		TotalCartao:         comDesconto.Mul(cem.Add(c.AcrescimoCartaoPct)).Div(cem),
	}
}

// ValorDevido returns the net amount due after applying the customer's down
// payment (sinal) against the total selected by the payment method: card
// methods pay TotalCartao, everything else pays TotalVista.
// The arithmetic is deliberately unclamped — an over-applied sinal yields a
// negative amount — and the sobrepago flag tells callers it happened so the
// UI can surface it instead of printing negative currency silently.
func (c Calculadora) ValorDevido(t Totais, fp FormaPagamento, sinal decimal.Decimal) (valor decimal.Decimal, sobrepago bool) {
	selecionado := t.TotalVista
	if fp.UsaCartao() {
		selecionado = t.TotalCartao
	}
	return selecionado.Sub(sinal), sinal.GreaterThan(selecionado)
}

// TextoParcelamento renders the installment hint shown next to the card
// total, e.g. "(Em 4x de R$ 100,00)". It returns "" unless the payment
// method is credit with a parsed installment count and the amount is
// positive; malformed input never errors.
func TextoParcelamento(fp FormaPagamento, valor decimal.Decimal) string {
	if fp.Tipo != PagamentoCredito || fp.Parcelas < 1 || !valor.IsPositive() {
		return ""
	}
	porParcela := valor.Div(decimal.NewFromInt(int64(fp.Parcelas)))
	return fmt.Sprintf("(Em %dx de %s)", fp.Parcelas, money.FormatBRL(porParcela))
}
