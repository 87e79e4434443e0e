package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

// Payment kinds recognized by the quote editor.
const (
	PagamentoPix      = "pix"
	PagamentoDinheiro = "dinheiro"
	PagamentoDebito   = "debito"
	PagamentoCredito  = "credito"
	PagamentoOutro    = "outro"
)

// FormaPagamento is the structured form of the free-text payment method the
// UI stores on a quote. Parcelas is only meaningful for credito; zero means
// "no installment plan found".
type FormaPagamento struct {
	Tipo     string
	Parcelas int
}

// UsaCartao reports whether the card total applies (credit or debit).
func (f FormaPagamento) UsaCartao() bool {
	return f.Tipo == PagamentoCredito || f.Tipo == PagamentoDebito
}

var parcelasRe = regexp.MustCompile(`(\d+)\s*x`)

// ParseFormaPagamento classifies a free-text payment method such as
// "Cartão de Crédito 6x", "Cartão de Débito", "PIX" or "Dinheiro".
// Matching is case-insensitive and tolerates missing accents. Malformed or
// absent installment markers never fail — they resolve to Parcelas 0.
func ParseFormaPagamento(texto string) FormaPagamento {
	s := strings.ToLower(texto)
	s = strings.NewReplacer("ã", "a", "é", "e", "í", "i", "ê", "e").Replace(s)

	fp := FormaPagamento{Tipo: PagamentoOutro}
	switch {
	case strings.Contains(s, "credito"):
		fp.Tipo = PagamentoCredito
	case strings.Contains(s, "debito"):
		fp.Tipo = PagamentoDebito
	case strings.Contains(s, "cartao"):
		// "Cartão 3x" without crédito/débito — treat as credit card
		fp.Tipo = PagamentoCredito
	case strings.Contains(s, "pix"):
		fp.Tipo = PagamentoPix
	case strings.Contains(s, "dinheiro"):
		fp.Tipo = PagamentoDinheiro
	}

	if m := parcelasRe.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			fp.Parcelas = n
		}
	}
	return fp
}
