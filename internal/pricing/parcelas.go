package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/money"
)

// Cadences for installment due dates.
const (
	CadenciaSemanal = "semanal"
	CadenciaMensal  = "mensal"
)

// Parcela is one installment of a split total.
type Parcela struct {
	Valor      decimal.Decimal
	Vencimento time.Time
}

// GerarParcelas splits total into n dated installments. Parcels 0..n-2 get
// the rounded per-installment value and the last one absorbs the remainder,
// so the amounts always sum back to total exactly.
// Due dates advance from inicio by i weeks (semanal) or i calendar months
// (mensal, day-of-month clamped to the target month).
func GerarParcelas(total decimal.Decimal, inicio time.Time, n int, cadencia string) ([]Parcela, error) {
	if n < 1 {
		return nil, fmt.Errorf("numero de parcelas deve ser pelo menos 1, recebido %d", n)
	}
	if n == 1 {
		return []Parcela{{Valor: total, Vencimento: inicio}}, nil
	}

	porParcela := money.Round2(total.Div(decimal.NewFromInt(int64(n))))
	ultima := total.Sub(porParcela.Mul(decimal.NewFromInt(int64(n - 1))))

	parcelas := make([]Parcela, 0, n)
	for i := 0; i < n; i++ {
		valor := porParcela
		if i == n-1 {
			valor = ultima
		}
		parcelas = append(parcelas, Parcela{
			Valor:      valor,
			Vencimento: avancar(inicio, i, cadencia),
		})
	}
	return parcelas, nil
}

func avancar(inicio time.Time, i int, cadencia string) time.Time {
	if i == 0 {
		return inicio
	}
	if cadencia == CadenciaSemanal {
		return inicio.AddDate(0, 0, 7*i)
	}
	return addMeses(inicio, i)
}

// addMeses adds calendar months preserving the day-of-month where possible.
// When the target month is shorter (Jan 31 + 1 month) the day clamps to the
// month's last valid day instead of overflowing into the next month, which
// is what time.AddDate would do.
func addMeses(t time.Time, meses int) time.Time {
	ano, mes, dia := t.Date()
	idx := int(mes) - 1 + meses
	ano += idx / 12
	mes = time.Month(idx%12 + 1)

	if ultimo := ultimoDia(ano, mes); dia > ultimo {
		dia = ultimo
	}
	return time.Date(ano, mes, dia, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// ultimoDia returns the number of days in the given month.
func ultimoDia(ano int, mes time.Month) int {
	return time.Date(ano, mes+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
