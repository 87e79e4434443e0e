package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func data(ano int, mes time.Month, dia int) time.Time {
	return time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)
}

func TestGerarParcelasCountInvalido(t *testing.T) {
	_, err := GerarParcelas(dec("100"), data(2025, time.January, 10), 0, CadenciaMensal)
	require.Error(t, err)

	_, err = GerarParcelas(dec("100"), data(2025, time.January, 10), -3, CadenciaMensal)
	require.Error(t, err)
}

func TestGerarParcelasUnica(t *testing.T) {
	inicio := data(2025, time.March, 5)
	parcelas, err := GerarParcelas(dec("250.40"), inicio, 1, CadenciaMensal)
	require.NoError(t, err)
	require.Len(t, parcelas, 1)
	assert.True(t, parcelas[0].Valor.Equal(dec("250.40")))
	assert.Equal(t, inicio, parcelas[0].Vencimento)
}

// R$100 in 3 monthly parcels starting Jan 31: the remainder goes to the last
// parcel and month ends clamp (Feb 28, Mar 31).
func TestGerarParcelasMensalComAjusteDeFimDeMes(t *testing.T) {
	parcelas, err := GerarParcelas(dec("100.00"), data(2025, time.January, 31), 3, CadenciaMensal)
	require.NoError(t, err)
	require.Len(t, parcelas, 3)

	assert.True(t, parcelas[0].Valor.Equal(dec("33.33")))
	assert.True(t, parcelas[1].Valor.Equal(dec("33.33")))
	assert.True(t, parcelas[2].Valor.Equal(dec("33.34")))

	assert.Equal(t, data(2025, time.January, 31), parcelas[0].Vencimento)
	assert.Equal(t, data(2025, time.February, 28), parcelas[1].Vencimento)
	assert.Equal(t, data(2025, time.March, 31), parcelas[2].Vencimento)
}

func TestGerarParcelasAnoBissexto(t *testing.T) {
	parcelas, err := GerarParcelas(dec("60.00"), data(2024, time.January, 31), 2, CadenciaMensal)
	require.NoError(t, err)
	assert.Equal(t, data(2024, time.February, 29), parcelas[1].Vencimento)
}

func TestGerarParcelasViradaDeAno(t *testing.T) {
	parcelas, err := GerarParcelas(dec("90.00"), data(2025, time.November, 15), 3, CadenciaMensal)
	require.NoError(t, err)
	assert.Equal(t, data(2025, time.December, 15), parcelas[1].Vencimento)
	assert.Equal(t, data(2026, time.January, 15), parcelas[2].Vencimento)
}

func TestGerarParcelasSemanal(t *testing.T) {
	inicio := data(2025, time.June, 2)
	parcelas, err := GerarParcelas(dec("40.00"), inicio, 4, CadenciaSemanal)
	require.NoError(t, err)
	require.Len(t, parcelas, 4)
	for i, p := range parcelas {
		assert.Equal(t, inicio.AddDate(0, 0, 7*i), p.Vencimento)
		assert.True(t, p.Valor.Equal(dec("10.00")))
	}
}

// The sum of the parcels must reproduce the original total exactly for any
// count — the last parcel absorbs all rounding error.
func TestGerarParcelasSomaExata(t *testing.T) {
	totais := []string{"100.00", "0.01", "999.99", "123.45", "1000.00", "33.33"}
	for _, s := range totais {
		total := dec(s)
		for n := 1; n <= 24; n++ {
			parcelas, err := GerarParcelas(total, data(2025, time.May, 10), n, CadenciaMensal)
			require.NoError(t, err)
			require.Len(t, parcelas, n)

			soma := decimal.Zero
			for _, p := range parcelas {
				soma = soma.Add(p.Valor)
			}
			assert.True(t, soma.Equal(total), "total=%s n=%d soma=%s", total, n, soma)
		}
	}
}
