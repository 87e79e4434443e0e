package infra

// pdf.go — quote PDF export using go-pdf/fpdf.
// Generates an A4 document with:
//   - Company header (name, CNPJ, contact block)
//   - Quote number, date and salesperson
//   - Customer block
//   - Item table (product, quantity, unit price, line total)
//   - Discount line (if applicable)
//   - Cash total, card total and the installment line
//
// The output file is saved to storagePath/orcamento_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/money"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/pricing"

	"github.com/go-pdf/fpdf"
)

// GerarOrcamentoPDF renders a quote as an A4 PDF. storagePath is the
// directory where the file is written (created if needed). Returns the
// absolute path to the generated file.
func GerarOrcamentoPDF(orcamento *model.Orcamento, empresa *model.Empresa, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("orcamento_%d.pdf", orcamento.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252, covers pt-BR accents

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30 // total margins = 30mm

	// ── Company header ───────────────────────────────────────────────────────
	if empresa.LogotipoPath != nil && *empresa.LogotipoPath != "" {
		if _, err := os.Stat(*empresa.LogotipoPath); err == nil {
			pdf.ImageOptions(*empresa.LogotipoPath, 15, 12, 28, 0, false,
				fpdf.ImageOptions{ReadDpi: true}, 0, "")
			pdf.SetX(48)
		}
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, tr(empresa.Nome), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if empresa.CNPJ != nil && *empresa.CNPJ != "" {
		pdf.CellFormat(contentW, 5, "CNPJ: "+*empresa.CNPJ, "", 1, "L", false, 0, "")
	}
	for _, linha := range []*string{empresa.Endereco, empresa.Telefone, empresa.Email, empresa.Site} {
		if linha != nil && *linha != "" {
			pdf.CellFormat(contentW, 5, tr(*linha), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	// ── Quote info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(fmt.Sprintf("Orçamento Nº %d", orcamento.Numero)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Data: "+orcamento.CreatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if orcamento.Usuario != nil {
		pdf.CellFormat(contentW, 5, tr("Vendedor: "+orcamento.Usuario.Nome), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Customer block ───────────────────────────────────────────────────────
	if orcamento.Cliente != nil {
		c := orcamento.Cliente
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Cliente", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, tr(c.Nome), "", 1, "L", false, 0, "")
		if c.Documento != nil && *c.Documento != "" {
			pdf.CellFormat(contentW, 5, "CPF/CNPJ: "+*c.Documento, "", 1, "L", false, 0, "")
		}
		if c.Telefone != nil && *c.Telefone != "" {
			pdf.CellFormat(contentW, 5, "Telefone: "+*c.Telefone, "", 1, "L", false, 0, "")
		}
		if c.Endereco != nil && *c.Endereco != "" {
			endereco := *c.Endereco
			if c.Cidade != nil && *c.Cidade != "" {
				endereco += " - " + *c.Cidade
			}
			pdf.CellFormat(contentW, 5, tr(endereco), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	// ── Items table ──────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // product name
	col2 := contentW * 0.16 // quantity
	col3 := contentW * 0.19 // unit price
	col4 := contentW * 0.19 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(col1, 7, "Produto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(col2, 7, "Qtd.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(col3, 7, tr("Preço unit."), "1", 0, "R", true, 0, "")
	pdf.CellFormat(col4, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range orcamento.Itens {
		nome := item.ProdutoNome
		if item.ModeloPreco == model.ModeloPrecoM2 && item.Largura != nil && item.Altura != nil {
			pecas := 1
			if item.Pecas != nil {
				pecas = *item.Pecas
			}
			nome = fmt.Sprintf("%s (%s x %s m, %d pç)",
				nome, item.Largura.StringFixed(2), item.Altura.StringFixed(2), pecas)
		}
		qtd := item.Quantidade.StringFixed(2)
		if item.ModeloPreco == model.ModeloPrecoM2 {
			qtd += " m²"
		}
		pdf.CellFormat(col1, 6, tr(nome), "1", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, tr(qtd), "1", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, tr(money.FormatBRL(item.PrecoUnitario)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, tr(money.FormatBRL(item.PrecoTotal)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := col1 + col2 + col3
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, tr(money.FormatBRL(orcamento.Subtotal)), "", 1, "R", false, 0, "")

	if orcamento.DescontoTipo != model.DescontoNenhum && !orcamento.ValorDesconto.IsZero() {
		pdf.CellFormat(labelW, 6, "Desconto:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, tr("- "+money.FormatBRL(orcamento.ValorDesconto)), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 7, tr("Total à vista:"), "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, tr(money.FormatBRL(orcamento.TotalVista)), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 6, tr("Total no cartão:"), "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, tr(money.FormatBRL(orcamento.TotalCartao)), "", 1, "R", false, 0, "")

	// ── Payment line ─────────────────────────────────────────────────────────
	if orcamento.FormaPagamento != "" {
		pdf.Ln(3)
		fp := pricing.ParseFormaPagamento(orcamento.FormaPagamento)
		linha := "Forma de pagamento: " + orcamento.FormaPagamento
		valorBase := orcamento.TotalVista
		if fp.UsaCartao() {
			valorBase = orcamento.TotalCartao
		}
		if texto := pricing.TextoParcelamento(fp, valorBase); texto != "" {
			linha += " " + texto
		}
		pdf.CellFormat(contentW, 5, tr(linha), "", 1, "L", false, 0, "")
	}
	if !orcamento.SinalAplicado.IsZero() {
		pdf.CellFormat(contentW, 5, tr("Sinal aplicado: "+money.FormatBRL(orcamento.SinalAplicado)), "", 1, "L", false, 0, "")
	}

	// ── Notes ────────────────────────────────────────────────────────────────
	if orcamento.Observacoes != nil && *orcamento.Observacoes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, tr("Observações"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, tr(*orcamento.Observacoes), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
