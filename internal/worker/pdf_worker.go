package worker

// pdf_worker.go
// Processes quote export jobs from QueueOrcamentoPDF: renders the quote PDF
// with the current company profile, records the file path on the quote and
// optionally chains an email job to the customer.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/infra"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/money"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OrcamentoPDFJobPayload is the job envelope sent to QueueOrcamentoPDF.
type OrcamentoPDFJobPayload struct {
	OrcamentoID string  `json:"orcamento_id"`
	Email       *string `json:"email,omitempty"`
}

type OrcamentoPDFWorker struct {
	orcamentoRepo repository.OrcamentoRepository
	empresaRepo   repository.EmpresaRepository
	dispatcher    *Dispatcher
	storagePath   string
}

func NewOrcamentoPDFWorker(
	orcamentoRepo repository.OrcamentoRepository,
	empresaRepo repository.EmpresaRepository,
	dispatcher *Dispatcher,
	storagePath string,
) *OrcamentoPDFWorker {
	return &OrcamentoPDFWorker{
		orcamentoRepo: orcamentoRepo,
		empresaRepo:   empresaRepo,
		dispatcher:    dispatcher,
		storagePath:   storagePath,
	}
}

func (w *OrcamentoPDFWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload OrcamentoPDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("pdf_worker: invalid payload")
		return
	}

	id, err := uuid.Parse(payload.OrcamentoID)
	if err != nil {
		log.Error().Str("orcamento_id", payload.OrcamentoID).Msg("pdf_worker: invalid orcamento_id")
		return
	}

	orcamento, err := w.orcamentoRepo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("orcamento_id", payload.OrcamentoID).Msg("pdf_worker: orcamento not found")
		return
	}

	// A missing company profile is tolerated — the PDF renders with an
	// empty header until the profile is filled in.
	empresa, err := w.empresaRepo.Get(ctx)
	if err != nil {
		empresa = &model.Empresa{}
	}

	pdfPath, err := infra.GerarOrcamentoPDF(orcamento, empresa, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("orcamento_id", payload.OrcamentoID).Msg("pdf_worker: PDF generation failed")
		return
	}

	if err := w.orcamentoRepo.UpdatePDFPath(ctx, id, pdfPath); err != nil {
		log.Warn().Err(err).Str("orcamento_id", payload.OrcamentoID).Msg("pdf_worker: failed to record pdf path")
	}
	log.Info().Str("pdf", pdfPath).Str("orcamento_id", payload.OrcamentoID).Msg("pdf_worker: PDF generated")

	if payload.Email != nil && *payload.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.Email,
			Subject: fmt.Sprintf("Orçamento Nº %d — %s", orcamento.Numero, empresa.Nome),
			Body: fmt.Sprintf("Segue em anexo o orçamento Nº %d.\nTotal à vista: %s",
				orcamento.Numero, money.FormatBRL(orcamento.TotalVista)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.Email).Msg("pdf_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.Email).Msg("pdf_worker: email job enqueued")
		}
	}
}
