package worker

// lembrete_cron.go
// Daily sweep over unpaid payables whose due date has passed. Sends a
// summary email to the company address so nothing slips through unnoticed.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/money"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type LembreteCron struct {
	contaRepo   repository.ContaPagarRepository
	empresaRepo repository.EmpresaRepository
	dispatcher  *Dispatcher
	interval    time.Duration
}

func NewLembreteCron(
	contaRepo repository.ContaPagarRepository,
	empresaRepo repository.EmpresaRepository,
	dispatcher *Dispatcher,
	interval time.Duration,
) *LembreteCron {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &LembreteCron{
		contaRepo:   contaRepo,
		empresaRepo: empresaRepo,
		dispatcher:  dispatcher,
		interval:    interval,
	}
}

// Start runs the sweep loop until ctx is cancelled. The first sweep fires
// shortly after startup so a restarted server catches up immediately.
func (c *LembreteCron) Start(ctx context.Context) {
	go func() {
		timer := time.NewTimer(time.Minute)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("lembrete_cron: shutting down")
				return
			case <-timer.C:
				c.sweep(ctx)
				timer.Reset(c.interval)
			}
		}
	}()
	log.Info().Dur("interval", c.interval).Msg("lembrete_cron: started")
}

func (c *LembreteCron) sweep(ctx context.Context) {
	vencidas, err := c.contaRepo.ListVencidas(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("lembrete_cron: failed to list overdue payables")
		return
	}
	if len(vencidas) == 0 {
		log.Debug().Msg("lembrete_cron: no overdue payables")
		return
	}

	empresa, err := c.empresaRepo.Get(ctx)
	if err != nil || empresa.Email == nil || *empresa.Email == "" {
		log.Warn().Int("vencidas", len(vencidas)).Msg("lembrete_cron: no company email configured, skipping reminder")
		return
	}

	var sb strings.Builder
	total := decimal.Zero
	sb.WriteString("As seguintes contas a pagar estão vencidas:\n\n")
	for _, v := range vencidas {
		sb.WriteString(fmt.Sprintf("- %s — %s (venceu em %s)\n",
			v.Nome, money.FormatBRL(v.Valor), v.Vencimento.Format("02/01/2006")))
		total = total.Add(v.Valor)
	}
	sb.WriteString(fmt.Sprintf("\nTotal vencido: %s\n", money.FormatBRL(total)))

	payload := EmailJobPayload{
		ToEmail: *empresa.Email,
		Subject: fmt.Sprintf("Lembrete: %d conta(s) a pagar vencida(s)", len(vencidas)),
		Body:    sb.String(),
	}
	if err := c.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("lembrete_cron: failed to enqueue reminder email")
		return
	}
	log.Info().Int("vencidas", len(vencidas)).Msg("lembrete_cron: reminder enqueued")
}
