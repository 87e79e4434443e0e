//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/e2e/... -v
//
// These tests:
//   - Full quote cycle (login → create produto/cliente → quote → totals)
//   - Status transitions enforced over HTTP
//   - Accounts payable series creation and cascade delete
//   - Quote numbering survives concurrent creation (sequence-backed)

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/config"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/infra"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("maxcontrol_test"),
		tcPostgres.WithUsername("maxcontrol"),
		tcPostgres.WithPassword("maxcontrol"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		SugestaoSidecarURL: "http://localhost:9999", // unused in e2e tests
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
		AcrescimoCartaoPct: "15",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("maxcontrol2026"), bcrypt.DefaultCost)
	require.NoError(t, err)
	err = db.Exec(`INSERT INTO usuarios (id, username, nome, password_hash, rol, ativo, created_at)
		VALUES (gen_random_uuid(), 'admin@e2e.test', 'Admin E2E', ?, 'administrador', true, NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error
	require.NoError(t, err)

	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := router.New(cfg, db, rdb, cb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin@e2e.test", "password": "maxcontrol2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{
		server: srv,
		token:  loginBody.AccessToken,
		engine: r,
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullQuoteCycle(t *testing.T) {
	env := setupTestEnv(t)

	// 1. Create produto (m2 pricing)
	prodResp := do(t, env.server, "POST", "/v1/produtos",
		jsonBody(t, map[string]any{
			"nome":           "Lona banner",
			"modelo_preco":   "m2",
			"preco_unitario": "50.00",
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	// 2. Create cliente
	cliResp := do(t, env.server, "POST", "/v1/clientes",
		jsonBody(t, map[string]any{"nome": "Padaria Central"}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, cliResp.StatusCode)
	var cli struct {
		ID string `json:"id"`
	}
	decodeJSON(t, cliResp, &cli)

	// 3. Create quote: 2m x 1m banner, 10% discount, credit card 4x
	quoteBody := map[string]any{
		"cliente_id": cli.ID,
		"itens": []map[string]any{
			{"produto_id": prod.ID, "largura": "2", "altura": "1", "pecas": 1},
		},
		"desconto_tipo":   "percentual",
		"desconto_valor":  "10",
		"forma_pagamento": "Cartão de Crédito 4x",
	}
	quoteResp := do(t, env.server, "POST", "/v1/orcamentos", jsonBody(t, quoteBody), env.token)
	require.Equal(t, http.StatusCreated, quoteResp.StatusCode)
	var quote struct {
		ID     string `json:"id"`
		Numero int    `json:"numero"`
		Status string `json:"status"`
		Totais struct {
			Subtotal          string `json:"subtotal"`
			TotalVista        string `json:"total_vista"`
			TotalCartao       string `json:"total_cartao"`
			TextoParcelamento string `json:"texto_parcelamento"`
		} `json:"totais"`
	}
	decodeJSON(t, quoteResp, &quote)

	assert.Equal(t, 1, quote.Numero)
	assert.Equal(t, "rascunho", quote.Status)
	// 2m2 * 50 = 100, -10% = 90, card +15% = 103.5
	assert.Equal(t, "100", quote.Totais.Subtotal)
	assert.Equal(t, "90", quote.Totais.TotalVista)
	assert.Equal(t, "103.5", quote.Totais.TotalCartao)
	assert.NotEmpty(t, quote.Totais.TextoParcelamento)

	// 4. List quotes
	listResp := do(t, env.server, "GET", "/v1/orcamentos", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.Equal(t, int64(1), list.Total)
}

func TestE2E_StatusTransitions(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, "POST", "/v1/produtos",
		jsonBody(t, map[string]any{
			"nome":           "Placa PVC",
			"modelo_preco":   "unidade",
			"preco_unitario": "80.00",
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	quoteResp := do(t, env.server, "POST", "/v1/orcamentos",
		jsonBody(t, map[string]any{
			"itens": []map[string]any{{"produto_id": prod.ID, "quantidade": "1"}},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, quoteResp.StatusCode)
	var quote struct {
		ID string `json:"id"`
	}
	decodeJSON(t, quoteResp, &quote)

	// rascunho -> aprovado must be rejected
	resp := do(t, env.server, "PATCH", "/v1/orcamentos/"+quote.ID+"/status",
		jsonBody(t, map[string]string{"status": "aprovado"}), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// rascunho -> enviado -> aprovado is the happy path
	resp = do(t, env.server, "PATCH", "/v1/orcamentos/"+quote.ID+"/status",
		jsonBody(t, map[string]string{"status": "enviado"}), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, env.server, "PATCH", "/v1/orcamentos/"+quote.ID+"/status",
		jsonBody(t, map[string]string{"status": "aprovado"}), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// editing an approved quote is rejected
	resp = do(t, env.server, "PUT", "/v1/orcamentos/"+quote.ID,
		jsonBody(t, map[string]any{
			"itens": []map[string]any{{"produto_id": prod.ID, "quantidade": "2"}},
		}),
		env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestE2E_ContaPagarSerie(t *testing.T) {
	env := setupTestEnv(t)

	// Create a 3-parcel monthly series from a month-end date
	createResp := do(t, env.server, "POST", "/v1/contas-pagar",
		jsonBody(t, map[string]any{
			"nome":            "Impressora",
			"valor":           "100.00",
			"vencimento":      "2025-01-31",
			"parcelado":       true,
			"numero_parcelas": 3,
			"cadencia":        "mensal",
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var contas []struct {
		ID         string  `json:"id"`
		Valor      string  `json:"valor"`
		Vencimento string  `json:"vencimento"`
		SerieID    *string `json:"serie_id"`
	}
	decodeJSON(t, createResp, &contas)
	require.Len(t, contas, 3)

	assert.Equal(t, "33.33", contas[0].Valor)
	assert.Equal(t, "33.34", contas[2].Valor)
	assert.Equal(t, "2025-02-28", contas[1].Vencimento)
	require.NotNil(t, contas[0].SerieID)

	// Cascade delete by series
	delResp := do(t, env.server, "DELETE", "/v1/contas-pagar/serie/"+*contas[0].SerieID, nil, env.token)
	require.Equal(t, http.StatusOK, delResp.StatusCode)
	var del struct {
		Removidas int64 `json:"removidas"`
	}
	decodeJSON(t, delResp, &del)
	assert.Equal(t, int64(3), del.Removidas)
}

func TestE2E_NumeracaoConcorrente(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, "POST", "/v1/produtos",
		jsonBody(t, map[string]any{
			"nome":           "Adesivo",
			"modelo_preco":   "unidade",
			"preco_unitario": "5.00",
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	const n = 10
	numeros := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := do(t, env.server, "POST", "/v1/orcamentos",
				jsonBody(t, map[string]any{
					"itens": []map[string]any{{"produto_id": prod.ID, "quantidade": "1"}},
				}),
				env.token)
			var quote struct {
				Numero int `json:"numero"`
			}
			decodeJSON(t, resp, &quote)
			numeros <- quote.Numero
		}()
	}
	wg.Wait()
	close(numeros)

	seen := make(map[int]bool)
	for numero := range numeros {
		assert.False(t, seen[numero], "numero %d duplicado", numero)
		seen[numero] = true
	}
	assert.Len(t, seen, n)
}
