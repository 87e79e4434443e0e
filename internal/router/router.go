package router

import (
	"time"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/config"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/handler"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/infra"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/middleware"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/pricing"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/repository"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/service"
	"github.com/SttarkMax/MaxControlOK-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, sugestaoCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	sugestaoClient := infra.NewSugestaoClient(cfg.SugestaoSidecarURL)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)
	orcamentoRepo := repository.NewOrcamentoRepository(db)
	contaPagarRepo := repository.NewContaPagarRepository(db)
	empresaRepo := repository.NewEmpresaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	fornecedorSvc := service.NewFornecedorService(fornecedorRepo, produtoRepo)
	empresaSvc := service.NewEmpresaService(empresaRepo)
	contaPagarSvc := service.NewContaPagarService(contaPagarRepo)
	sugestaoSvc := service.NewSugestaoService(sugestaoClient, sugestaoCB)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	calc := pricing.NewCalculadora(cfg.AcrescimoCartao(pricing.DefaultAcrescimoCartaoPct))
	orcamentoSvc := service.NewOrcamentoService(orcamentoRepo, clienteRepo, produtoRepo, calc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	fornecedoresH := handler.NewFornecedoresHandler(fornecedorSvc)
	orcamentosH := handler.NewOrcamentosHandler(orcamentoSvc, sugestaoSvc)
	contasPagarH := handler.NewContasPagarHandler(contaPagarSvc)
	empresaH := handler.NewEmpresaHandler(empresaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, sugestaoCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		todos := middleware.RequireRole("vendedor", "gerente", "administrador")
		gestao := middleware.RequireRole("gerente", "administrador")
		admin := middleware.RequireRole("administrador")

		// Orcamentos — every role works with quotes; deletion is gated
		v1.POST("/orcamentos", todos, orcamentosH.Criar)
		v1.GET("/orcamentos", todos, orcamentosH.Listar)
		v1.POST("/orcamentos/preview", todos, orcamentosH.Preview)
		v1.POST("/orcamentos/sugestao", todos, orcamentosH.SugerirTexto)
		v1.GET("/orcamentos/:id", todos, orcamentosH.ObterPorID)
		v1.PUT("/orcamentos/:id", todos, orcamentosH.Atualizar)
		v1.PATCH("/orcamentos/:id/status", todos, orcamentosH.AtualizarStatus)
		v1.POST("/orcamentos/:id/pdf", todos, orcamentosH.ExportarPDF)
		v1.DELETE("/orcamentos/:id", gestao, orcamentosH.Excluir)

		// Produtos — all roles read, gestao writes
		v1.GET("/produtos", todos, produtosH.Listar)
		v1.GET("/produtos/:id", todos, produtosH.ObterPorID)
		produtos := v1.Group("/produtos", gestao)
		{
			produtos.POST("", produtosH.Criar)
			produtos.PUT("/:id", produtosH.Atualizar)
			produtos.DELETE("/:id", produtosH.Desativar)
			produtos.PATCH("/:id/reativar", produtosH.Reativar)
		}

		// Clientes — all roles read and write (vendedores cadastram clientes)
		v1.GET("/clientes", todos, clientesH.Listar)
		v1.GET("/clientes/:id", todos, clientesH.ObterPorID)
		v1.POST("/clientes", todos, clientesH.Criar)
		v1.PUT("/clientes/:id", todos, clientesH.Atualizar)
		v1.DELETE("/clientes/:id", gestao, clientesH.Desativar)

		// Fornecedores — gestao only
		fornecedores := v1.Group("/fornecedores", gestao)
		{
			fornecedores.POST("", fornecedoresH.Criar)
			fornecedores.GET("", fornecedoresH.Listar)
			fornecedores.GET("/:id", fornecedoresH.ObterPorID)
			fornecedores.PUT("/:id", fornecedoresH.Atualizar)
			fornecedores.DELETE("/:id", fornecedoresH.Desativar)
		}

		// Contas a pagar — gestao only
		contas := v1.Group("/contas-pagar", gestao)
		{
			contas.POST("", contasPagarH.Criar)
			contas.GET("", contasPagarH.Listar)
			contas.GET("/:id", contasPagarH.ObterPorID)
			contas.PUT("/:id", contasPagarH.Atualizar)
			contas.PATCH("/:id/pago", contasPagarH.AlternarPago)
			contas.DELETE("/:id", contasPagarH.Excluir)
			contas.DELETE("/serie/:serieId", contasPagarH.ExcluirSerie)
		}

		// Empresa — all roles read (PDF preview needs it), admin writes
		v1.GET("/empresa", todos, empresaH.Obter)
		v1.PUT("/empresa", admin, empresaH.Atualizar)

		// Usuarios — admin only
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
			usuarios.PATCH("/:id/reativar", usuariosH.Reativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
