package router

import (
	"time"

	"farmavita/internal/config"
	"farmavita/internal/handler"
	"farmavita/internal/infra"
	"farmavita/internal/middleware"
	"farmavita/internal/repository"
	"farmavita/internal/service"
	"farmavita/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, reportDB *sqlx.DB, dispatcher *worker.Dispatcher) *gin.Engine {
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
	lookupCache := infra.NewLookupCache(time.Duration(cfg.LookupCacheTTL)*time.Second, nil)

	// ── Repositories ─────────────────────────────────────────────────────────
	personaRepo := repository.NewPersonaRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	sucursalRepo := repository.NewSucursalRepository(db)
	aperturaRepo := repository.NewAperturaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	trasladoRepo := repository.NewTrasladoRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(personaRepo, cfg)
	personaSvc := service.NewPersonaService(personaRepo, catalogoRepo)
	catalogoSvc := service.NewCatalogoService(catalogoRepo, lookupCache)
	sucursalSvc := service.NewSucursalService(sucursalRepo, personaRepo)
	cajaSvc := service.NewCajaService(aperturaRepo, sucursalRepo)
	productoSvc := service.NewProductoService(productoRepo, catalogoRepo, proveedorRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	inventarioSvc := service.NewInventarioService(inventarioRepo, productoRepo)
	trasladoSvc := service.NewTrasladoService(trasladoRepo, sucursalRepo, inventarioSvc)
	ordenSvc := service.NewOrdenService(ordenRepo, proveedorRepo, sucursalRepo, inventarioSvc)
	facturaSvc := service.NewFacturaService(facturaRepo, cajaSvc, inventarioSvc, productoRepo, sucursalRepo, dispatcher)
	reporteSvc := service.NewReporteService(reportDB)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	personasH := handler.NewPersonasHandler(personaSvc)
	catalogosH := handler.NewCatalogosHandler(catalogoSvc)
	sucursalesH := handler.NewSucursalesHandler(sucursalSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	trasladosH := handler.NewTrasladosHandler(trasladoSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/precio/:codigo", consultaH.GetPrecioPorCodigoBarras)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cajero, supervisor, administrador — declared per-group
		v1.PUT("/auth/password", middleware.RequireRole("cajero", "supervisor", "administrador"), authH.CambiarPassword)

		// Facturación — cajero emits, supervisor/administrador can void
		v1.POST("/facturas", middleware.RequireRole("cajero", "supervisor", "administrador"), facturasH.Emitir)
		v1.GET("/facturas", middleware.RequireRole("cajero", "supervisor", "administrador"), facturasH.Listar)
		v1.GET("/facturas/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), facturasH.Obtener)
		v1.DELETE("/facturas/:id", middleware.RequireRole("supervisor", "administrador"), facturasH.Anular)

		caja := v1.Group("/caja", middleware.RequireRole("cajero", "supervisor", "administrador"))
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.POST("/cerrar", cajaH.Cerrar)
			caja.GET("/activa", cajaH.ObtenerActiva)
		}
		v1.GET("/caja/historial", middleware.RequireRole("supervisor", "administrador"), cajaH.Historial)

		// Productos — all authenticated roles can read (POS catalog)
		v1.GET("/productos", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.Listar)
		v1.GET("/productos/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.Obtener)
		v1.GET("/barcode/:codigo", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.ObtenerPorCodigoBarras)
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.Guardar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		inv := v1.Group("/inventario", middleware.RequireRole("supervisor", "administrador"))
		{
			inv.GET("/:id", inventarioH.Obtener)
			inv.POST("/agregar", inventarioH.AgregarProducto)
			inv.POST("/quitar", inventarioH.QuitarProducto)
			inv.POST("/actualizar", inventarioH.ActualizarProducto)
			inv.POST("/trasladar", inventarioH.Trasladar)
			inv.POST("/clonar", inventarioH.Clonar)
		}
		v1.GET("/alertas", middleware.RequireRole("supervisor", "administrador"), inventarioH.Alertas)

		tras := v1.Group("/traslados", middleware.RequireRole("supervisor", "administrador"))
		{
			tras.POST("", trasladosH.Crear)
			tras.GET("", trasladosH.Listar)
			tras.GET("/:id", trasladosH.Obtener)
			tras.POST("/:id/procesar", trasladosH.Procesar)
			tras.DELETE("/:id", trasladosH.Anular)
		}

		ordenes := v1.Group("/ordenes", middleware.RequireRole("supervisor", "administrador"))
		{
			ordenes.POST("", ordenesH.Crear)
			ordenes.GET("", ordenesH.Listar)
			ordenes.GET("/:id", ordenesH.Obtener)
			ordenes.POST("/:id/confirmar", ordenesH.Confirmar)
			ordenes.DELETE("/:id", ordenesH.Anular)
		}

		prov := v1.Group("/proveedores", middleware.RequireRole("administrador"))
		{
			prov.POST("", proveedoresH.Guardar)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.Obtener)
			prov.DELETE("/:id", proveedoresH.Desactivar)
		}

		personas := v1.Group("/personas", middleware.RequireRole("administrador"))
		{
			personas.POST("", personasH.Guardar)
			personas.GET("", personasH.Listar)
			personas.GET("/:id", personasH.Obtener)
			personas.DELETE("/:id", personasH.Desactivar)
			personas.PATCH("/:id/reactivar", personasH.Reactivar)
		}

		suc := v1.Group("/sucursales", middleware.RequireRole("administrador"))
		{
			suc.POST("", sucursalesH.Guardar)
			suc.GET("/:id", sucursalesH.Obtener)
			suc.DELETE("/:id", sucursalesH.Desactivar)
		}
		v1.POST("/cajas", middleware.RequireRole("administrador"), sucursalesH.GuardarCaja)
		v1.DELETE("/cajas/:id", middleware.RequireRole("administrador"), sucursalesH.DesactivarCaja)
		// Reads open to all authenticated roles (branch/till pickers)
		v1.GET("/sucursales", middleware.RequireRole("cajero", "supervisor", "administrador"), sucursalesH.Listar)
		v1.GET("/cajas", middleware.RequireRole("cajero", "supervisor", "administrador"), sucursalesH.ListarCajas)

		// Catálogos — lookups readable by everyone, writes administrador only
		cat := v1.Group("/catalogos")
		{
			read := middleware.RequireRole("cajero", "supervisor", "administrador")
			cat.GET("/roles", read, catalogosH.ListarRoles)
			cat.GET("/departamentos", read, catalogosH.ListarDepartamentos)
			cat.GET("/municipios", read, catalogosH.ListarMunicipios)
			cat.GET("/generos", read, catalogosH.ListarGeneros)
			cat.GET("/estados-civiles", read, catalogosH.ListarEstadosCiviles)
			cat.GET("/turnos", read, catalogosH.ListarTurnos)
			cat.GET("/categorias", read, catalogosH.ListarCategorias)

			admin := middleware.RequireRole("administrador")
			cat.POST("/roles", admin, catalogosH.GuardarRol)
			cat.DELETE("/roles/:id", admin, catalogosH.EliminarRol)
			cat.POST("/departamentos", admin, catalogosH.GuardarDepartamento)
			cat.DELETE("/departamentos/:id", admin, catalogosH.EliminarDepartamento)
			cat.POST("/municipios", admin, catalogosH.GuardarMunicipio)
			cat.DELETE("/municipios/:id", admin, catalogosH.EliminarMunicipio)
			cat.POST("/generos", admin, catalogosH.GuardarGenero)
			cat.DELETE("/generos/:id", admin, catalogosH.EliminarGenero)
			cat.POST("/estados-civiles", admin, catalogosH.GuardarEstadoCivil)
			cat.DELETE("/estados-civiles/:id", admin, catalogosH.EliminarEstadoCivil)
			cat.POST("/turnos", admin, catalogosH.GuardarTurno)
			cat.DELETE("/turnos/:id", admin, catalogosH.EliminarTurno)
			cat.POST("/categorias", admin, catalogosH.GuardarCategoria)
			cat.DELETE("/categorias/:id", admin, catalogosH.EliminarCategoria)
		}

		rep := v1.Group("/reportes", middleware.RequireRole("supervisor", "administrador"))
		{
			rep.GET("/ventas-diarias", reportesH.VentasDiarias)
			rep.GET("/valorizacion", reportesH.ValorizacionInventario)
			rep.GET("/stock-bajo", reportesH.StockBajo)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
