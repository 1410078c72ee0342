package router

import (
	"time"

	"tiendapos/internal/config"
	"tiendapos/internal/domain"
	"tiendapos/internal/handler"
	"tiendapos/internal/infra"
	"tiendapos/internal/middleware"
	"tiendapos/internal/repository"
	"tiendapos/internal/service"
	"tiendapos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	precioCache := infra.NewPrecioCache(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)

	// Worker dispatcher; injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, movimientoStockRepo, precioCache)
	cajaSvc := service.NewCajaService(cajaRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, cajaRepo, clienteRepo, movimientoStockRepo, dispatcher, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo, productoRepo)
	compraSvc := service.NewCompraService(compraRepo, proveedorRepo, productoRepo, movimientoStockRepo, cfg)
	reporteSvc := service.NewReporteService(ventaRepo, productoRepo, cajaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductoHandler(productoSvc)
	ventasH := handler.NewVentaHandler(ventaSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	clientesH := handler.NewClienteHandler(clienteSvc)
	proveedoresH := handler.NewProveedorHandler(proveedorSvc)
	comprasH := handler.NewCompraHandler(compraSvc)
	reportesH := handler.NewReporteHandler(reporteSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, precioCache)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check; no auth required
	r.GET("/v1/precio/:sku", consultaH.GetPrecioPorSKU)

	// Protected routes; every endpoint declares the capability it needs
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		ventas := v1.Group("/ventas")
		{
			ventas.POST("", middleware.RequirePermiso(domain.PermisoCrearVenta), ventasH.Registrar)
			ventas.POST("/cotizar", middleware.RequirePermiso(domain.PermisoCrearVenta), ventasH.Cotizar)
			ventas.GET("", middleware.RequirePermiso(domain.PermisoVerVentas), ventasH.List)
			ventas.GET("/:id", middleware.RequirePermiso(domain.PermisoVerVentas), ventasH.Get)
			ventas.POST("/:id/anular", middleware.RequirePermiso(domain.PermisoAnularVenta), ventasH.Anular)
		}

		productos := v1.Group("/productos")
		{
			productos.GET("", middleware.RequirePermiso(domain.PermisoVerProductos), productosH.List)
			productos.GET("/alertas", middleware.RequirePermiso(domain.PermisoVerProductos), productosH.Alertas)
			productos.GET("/:id", middleware.RequirePermiso(domain.PermisoVerProductos), productosH.Get)
			productos.GET("/:id/movimientos", middleware.RequirePermiso(domain.PermisoVerProductos), productosH.Movimientos)
			productos.POST("", middleware.RequirePermiso(domain.PermisoCrearProducto), productosH.Crear)
			productos.PUT("/:id", middleware.RequirePermiso(domain.PermisoEditarProducto), productosH.Actualizar)
			productos.DELETE("/:id", middleware.RequirePermiso(domain.PermisoEliminarProducto), productosH.Desactivar)
			productos.PATCH("/:id/reactivar", middleware.RequirePermiso(domain.PermisoEditarProducto), productosH.Reactivar)
			productos.POST("/:id/ajustar-stock", middleware.RequirePermiso(domain.PermisoAjustarStock), productosH.AjustarStock)
		}

		caja := v1.Group("/caja", middleware.RequirePermiso(domain.PermisoGestionarCaja))
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.POST("/transacciones", cajaH.RegistrarTransaccion)
			caja.POST("/cerrar", cajaH.Cerrar)
			caja.GET("/activa", cajaH.Activa)
			caja.GET("/:id", cajaH.Get)
		}
		v1.GET("/caja/historial", middleware.RequirePermiso(domain.PermisoVerReportesCaja), cajaH.Historial)

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", middleware.RequirePermiso(domain.PermisoVerClientes), clientesH.List)
			clientes.GET("/:id", middleware.RequirePermiso(domain.PermisoVerClientes), clientesH.Get)
			clientes.POST("", middleware.RequirePermiso(domain.PermisoGestionarClientes), clientesH.Crear)
			clientes.PUT("/:id", middleware.RequirePermiso(domain.PermisoGestionarClientes), clientesH.Actualizar)
			clientes.DELETE("/:id", middleware.RequirePermiso(domain.PermisoGestionarClientes), clientesH.Desactivar)
		}

		proveedores := v1.Group("/proveedores")
		{
			proveedores.GET("", middleware.RequirePermiso(domain.PermisoVerProveedores), proveedoresH.List)
			proveedores.GET("/:id", middleware.RequirePermiso(domain.PermisoVerProveedores), proveedoresH.Get)
			proveedores.GET("/:id/productos", middleware.RequirePermiso(domain.PermisoVerProveedores), proveedoresH.Productos)
			proveedores.POST("", middleware.RequirePermiso(domain.PermisoGestionarProveedores), proveedoresH.Crear)
			proveedores.PUT("/:id", middleware.RequirePermiso(domain.PermisoGestionarProveedores), proveedoresH.Actualizar)
			proveedores.DELETE("/:id", middleware.RequirePermiso(domain.PermisoGestionarProveedores), proveedoresH.Desactivar)
		}

		compras := v1.Group("/compras")
		{
			compras.GET("", middleware.RequirePermiso(domain.PermisoVerCompras), comprasH.List)
			compras.GET("/:id", middleware.RequirePermiso(domain.PermisoVerCompras), comprasH.Get)
			compras.GET("/:id/pagos", middleware.RequirePermiso(domain.PermisoVerCompras), comprasH.ListPagos)
			compras.POST("", middleware.RequirePermiso(domain.PermisoCrearOrdenCompra), comprasH.Crear)
			compras.PATCH("/:id/estado", middleware.RequirePermiso(domain.PermisoActualizarOrden), comprasH.CambiarEstado)
			compras.POST("/:id/recepcion", middleware.RequirePermiso(domain.PermisoActualizarOrden), comprasH.Recepcion)
			compras.POST("/:id/pagos", middleware.RequirePermiso(domain.PermisoPagarOrdenCompra), comprasH.RegistrarPago)
		}

		reportes := v1.Group("/reportes")
		{
			reportes.GET("/ventas", middleware.RequirePermiso(domain.PermisoVerReportes), reportesH.ResumenVentas)
			reportes.GET("/top-productos", middleware.RequirePermiso(domain.PermisoVerReportes), reportesH.TopProductos)
			reportes.GET("/margen", middleware.RequirePermiso(domain.PermisoVerReportesFinancieros), reportesH.MargenGanancia)
			reportes.GET("/cajas", middleware.RequirePermiso(domain.PermisoVerReportesCaja), reportesH.ResumenCajas)
		}

		usuarios := v1.Group("/usuarios", middleware.RequirePermiso(domain.PermisoGestionarUsuarios))
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}
	}

	// Swagger UI; only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
