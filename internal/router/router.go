package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Omar25092001/Backend-Ofertas/internal/config"
	"github.com/Omar25092001/Backend-Ofertas/internal/handler"
	"github.com/Omar25092001/Backend-Ofertas/internal/infra"
	"github.com/Omar25092001/Backend-Ofertas/internal/middleware"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
	"github.com/Omar25092001/Backend-Ofertas/internal/repository"
	"github.com/Omar25092001/Backend-Ofertas/internal/service"
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
	r.Use(middleware.RateLimiter(rdb, "api", 1000, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	favoritos := infra.NewFavoritosRedis(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	supermercadoRepo := repository.NewSupermercadoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ofertaRepo := repository.NewOfertaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	supermercadoSvc := service.NewSupermercadoService(supermercadoRepo)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo)
	ofertaSvc := service.NewOfertaService(ofertaRepo, productoRepo, supermercadoRepo, favoritos)

	// ── Handlers ─────────────────────────────────────────────────────────────
	usuariosH := handler.NewUsuariosHandler(authSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	supermercadosH := handler.NewSupermercadosHandler(supermercadoSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ofertasH := handler.NewOfertasHandler(ofertaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminMW := middleware.RequireRole(model.RolAdministrador)

	usuarios := r.Group("/usuarios")
	{
		usuarios.POST("/registro", usuariosH.Registrar)
		usuarios.POST("/login", middleware.LoginRateLimiter(rdb), usuariosH.Login)
		usuarios.POST("/refresh", usuariosH.Refresh)
		usuarios.GET("/perfil", jwtMW, usuariosH.Perfil)

		// Admin user management
		usuarios.GET("", jwtMW, adminMW, usuariosH.Listar)
		usuarios.GET("/:id", jwtMW, adminMW, usuariosH.ObtenerPorID)
		usuarios.PUT("/:id", jwtMW, adminMW, usuariosH.Actualizar)
		usuarios.PATCH("/:id/rol", jwtMW, adminMW, usuariosH.CambiarRol)
		usuarios.DELETE("/:id", jwtMW, adminMW, usuariosH.Eliminar)
	}

	categorias := r.Group("/categorias")
	{
		categorias.GET("", categoriasH.Listar)
		categorias.GET("/:id", categoriasH.ObtenerPorID)
		categorias.GET("/:id/productos", productosH.ListarPorCategoria)
		categorias.POST("", jwtMW, adminMW, categoriasH.Crear)
		categorias.PUT("/:id", jwtMW, adminMW, categoriasH.Actualizar)
		categorias.DELETE("/:id", jwtMW, adminMW, categoriasH.Eliminar)
	}

	supermercados := r.Group("/supermercados")
	{
		supermercados.GET("", supermercadosH.Listar)
		supermercados.GET("/buscar", supermercadosH.Buscar)
		supermercados.GET("/estadisticas", jwtMW, adminMW, supermercadosH.Estadisticas)
		supermercados.GET("/:id", supermercadosH.ObtenerPorID)
		supermercados.GET("/:id/ofertas", ofertasH.ListarPorSupermercado)
		supermercados.POST("", jwtMW, adminMW, supermercadosH.Crear)
		supermercados.PUT("/:id", jwtMW, adminMW, supermercadosH.Actualizar)
		supermercados.DELETE("/:id", jwtMW, adminMW, supermercadosH.Eliminar)
	}

	productos := r.Group("/productos")
	{
		productos.GET("", productosH.Listar)
		productos.GET("/buscar", productosH.Buscar)
		productos.GET("/:id", productosH.ObtenerPorID)
		productos.GET("/:id/ofertas", ofertasH.ListarPorProducto)
		productos.POST("", jwtMW, adminMW, productosH.Crear)
		productos.PUT("/:id", jwtMW, adminMW, productosH.Actualizar)
		productos.DELETE("/:id", jwtMW, adminMW, productosH.Eliminar)
	}

	ofertas := r.Group("/ofertas")
	{
		ofertas.GET("", ofertasH.Listar)
		ofertas.GET("/buscar", ofertasH.Buscar)
		ofertas.GET("/:id", ofertasH.ObtenerPorID)
		ofertas.POST("/:id/reportar", jwtMW, ofertasH.Reportar)
		ofertas.POST("/:id/favorito", jwtMW, ofertasH.MarcarFavorito)
		ofertas.DELETE("/:id/favorito", jwtMW, ofertasH.QuitarFavorito)
		ofertas.POST("", jwtMW, adminMW, ofertasH.Crear)
		ofertas.PUT("/:id", jwtMW, adminMW, ofertasH.Actualizar)
		ofertas.PATCH("/:id/invalidar", jwtMW, middleware.RequireRole(model.RolAdministrador, model.RolModerador), ofertasH.Invalidar)
		ofertas.DELETE("/:id", jwtMW, adminMW, ofertasH.Eliminar)
	}

	return r
}
