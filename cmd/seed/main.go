// cmd/seed — carga datos de demo de forma idempotente: categorias,
// supermercados, productos, ofertas y un usuario administrador.
// Uso: DATABASE_URL=... go run ./cmd/seed
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Omar25092001/Backend-Ofertas/internal/config"
	"github.com/Omar25092001/Backend-Ofertas/internal/infra"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	categorias := seedCategorias(db)
	supermercados := seedSupermercados(db)
	productos := seedProductos(db, categorias)
	seedOfertas(db, productos, supermercados)
	seedAdmin(db)

	log.Info().Msg("seed completado")
}

func seedCategorias(db *gorm.DB) map[string]model.Categoria {
	datos := []model.Categoria{
		{Nombre: "Electronica", Descripcion: ptr("Productos electronicos y tecnologicos")},
		{Nombre: "Alimentacion", Descripcion: ptr("Productos alimenticios")},
		{Nombre: "Hogar", Descripcion: ptr("Productos para el hogar")},
		{Nombre: "Deportes", Descripcion: ptr("Equipamiento deportivo")},
		{Nombre: "Bebidas", Descripcion: ptr("Bebidas alcoholicas y no alcoholicas")},
	}

	out := make(map[string]model.Categoria, len(datos))
	for _, c := range datos {
		var existente model.Categoria
		if err := db.Where("nombre = ?", c.Nombre).FirstOrCreate(&existente, c).Error; err != nil {
			log.Fatal().Err(err).Str("categoria", c.Nombre).Msg("seed categoria")
		}
		out[existente.Nombre] = existente
	}
	log.Info().Int("total", len(out)).Msg("categorias listas")
	return out
}

func seedSupermercados(db *gorm.DB) []model.Supermercado {
	datos := []model.Supermercado{
		{Nombre: "Totus", SitioWeb: ptr("https://www.totus.es")},
		{Nombre: "Econo", SitioWeb: ptr("https://www.econo.es")},
		{Nombre: "Supermercado 9", SitioWeb: ptr("https://www.supermercado9.es")},
		{Nombre: "Santa Isabel", SitioWeb: ptr("https://www.santaisabel.es")},
		{Nombre: "Don Pepe", SitioWeb: ptr("https://www.donpepe.es")},
	}

	out := make([]model.Supermercado, 0, len(datos))
	for _, s := range datos {
		var existente model.Supermercado
		if err := db.Where("nombre = ?", s.Nombre).FirstOrCreate(&existente, s).Error; err != nil {
			log.Fatal().Err(err).Str("supermercado", s.Nombre).Msg("seed supermercado")
		}
		out = append(out, existente)
	}
	log.Info().Int("total", len(out)).Msg("supermercados listos")
	return out
}

func seedProductos(db *gorm.DB, categorias map[string]model.Categoria) []model.Producto {
	type dato struct {
		nombre, marca, descripcion, categoria string
	}
	datos := []dato{
		{"Smartphone Samsung Galaxy S21", "Samsung", "Smartphone con pantalla AMOLED", "Electronica"},
		{"Televisor LG OLED 55\"", "LG", "TV OLED con resolucion 4K", "Electronica"},
		{"Portatil HP Pavilion", "HP", "Portatil con procesador Intel i7 y 16GB RAM", "Electronica"},
		{"Arroz Brillante", "Brillante", "Arroz de grano largo, paquete de 1kg", "Alimentacion"},
		{"Aceite de Oliva Virgen Extra", "Carbonell", "Botella de 1L", "Alimentacion"},
		{"Aspiradora Dyson V11", "Dyson", "Aspiradora sin cable", "Hogar"},
		{"Bicicleta de montana BTwin", "BTwin", "Bicicleta 27.5 pulgadas", "Deportes"},
		{"Agua mineral 6x1.5L", "Font Vella", "Pack de seis botellas", "Bebidas"},
	}

	out := make([]model.Producto, 0, len(datos))
	for _, d := range datos {
		cat := categorias[d.categoria]
		p := model.Producto{
			Nombre:      d.nombre,
			Marca:       ptr(d.marca),
			Descripcion: ptr(d.descripcion),
			CategoriaID: &cat.ID,
		}
		var existente model.Producto
		if err := db.Where("nombre = ?", p.Nombre).FirstOrCreate(&existente, p).Error; err != nil {
			log.Fatal().Err(err).Str("producto", p.Nombre).Msg("seed producto")
		}
		out = append(out, existente)
	}
	log.Info().Int("total", len(out)).Msg("productos listos")
	return out
}

func seedOfertas(db *gorm.DB, productos []model.Producto, supermercados []model.Supermercado) {
	precios := []string{"799.99", "649.50", "1099.00", "1.85", "7.45", "499.00", "289.90", "2.99"}

	creadas := 0
	for i, p := range productos {
		base, _ := decimal.NewFromString(precios[i%len(precios)])
		// Two competing offers per product, the second one cheaper.
		for j, s := range []model.Supermercado{supermercados[i%len(supermercados)], supermercados[(i+1)%len(supermercados)]} {
			factor := decimal.NewFromFloat(1.0 - 0.07*float64(j+1))
			original := base
			o := model.Oferta{
				PrecioOriginal: &original,
				PrecioOferta:   base.Mul(factor).Round(2),
				URLOrigen:      "https://ejemplo.com/ofertas/" + p.ID.String(),
				Valida:         true,
				ProductoID:     p.ID,
				SupermercadoID: s.ID,
			}
			var existente model.Oferta
			err := db.Where("producto_id = ? AND supermercado_id = ?", p.ID, s.ID).
				FirstOrCreate(&existente, o).Error
			if err != nil {
				log.Fatal().Err(err).Str("producto", p.Nombre).Msg("seed oferta")
			}
			creadas++
		}
	}
	log.Info().Int("total", creadas).Msg("ofertas listas")
}

func seedAdmin(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin1234"), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	admin := model.Usuario{
		NombreCompleto: "Admin Demo",
		Email:          "admin@ofertas.local",
		PasswordHash:   string(hash),
		Rol:            model.RolAdministrador,
	}
	var existente model.Usuario
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&existente, admin).Error; err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}
	log.Info().Str("email", admin.Email).Msg("usuario admin listo")
}

func ptr(s string) *string { return &s }
