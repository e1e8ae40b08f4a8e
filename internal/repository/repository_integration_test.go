//go:build integration

package repository_test

// Integration tests for the GORM query builders against a real Postgres,
// spun up with testcontainers. Run with:
//
//	go test -tags integration ./internal/repository/... -v

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/infra"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
	"github.com/Omar25092001/Backend-Ofertas/internal/repository"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("ofertas_test"),
		tcPostgres.WithUsername("ofertas"),
		tcPostgres.WithPassword("ofertas"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := infra.NewDatabase(pgURL)
	require.NoError(t, err)
	return db
}

// seedCatalogo creates two categories, two sellers and three products with a
// spread of offers used by every subtest.
type catalogo struct {
	lacteos, limpieza   model.Categoria
	central, economia   model.Supermercado
	leche, yogur, jabon model.Producto
}

func seedCatalogo(t *testing.T, db *gorm.DB) catalogo {
	t.Helper()
	var c catalogo

	c.lacteos = model.Categoria{Nombre: "Lacteos"}
	c.limpieza = model.Categoria{Nombre: "Limpieza"}
	require.NoError(t, db.Create(&c.lacteos).Error)
	require.NoError(t, db.Create(&c.limpieza).Error)

	c.central = model.Supermercado{Nombre: "Central"}
	c.economia = model.Supermercado{Nombre: "Economia"}
	require.NoError(t, db.Create(&c.central).Error)
	require.NoError(t, db.Create(&c.economia).Error)

	c.leche = model.Producto{Nombre: "Leche entera 1L", Marca: strPtr("Serenisima"), CategoriaID: &c.lacteos.ID}
	c.yogur = model.Producto{Nombre: "Yogur natural", Marca: strPtr("Serenisima"), CategoriaID: &c.lacteos.ID}
	c.jabon = model.Producto{Nombre: "Jabon liquido", Marca: strPtr("Ala"), CategoriaID: &c.limpieza.ID}
	require.NoError(t, db.Create(&c.leche).Error)
	require.NoError(t, db.Create(&c.yogur).Error)
	require.NoError(t, db.Create(&c.jabon).Error)

	ofertas := []model.Oferta{
		{PrecioOferta: dec("10.00"), Valida: true, ProductoID: c.leche.ID, SupermercadoID: c.central.ID, URLOrigen: "https://x/1"},
		{PrecioOferta: dec("12.50"), Valida: true, ProductoID: c.leche.ID, SupermercadoID: c.economia.ID, URLOrigen: "https://x/2"},
		{PrecioOferta: dec("8.00"), Valida: false, ProductoID: c.leche.ID, SupermercadoID: c.economia.ID, URLOrigen: "https://x/3"},
		{PrecioOferta: dec("20.00"), Valida: true, ProductoID: c.yogur.ID, SupermercadoID: c.central.ID, URLOrigen: "https://x/4"},
		{PrecioOferta: dec("30.00"), Valida: true, ProductoID: c.jabon.ID, SupermercadoID: c.economia.ID, URLOrigen: "https://x/5",
			Descripcion: strPtr("Promo envase retornable")},
	}
	for i := range ofertas {
		require.NoError(t, db.Create(&ofertas[i]).Error)
	}
	return c
}

func TestOfertaListIntegration(t *testing.T) {
	db := setupDB(t)
	c := seedCatalogo(t, db)
	repo := repository.NewOfertaRepository(db)
	ctx := context.Background()

	baseQuery := func() dto.OfertaQuery {
		return dto.OfertaFilter{}.ToQuery()
	}

	t.Run("valida true por defecto", func(t *testing.T) {
		ofertas, total, err := repo.List(ctx, baseQuery())
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		for _, o := range ofertas {
			assert.True(t, o.Valida)
		}
	})

	t.Run("valida false", func(t *testing.T) {
		q := baseQuery()
		f := false
		q.Valida = &f
		ofertas, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.True(t, ofertas[0].PrecioOferta.Equal(dec("8.00")))
	})

	t.Run("valida all", func(t *testing.T) {
		q := baseQuery()
		q.Valida = nil
		_, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
	})

	t.Run("limites de precio inclusivos", func(t *testing.T) {
		q := baseQuery()
		q.PrecioMin = decPtr("10.00")
		q.PrecioMax = decPtr("20.00")
		ofertas, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		// 10.00 and 20.00 included, 12.50 inside, 30.00 out.
		assert.Equal(t, int64(3), total)
		assert.True(t, ofertas[0].PrecioOferta.Equal(dec("10.00")))
	})

	t.Run("busqueda ILIKE sobre nombre marca y descripcion", func(t *testing.T) {
		q := baseQuery()
		q.Termino = "serenisima"
		_, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total) // 2 leche validas + 1 yogur

		q = baseQuery()
		q.Termino = "RETORNABLE"
		_, total, err = repo.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("filtro por categoria via join", func(t *testing.T) {
		q := baseQuery()
		q.CategoriaID = &c.lacteos.ID
		_, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("orden precio_asc por defecto", func(t *testing.T) {
		ofertas, _, err := repo.List(ctx, baseQuery())
		require.NoError(t, err)
		for i := 1; i < len(ofertas); i++ {
			assert.True(t, ofertas[i-1].PrecioOferta.LessThanOrEqual(ofertas[i].PrecioOferta))
		}
	})

	t.Run("orden por supermercado", func(t *testing.T) {
		q := baseQuery()
		q.Orden = dto.OrdenSupermercado
		ofertas, _, err := repo.List(ctx, q)
		require.NoError(t, err)
		require.NotEmpty(t, ofertas)
		for i := 1; i < len(ofertas); i++ {
			assert.LessOrEqual(t, ofertas[i-1].Supermercado.Nombre, ofertas[i].Supermercado.Nombre)
		}
	})

	t.Run("filtro uuid inexistente devuelve vacio", func(t *testing.T) {
		q := baseQuery()
		id := uuid.New()
		q.SupermercadoID = &id
		ofertas, total, err := repo.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, ofertas)
	})
}

func TestProductoListIntegration(t *testing.T) {
	db := setupDB(t)
	c := seedCatalogo(t, db)
	repo := repository.NewProductoRepository(db)
	ctx := context.Background()

	// Product without offers; its name would rank it first alphabetically.
	sinOfertas := model.Producto{Nombre: "Aaa sin ofertas", Descripcion: strPtr("Producto de relleno")}
	require.NoError(t, db.Create(&sinOfertas).Error)

	t.Run("orden nombre_asc por defecto", func(t *testing.T) {
		productos, total, err := repo.List(ctx, dto.ProductoFilter{}.ToQuery())
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, productos, 4)
		assert.Equal(t, sinOfertas.ID, productos[0].ID)
		assert.Equal(t, c.jabon.ID, productos[1].ID)
		assert.Equal(t, c.leche.ID, productos[2].ID)
		assert.Equal(t, c.yogur.ID, productos[3].ID)
	})

	t.Run("orden precio_asc", func(t *testing.T) {
		productos, _, err := repo.List(ctx, dto.ProductoFilter{Ordenar: "precio_asc"}.ToQuery())
		require.NoError(t, err)
		require.Len(t, productos, 4)

		// Cheapest valid offer ranks first: leche (10.00) < yogur (20.00) < jabon (30.00);
		// the offer-less product sorts last despite its name.
		assert.Equal(t, c.leche.ID, productos[0].ID)
		assert.Equal(t, c.yogur.ID, productos[1].ID)
		assert.Equal(t, c.jabon.ID, productos[2].ID)
		assert.Equal(t, sinOfertas.ID, productos[3].ID)

		// Preloaded offers exclude the invalid 8.00 one and come cheapest first.
		require.NotEmpty(t, productos[0].Ofertas)
		assert.True(t, productos[0].Ofertas[0].PrecioOferta.Equal(dec("10.00")))
		for _, o := range productos[0].Ofertas {
			assert.True(t, o.Valida)
		}
	})

	t.Run("orden precio_desc mantiene sin ofertas al final", func(t *testing.T) {
		productos, _, err := repo.List(ctx, dto.ProductoFilter{Ordenar: "precio_desc"}.ToQuery())
		require.NoError(t, err)
		require.Len(t, productos, 4)
		assert.Equal(t, c.jabon.ID, productos[0].ID)
		assert.Equal(t, c.yogur.ID, productos[1].ID)
		assert.Equal(t, c.leche.ID, productos[2].ID)
		assert.Equal(t, sinOfertas.ID, productos[3].ID)
	})

	t.Run("termino busca tambien en descripcion", func(t *testing.T) {
		productos, total, err := repo.List(ctx, dto.ProductoFilter{Termino: "relleno"}.ToQuery())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, productos, 1)
		assert.Equal(t, sinOfertas.ID, productos[0].ID)
	})

	t.Run("rango de precios exige una oferta valida en rango", func(t *testing.T) {
		// Leche qualifies through its valid 10.00/12.50 offers; its invalid
		// 8.00 one must not qualify it for a lower bracket.
		productos, total, err := repo.List(ctx, dto.ProductoFilter{PrecioMin: "9", PrecioMax: "15"}.ToQuery())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, productos, 1)
		assert.Equal(t, c.leche.ID, productos[0].ID)

		_, total, err = repo.List(ctx, dto.ProductoFilter{PrecioMin: "7", PrecioMax: "9"}.ToQuery())
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestDuplicadosTraducidosIntegration(t *testing.T) {
	db := setupDB(t)
	seedCatalogo(t, db)

	// Unique-name collisions must surface as gorm.ErrDuplicatedKey so the
	// services can report them as validation errors instead of 500s.
	err := repository.NewCategoriaRepository(db).Create(context.Background(), &model.Categoria{Nombre: "Lacteos"})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = repository.NewSupermercadoRepository(db).Create(context.Background(), &model.Supermercado{Nombre: "Central"})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
