package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Omar25092001/Backend-Ofertas/internal/apierror"
	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
)

func TestCategoriaEliminarConProductos(t *testing.T) {
	repo := newStubCategoriaRepo()
	svc := NewCategoriaService(repo)

	c := repo.add(model.Categoria{Nombre: "Lacteos"})
	repo.productos[c.ID] = 12

	err := svc.Eliminar(context.Background(), c.ID)
	apiErr, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindConstraint, apiErr.Kind)
	assert.Equal(t, 12, apiErr.Dependientes)
	assert.Contains(t, apiErr.Detail, "12")
}

func TestCategoriaEliminarVacia(t *testing.T) {
	repo := newStubCategoriaRepo()
	svc := NewCategoriaService(repo)

	c := repo.add(model.Categoria{Nombre: "Limpieza"})
	require.NoError(t, svc.Eliminar(context.Background(), c.ID))

	_, err := repo.FindByID(context.Background(), c.ID)
	assert.Error(t, err)
}

func TestCategoriaCrearNombreDuplicado(t *testing.T) {
	repo := newStubCategoriaRepo()
	repo.dupNombre = true
	svc := NewCategoriaService(repo)

	_, err := svc.Crear(context.Background(), dto.CrearCategoriaRequest{Nombre: "Bebidas"})
	apiErr, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
}

func TestCategoriaListarConConteos(t *testing.T) {
	repo := newStubCategoriaRepo()
	svc := NewCategoriaService(repo)

	c := repo.add(model.Categoria{Nombre: "Bebidas"})
	repo.productos[c.ID] = 4

	out, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(4), out[0].TotalProductos)
}

func TestCategoriaObtenerInexistente(t *testing.T) {
	svc := NewCategoriaService(newStubCategoriaRepo())

	_, err := svc.ObtenerPorID(context.Background(), uuid.New())
	apiErr, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindNotFound, apiErr.Kind)
}
