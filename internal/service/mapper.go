package service

import (
	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
	"github.com/Omar25092001/Backend-Ofertas/internal/pricing"
)

func categoriaResumen(c *model.Categoria) *dto.CategoriaResumen {
	if c == nil {
		return nil
	}
	return &dto.CategoriaResumen{ID: c.ID, Nombre: c.Nombre}
}

func productoResumen(p *model.Producto) *dto.ProductoResumen {
	if p == nil {
		return nil
	}
	return &dto.ProductoResumen{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Marca:     p.Marca,
		ImagenURL: p.ImagenURL,
		Categoria: categoriaResumen(p.Categoria),
	}
}

func supermercadoResumen(s *model.Supermercado) *dto.SupermercadoResumen {
	if s == nil {
		return nil
	}
	return &dto.SupermercadoResumen{ID: s.ID, Nombre: s.Nombre}
}

func ofertaToResponse(o *model.Oferta, favoritos int64) dto.OfertaResponse {
	return dto.OfertaResponse{
		ID:              o.ID,
		PrecioOferta:    o.PrecioOferta,
		PrecioOriginal:  o.PrecioOriginal,
		Descuento:       pricing.Descuento(o.PrecioOriginal, o.PrecioOferta),
		FechaInicio:     o.FechaInicio,
		FechaFin:        o.FechaFin,
		Descripcion:     o.Descripcion,
		URLOrigen:       o.URLOrigen,
		FechaExtraccion: o.FechaExtraccion,
		Valida:          o.Valida,
		TotalFavoritos:  favoritos,
		Producto:        productoResumen(o.Producto),
		Supermercado:    supermercadoResumen(o.Supermercado),
	}
}

func estadisticasToDTO(stats pricing.Estadisticas) *dto.EstadisticasPrecios {
	return &dto.EstadisticasPrecios{
		PrecioMinimo:         stats.PrecioMinimo,
		PrecioMaximo:         stats.PrecioMaximo,
		PrecioPromedio:       stats.PrecioPromedio,
		DiferenciaPorcentaje: stats.DiferenciaPorcentaje,
		TotalOfertasValidas:  stats.TotalOfertasValidas,
	}
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Marca:       p.Marca,
		Descripcion: p.Descripcion,
		ImagenURL:   p.ImagenURL,
		Categoria:   categoriaResumen(p.Categoria),
	}
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:             u.ID,
		NombreCompleto: u.NombreCompleto,
		Email:          u.Email,
		Rol:            u.Rol,
		FechaRegistro:  u.FechaRegistro,
	}
}

func categoriaToResponse(c *model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre, Descripcion: c.Descripcion}
}

func supermercadoToResponse(s *model.Supermercado) dto.SupermercadoResponse {
	return dto.SupermercadoResponse{
		ID:        s.ID,
		Nombre:    s.Nombre,
		Direccion: s.Direccion,
		SitioWeb:  s.SitioWeb,
	}
}
