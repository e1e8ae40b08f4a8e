package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
	"github.com/Omar25092001/Backend-Ofertas/internal/repository"
)

// ── In-memory stubs ───────────────────────────────────────────────────────────

type stubOfertaRepo struct {
	ofertas  map[uuid.UUID]*model.Oferta
	reportes []model.ReporteOferta

	// lastQuery records the criteria the service passed down.
	lastQuery dto.OfertaQuery
}

func newStubOfertaRepo() *stubOfertaRepo {
	return &stubOfertaRepo{ofertas: make(map[uuid.UUID]*model.Oferta)}
}

func (r *stubOfertaRepo) add(o model.Oferta) *model.Oferta {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.ofertas[o.ID] = &o
	return &o
}

func (r *stubOfertaRepo) Create(_ context.Context, o *model.Oferta) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.ofertas[o.ID] = o
	return nil
}

func (r *stubOfertaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Oferta, error) {
	o, ok := r.ofertas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOfertaRepo) List(_ context.Context, q dto.OfertaQuery) ([]model.Oferta, int64, error) {
	r.lastQuery = q
	var out []model.Oferta
	for _, o := range r.ofertas {
		if q.ProductoID != nil && o.ProductoID != *q.ProductoID {
			continue
		}
		if q.SupermercadoID != nil && o.SupermercadoID != *q.SupermercadoID {
			continue
		}
		if q.Valida != nil && o.Valida != *q.Valida {
			continue
		}
		out = append(out, *o)
	}
	total := int64(len(out))
	// Page the unordered set the way the SQL layer would.
	start := dto.Offset(q.Page, q.Limit)
	if start > len(out) {
		start = len(out)
	}
	end := start + q.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *stubOfertaRepo) FindValidasByProductoID(_ context.Context, productoID uuid.UUID) ([]model.Oferta, error) {
	var out []model.Oferta
	for _, o := range r.ofertas {
		if o.ProductoID == productoID && o.Valida {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOfertaRepo) Update(_ context.Context, o *model.Oferta) error {
	r.ofertas[o.ID] = o
	return nil
}

func (r *stubOfertaRepo) Invalidar(_ context.Context, id uuid.UUID) error {
	o, ok := r.ofertas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Valida = false
	return nil
}

func (r *stubOfertaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ofertas, id)
	return nil
}

func (r *stubOfertaRepo) CreateReporte(_ context.Context, rep *model.ReporteOferta) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	r.reportes = append(r.reportes, *rep)
	return nil
}

func (r *stubOfertaRepo) CountReportes(_ context.Context, ofertaID uuid.UUID) (int64, error) {
	var n int64
	for _, rep := range r.reportes {
		if rep.OfertaID == ofertaID {
			n++
		}
	}
	return n, nil
}

var _ repository.OfertaRepository = (*stubOfertaRepo)(nil)

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	ofertas   map[uuid.UUID]int64 // offer count per product

	listado   []model.Producto // canned List result, already ordered
	lastQuery dto.ProductoQuery
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		productos: make(map[uuid.UUID]*model.Producto),
		ofertas:   make(map[uuid.UUID]int64),
	}
}

func (r *stubProductoRepo) add(p model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = &p
	return &p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, q dto.ProductoQuery) ([]model.Producto, int64, error) {
	r.lastQuery = q
	return r.listado, int64(len(r.listado)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) CountOfertas(_ context.Context, productoID uuid.UUID) (int64, error) {
	return r.ofertas[productoID], nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
	productos  map[uuid.UUID]int64
	dupNombre  bool
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{
		categorias: make(map[uuid.UUID]*model.Categoria),
		productos:  make(map[uuid.UUID]int64),
	}
}

func (r *stubCategoriaRepo) add(c model.Categoria) *model.Categoria {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = &c
	return &c
}

func (r *stubCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	if r.dupNombre {
		return gorm.ErrDuplicatedKey
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) List(_ context.Context) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoriaRepo) Update(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categorias, id)
	return nil
}

func (r *stubCategoriaRepo) CountProductos(_ context.Context, categoriaID uuid.UUID) (int64, error) {
	return r.productos[categoriaID], nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

type stubSupermercadoRepo struct {
	supermercados map[uuid.UUID]*model.Supermercado
	ofertas       map[uuid.UUID]int64
}

func newStubSupermercadoRepo() *stubSupermercadoRepo {
	return &stubSupermercadoRepo{
		supermercados: make(map[uuid.UUID]*model.Supermercado),
		ofertas:       make(map[uuid.UUID]int64),
	}
}

func (r *stubSupermercadoRepo) add(s model.Supermercado) *model.Supermercado {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.supermercados[s.ID] = &s
	return &s
}

func (r *stubSupermercadoRepo) Create(_ context.Context, s *model.Supermercado) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.supermercados[s.ID] = s
	return nil
}

func (r *stubSupermercadoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supermercado, error) {
	s, ok := r.supermercados[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSupermercadoRepo) List(_ context.Context) ([]model.Supermercado, error) {
	var out []model.Supermercado
	for _, s := range r.supermercados {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSupermercadoRepo) Update(_ context.Context, s *model.Supermercado) error {
	r.supermercados[s.ID] = s
	return nil
}

func (r *stubSupermercadoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.supermercados, id)
	return nil
}

func (r *stubSupermercadoRepo) CountOfertas(_ context.Context, supermercadoID uuid.UUID) (int64, error) {
	return r.ofertas[supermercadoID], nil
}

func (r *stubSupermercadoRepo) CountOfertasValidas(_ context.Context, supermercadoID uuid.UUID) (int64, error) {
	return r.ofertas[supermercadoID], nil
}

func (r *stubSupermercadoRepo) Estadisticas(_ context.Context) ([]repository.EstadisticasSupermercadoRow, error) {
	return nil, nil
}

var _ repository.SupermercadoRepository = (*stubSupermercadoRepo)(nil)

// stubFavoritos serves canned counters and can simulate a Redis outage.
type stubFavoritos struct {
	counts map[uuid.UUID]int64
	err    error
}

func newStubFavoritos() *stubFavoritos {
	return &stubFavoritos{counts: make(map[uuid.UUID]int64)}
}

func (f *stubFavoritos) Count(_ context.Context, ofertaID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[ofertaID], nil
}

func (f *stubFavoritos) CountMany(_ context.Context, ofertaIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[uuid.UUID]int64, len(ofertaIDs))
	for _, id := range ofertaIDs {
		out[id] = f.counts[id]
	}
	return out, nil
}

func (f *stubFavoritos) Incr(_ context.Context, ofertaID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[ofertaID]++
	return f.counts[ofertaID], nil
}

func (f *stubFavoritos) Decr(_ context.Context, ofertaID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts[ofertaID] > 0 {
		f.counts[ofertaID]--
	}
	return f.counts[ofertaID], nil
}

var _ Favoritos = (*stubFavoritos)(nil)
