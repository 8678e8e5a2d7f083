package dto

// ListFilter is the uniform paginated-listing query contract: page number,
// page size, free-text search, sort direction and the activo widening knob
// ("" = solo activos, "false" = inactivos, "all" = todos).
type ListFilter struct {
	Page   int
	Limit  int
	Buscar string
	Orden  string // "asc" | "desc"
	Activo string
}

// Normalize clamps paging values to safe defaults.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Orden != "desc" {
		f.Orden = "asc"
	}
}
