package dto

// PageRequest paginación y ordenamiento para listados.
type PageRequest struct {
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
	OrderBy  string `query:"orderBy"`
	OrderDir string `query:"orderDir"`
}

// Normalize aplica defaults: limit 10 (máx 100), offset 0, orderDir DESC.
// El orderBy se resuelve contra la allow-list del repositorio.
func (p *PageRequest) Normalize(defaultOrderBy string) {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 10
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.OrderBy == "" {
		p.OrderBy = defaultOrderBy
	}
	if p.OrderDir == "" {
		p.OrderDir = "DESC"
	}
}

// PageMeta metadatos de página consistentes para el front.
type PageMeta struct {
	Total    int64  `json:"total"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
	OrderBy  string `json:"orderBy"`
	OrderDir string `json:"orderDir"`
}
