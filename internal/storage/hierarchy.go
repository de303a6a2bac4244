package storage

// HierarchyNode es un nodo del organigrama tal como viaja al frontend.
// User=false significa puesto vacante: sin userid ni datos de contacto.
type HierarchyNode struct {
	ID              string          `json:"id"`
	User            bool            `json:"user"`
	Cargo           string          `json:"cargo"`
	UserID          string          `json:"userid,omitempty"`
	FullName        string          `json:"fullName"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Area            string          `json:"area"`
	RelacionLaboral string          `json:"relacionLaboral,omitempty"`
	Puesto          []string        `json:"puesto,omitempty"`
	Subordinados    []HierarchyNode `json:"subordinados,omitempty"`
}

// HierarchyRow es la fila plana de la tabla de nodos (adjacency list).
// El bosque se arma en memoria, ver internal/hierarchy.
type HierarchyRow struct {
	ID              string
	ParentID        string
	Cargo           string
	Area            string
	UserID          string
	FullName        string
	Email           string
	Phone           string
	RelacionLaboral string
	Puesto          []string
}

type HierarchyForest struct {
	Areas []string        `json:"areas"`
	Tree  []HierarchyNode `json:"tree"`
}

type CreateNodeRequest struct {
	Name   string `json:"name" validate:"required"`
	Area   string `json:"area" validate:"required"`
	Parent string `json:"parent,omitempty"`
}

type CreatedNode struct {
	ID    string `json:"id"`
	Cargo string `json:"cargo"`
	Area  string `json:"area"`
}

type UpdateNodeRequest struct {
	Name string `json:"name,omitempty"`
	Area string `json:"area,omitempty"`
}

type AreaAdmin struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
