package hierarchy

import (
	"fieldservice-golang/internal/storage"
)

// Vacant es el nombre que muestra un puesto sin usuario asociado.
const Vacant = "Vacante"

// BuildForest arma el bosque del organigrama a partir de las filas planas
// de la tabla de nodos. El orden de inserción se respeta como orden de
// presentación. El enlace padre/hijo vive solo en Subordinados, sin
// referencias hacia arriba.
func BuildForest(rows []storage.HierarchyRow) []storage.HierarchyNode {
	ids := make(map[string]bool, len(rows))
	byParent := make(map[string][]storage.HierarchyRow)
	for _, r := range rows {
		ids[r.ID] = true
		byParent[r.ParentID] = append(byParent[r.ParentID], r)
	}

	var build func(parentID string) []storage.HierarchyNode
	build = func(parentID string) []storage.HierarchyNode {
		var out []storage.HierarchyNode
		for _, r := range byParent[parentID] {
			n := nodeFromRow(r)
			n.Subordinados = build(r.ID)
			out = append(out, n)
		}
		return out
	}

	forest := build("")

	// filas con padre inexistente se promueven a raíz para no perderlas
	for _, r := range rows {
		if r.ParentID != "" && !ids[r.ParentID] {
			n := nodeFromRow(r)
			n.Subordinados = build(r.ID)
			forest = append(forest, n)
		}
	}

	return forest
}

// nodeFromRow convierte la fila al nodo que viaja al frontend. Un puesto
// vacante nunca expone userid ni datos de contacto.
func nodeFromRow(r storage.HierarchyRow) storage.HierarchyNode {
	n := storage.HierarchyNode{
		ID:     r.ID,
		Cargo:  r.Cargo,
		Area:   r.Area,
		Puesto: r.Puesto,
	}

	if r.UserID == "" {
		n.User = false
		n.FullName = Vacant
		return n
	}

	n.User = true
	n.UserID = r.UserID
	n.FullName = r.FullName
	n.Email = r.Email
	n.Phone = r.Phone
	n.RelacionLaboral = r.RelacionLaboral

	return n
}

// CountNodes cuenta todos los nodos del bosque, para logging y reportes.
func CountNodes(forest []storage.HierarchyNode) int {
	total := 0
	for _, n := range forest {
		total += 1 + CountNodes(n.Subordinados)
	}
	return total
}
