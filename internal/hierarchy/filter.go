package hierarchy

import (
	"strings"

	"fieldservice-golang/internal/storage"
)

// Filter poda el bosque según área y texto de búsqueda. Un nodo queda si
// matchea él mismo o si le queda algún subordinado después del filtrado:
// los ancestros de un match siempre se conservan para que el camino hasta
// el match siga visible. No muta el bosque original; los nodos que quedan
// son copias superficiales con Subordinados reemplazado.
//
// Área: comparación exacta case-insensitive. Búsqueda: substring
// case-insensitive sobre fullName y cada puesto. Filtros vacíos no
// descartan nada.
func Filter(forest []storage.HierarchyNode, areaFilter, searchTerm string) []storage.HierarchyNode {
	area := strings.ToLower(strings.TrimSpace(areaFilter))
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	if area == "" && term == "" {
		return forest
	}

	var out []storage.HierarchyNode
	for _, n := range forest {
		if kept, ok := filterNode(n, area, term); ok {
			out = append(out, kept)
		}
	}
	return out
}

func filterNode(n storage.HierarchyNode, area, term string) (storage.HierarchyNode, bool) {
	// primero los hijos (post-order)
	var children []storage.HierarchyNode
	for _, c := range n.Subordinados {
		if kept, ok := filterNode(c, area, term); ok {
			children = append(children, kept)
		}
	}

	if !matches(n, area, term) && len(children) == 0 {
		return storage.HierarchyNode{}, false
	}

	kept := n
	kept.Subordinados = children
	return kept, true
}

func matches(n storage.HierarchyNode, area, term string) bool {
	if area != "" && strings.ToLower(n.Area) != area {
		return false
	}

	if term == "" {
		return true
	}

	if strings.Contains(strings.ToLower(n.FullName), term) {
		return true
	}
	for _, p := range n.Puesto {
		if strings.Contains(strings.ToLower(p), term) {
			return true
		}
	}

	return false
}
