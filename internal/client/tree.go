package client

import (
	"strings"
	"unicode/utf8"

	"fieldservice-golang/internal/storage"
)

// TreeRow es lo que la vista necesita para pintar un nodo: profundidad,
// glifo con la inicial, marca de vacante (borde punteado) y los conectores
// hacia el padre y entre hermanos.
type TreeRow struct {
	ID          string
	Depth       int
	Glyph       string
	FullName    string
	Cargo       string
	Area        string
	Puesto      []string
	Vacant      bool
	PersonID    string
	HasChildren bool
	// conector vertical al padre / horizontal cuando hay más de un hermano
	ConnectUp   bool
	ConnectWide bool
}

// TreeCallbacks son los intents que el árbol propaga hacia arriba. Ninguno
// llama al servicio directo: borrar y liberar pasan por el Confirmer.
type TreeCallbacks struct {
	// click primario: detalle si hay usuario, asignación si está vacante
	OnOpenDetail    func(nodeID, personID string)
	OnAssignPerson  func(nodeID string)
	OnAddChild      func(parentID string)
	OnRequestDelete func(nodeID string)
	OnRequestUnbind func(nodeID, personID string)
}

// RenderTree recorre el bosque en forma recursiva y devuelve las filas en
// orden de presentación. Cada nodo aparece una sola vez, sin cross-links.
func RenderTree(forest []storage.HierarchyNode) []TreeRow {
	var rows []TreeRow
	for _, root := range forest {
		rows = renderNode(root, 0, false, len(forest) > 1, rows)
	}
	return rows
}

func renderNode(n storage.HierarchyNode, depth int, connectUp, connectWide bool, rows []TreeRow) []TreeRow {
	rows = append(rows, TreeRow{
		ID:          n.ID,
		Depth:       depth,
		Glyph:       glyph(n.FullName),
		FullName:    n.FullName,
		Cargo:       n.Cargo,
		Area:        n.Area,
		Puesto:      n.Puesto,
		Vacant:      !n.User,
		PersonID:    n.UserID,
		HasChildren: len(n.Subordinados) > 0,
		ConnectUp:   connectUp,
		ConnectWide: connectWide,
	})

	wide := len(n.Subordinados) > 1
	for _, c := range n.Subordinados {
		rows = renderNode(c, depth+1, true, wide, rows)
	}

	return rows
}

// glyph devuelve la inicial para el avatar.
func glyph(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return "?"
	}

	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

// Click resuelve el click primario sobre un nodo: detalle de solo lectura
// si hay usuario, flujo de asignación si el puesto está vacante.
func (cb TreeCallbacks) Click(row TreeRow) {
	if row.Vacant {
		if cb.OnAssignPerson != nil {
			cb.OnAssignPerson(row.ID)
		}
		return
	}

	if cb.OnOpenDetail != nil {
		cb.OnOpenDetail(row.ID, row.PersonID)
	}
}

func (cb TreeCallbacks) AddChild(row TreeRow) {
	if cb.OnAddChild != nil {
		cb.OnAddChild(row.ID)
	}
}

func (cb TreeCallbacks) RequestDelete(row TreeRow) {
	if cb.OnRequestDelete != nil {
		cb.OnRequestDelete(row.ID)
	}
}

// RequestUnbind no hace nada sobre un puesto vacante: sin personID no hay
// asociación que liberar.
func (cb TreeCallbacks) RequestUnbind(row TreeRow) {
	if row.PersonID == "" {
		return
	}
	if cb.OnRequestUnbind != nil {
		cb.OnRequestUnbind(row.ID, row.PersonID)
	}
}
