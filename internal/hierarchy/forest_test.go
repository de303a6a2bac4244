package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldservice-golang/internal/storage"
)

func TestBuildForest_NestingAndOrder(t *testing.T) {
	rows := []storage.HierarchyRow{
		{ID: "n1", Cargo: "Gerente", Area: "DIRECCION", UserID: "u1", FullName: "Ana García", Email: "ana@fs.com"},
		{ID: "n2", ParentID: "n1", Cargo: "Jefe de Servicio", Area: "SERVICIO", UserID: "u2", FullName: "Bruno Díaz"},
		{ID: "n3", ParentID: "n1", Cargo: "Jefa de RRHH", Area: "RRHH", UserID: "u3", FullName: "Carla Pérez"},
		{ID: "n4", ParentID: "n2", Cargo: "Técnico", Area: "SERVICIO"},
		{ID: "n5", Cargo: "Auditor", Area: "AUDITORIA", UserID: "u5", FullName: "Diego Soto"},
	}

	forest := BuildForest(rows)

	// dos raíces en orden de inserción
	require.Len(t, forest, 2)
	assert.Equal(t, "n1", forest[0].ID)
	assert.Equal(t, "n5", forest[1].ID)

	// hijos de n1 en orden
	require.Len(t, forest[0].Subordinados, 2)
	assert.Equal(t, "n2", forest[0].Subordinados[0].ID)
	assert.Equal(t, "n3", forest[0].Subordinados[1].ID)

	// nieto
	require.Len(t, forest[0].Subordinados[0].Subordinados, 1)
	assert.Equal(t, "n4", forest[0].Subordinados[0].Subordinados[0].ID)

	assert.Equal(t, 5, CountNodes(forest))
}

func TestBuildForest_VacantNodeExposesNoContactData(t *testing.T) {
	// la fila puede venir con basura en contacto (join viejo), el nodo
	// vacante igual sale limpio
	rows := []storage.HierarchyRow{
		{ID: "n1", Cargo: "Técnico", Area: "SERVICIO", Email: "stale@fs.com", Phone: "123", FullName: "stale"},
	}

	forest := BuildForest(rows)

	require.Len(t, forest, 1)
	n := forest[0]
	assert.False(t, n.User)
	assert.Empty(t, n.UserID)
	assert.Empty(t, n.Email)
	assert.Empty(t, n.Phone)
	assert.Equal(t, Vacant, n.FullName)
}

func TestBuildForest_BoundNodeCarriesPersonData(t *testing.T) {
	rows := []storage.HierarchyRow{
		{ID: "n1", Cargo: "Jefe", Area: "SERVICIO", UserID: "u9", FullName: "Elsa Ramos",
			Email: "elsa@fs.com", Phone: "555", RelacionLaboral: "Planta", Puesto: []string{"Electricista"}},
	}

	forest := BuildForest(rows)

	require.Len(t, forest, 1)
	n := forest[0]
	assert.True(t, n.User)
	assert.Equal(t, "u9", n.UserID)
	assert.Equal(t, "Elsa Ramos", n.FullName)
	assert.Equal(t, "elsa@fs.com", n.Email)
	assert.Equal(t, []string{"Electricista"}, n.Puesto)
}

func TestBuildForest_OrphanPromotedToRoot(t *testing.T) {
	rows := []storage.HierarchyRow{
		{ID: "n1", Cargo: "Gerente", Area: "DIRECCION", UserID: "u1", FullName: "Ana"},
		// padre que no existe en el set
		{ID: "n2", ParentID: "zzz", Cargo: "Suelto", Area: "SERVICIO"},
	}

	forest := BuildForest(rows)

	require.Len(t, forest, 2)
	assert.Equal(t, "n1", forest[0].ID)
	assert.Equal(t, "n2", forest[1].ID)
}

func TestBuildForest_Empty(t *testing.T) {
	assert.Empty(t, BuildForest(nil))
}
