package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldservice-golang/internal/storage"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Storage{db: db}, mock
}

func TestGetHierarchyRows(t *testing.T) {
	s, mock := newMockStorage(t)

	rows := sqlmock.NewRows([]string{
		"id", "parent_id", "cargo", "area", "user_id",
		"full_name", "email", "phone", "relacion_laboral", "puestos",
	}).
		AddRow("n1", "", "Gerente", "DIRECCION", "u1", "Ana García", "ana@fs.com", "555", "Planta", "").
		AddRow("n2", "n1", "Jefe de Servicio", "SERVICIO", "", "", "", "", "", "Electricista|Supervisor")

	mock.ExpectQuery(`SELECT n\.id`).WillReturnRows(rows)

	result, err := s.GetHierarchyRows(context.Background())
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, "n1", result[0].ID)
	assert.Equal(t, "Ana García", result[0].FullName)
	assert.Nil(t, result[0].Puesto)

	// puestos concatenados se abren en slice
	assert.Equal(t, []string{"Electricista", "Supervisor"}, result[1].Puesto)
	assert.Equal(t, "n1", result[1].ParentID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNode_InsertsNodeAndArea(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("n1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	// el subquery del sort_order tiene que ir por tabla derivada, leer
	// fs_org_nodes directo en el VALUES es ER_1093 en MySQL
	mock.ExpectExec(`INSERT INTO fs_org_nodes .*FROM \(SELECT sort_order, parent_id FROM fs_org_nodes\) t`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO fs_areas`).
		WithArgs("VENTAS").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	node, err := s.CreateNode(context.Background(), storage.CreateNodeRequest{
		Name: "Supervisor", Area: "VENTAS", Parent: "n1",
	})
	require.NoError(t, err)

	// el id lo asigna el backend
	assert.NotEmpty(t, node.ID)
	assert.Equal(t, "Supervisor", node.Cargo)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNode_MissingParentRejected(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("zzz").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := s.CreateNode(context.Background(), storage.CreateNodeRequest{
		Name: "Supervisor", Area: "VENTAS", Parent: "zzz",
	})

	assert.ErrorIs(t, err, ErrNodeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBindUser_NodeNotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(`UPDATE fs_org_nodes SET user_id = \?`).
		WithArgs("u5", "zzz").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.BindUser(context.Background(), "zzz", "u5")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestBindUser_RebindSameUserIsNotAnError(t *testing.T) {
	s, mock := newMockStorage(t)

	// reintento del mismo request lógico: el update matchea la fila
	// aunque no cambie nada (clientFoundRows en el DSN), no es un 404
	mock.ExpectExec(`UPDATE fs_org_nodes SET user_id = \?`).
		WithArgs("u5", "n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.BindUser(context.Background(), "n1", "u5")
	assert.NoError(t, err)
}

func TestUnbindUser_NotBound(t *testing.T) {
	s, mock := newMockStorage(t)

	// el usuario no estaba asociado a ese nodo: 0 filas
	mock.ExpectExec(`UPDATE fs_org_nodes SET user_id = NULL`).
		WithArgs("n1", "u5").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UnbindUser(context.Background(), "n1", "u5")
	assert.ErrorIs(t, err, ErrUserNotBound)
}

func TestDeleteNode_WithChildrenRejected(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM fs_org_nodes WHERE parent_id`).
		WithArgs("n1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := s.DeleteNode(context.Background(), "n1")
	assert.ErrorIs(t, err, ErrNodeHasChildren)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNode_LeafDeleted(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM fs_org_nodes WHERE parent_id`).
		WithArgs("n9").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM fs_node_puestos`).
		WithArgs("n9").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM fs_org_nodes`).
		WithArgs("n9").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.DeleteNode(context.Background(), "n9")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNode_PartialFields(t *testing.T) {
	s, mock := newMockStorage(t)

	// solo área: el cargo no se toca
	mock.ExpectExec(`UPDATE fs_org_nodes SET area = \? WHERE id = \?`).
		WithArgs("LOGISTICA", "n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateNode(context.Background(), "n1", storage.UpdateNodeRequest{Area: "LOGISTICA"})
	require.NoError(t, err)

	// request vacío: no se emite query
	err = s.UpdateNode(context.Background(), "n1", storage.UpdateNodeRequest{})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAreas(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT DISTINCT name FROM fs_areas`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("DIRECCION").AddRow("VENTAS"))

	areas, err := s.GetAreas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"DIRECCION", "VENTAS"}, areas)
}
