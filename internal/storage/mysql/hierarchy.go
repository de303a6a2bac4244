package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fieldservice-golang/internal/storage"
)

// GetHierarchyRows trae todas las filas del organigrama en plano.
// El armado del bosque es responsabilidad de internal/hierarchy.
func (s *Storage) GetHierarchyRows(ctx context.Context) ([]storage.HierarchyRow, error) {
	const op = "storage.mysql.GetHierarchyRows"

	query := `
        SELECT n.id,
               COALESCE(n.parent_id, ''),
               n.cargo,
               n.area,
               COALESCE(n.user_id, ''),
               COALESCE(u.full_name, ''),
               COALESCE(u.email, ''),
               COALESCE(u.phone, ''),
               COALESCE(u.relacion_laboral, ''),
               COALESCE(GROUP_CONCAT(p.puesto ORDER BY p.puesto SEPARATOR '|'), '')
        FROM fs_org_nodes n
        LEFT JOIN fs_users u ON u.id = n.user_id
        LEFT JOIN fs_node_puestos p ON p.node_id = n.id
        GROUP BY n.id
        ORDER BY n.sort_order ASC, n.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando nodos del organigrama: %w", op, err)
	}
	defer rows.Close()

	var result []storage.HierarchyRow
	for rows.Next() {
		var row storage.HierarchyRow
		var puestos string

		err := rows.Scan(&row.ID, &row.ParentID, &row.Cargo, &row.Area,
			&row.UserID, &row.FullName, &row.Email, &row.Phone,
			&row.RelacionLaboral, &puestos)
		if err != nil {
			return nil, fmt.Errorf("%s: error escaneando fila de nodo: %w", op, err)
		}

		if puestos != "" {
			row.Puesto = strings.Split(puestos, "|")
		}

		result = append(result, row)
	}

	return result, rows.Err()
}

// GetAreas trae el set de áreas. Viene de su propia tabla: puede haber
// áreas sin ningún nodo todavía.
func (s *Storage) GetAreas(ctx context.Context) ([]string, error) {
	const op = "storage.mysql.GetAreas"

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT name FROM fs_areas WHERE is_active = TRUE ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando áreas: %w", op, err)
	}
	defer rows.Close()

	var areas []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		areas = append(areas, a)
	}

	return areas, rows.Err()
}

// CreateNode da de alta un puesto vacante. Sin parent crea una raíz nueva.
// El área se registra también en fs_areas si no existía (texto libre).
func (s *Storage) CreateNode(ctx context.Context, req storage.CreateNodeRequest) (*storage.CreatedNode, error) {
	const op = "storage.mysql.CreateNode"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if req.Parent != "" {
		var exists bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM fs_org_nodes WHERE id = ?)`, req.Parent).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("%s: error verificando nodo padre id=%s: %w", op, req.Parent, err)
		}
		if !exists {
			return nil, fmt.Errorf("%s: padre id=%s: %w", op, req.Parent, ErrNodeNotFound)
		}
	}

	id := uuid.NewString()

	var parent sql.NullString
	if req.Parent != "" {
		parent = sql.NullString{String: req.Parent, Valid: true}
	}

	// el MAX va por tabla derivada: MySQL no deja leer la tabla destino
	// directo en el subquery del VALUES (ER_UPDATE_TABLE_USED)
	_, err = tx.ExecContext(ctx, `
        INSERT INTO fs_org_nodes (id, parent_id, cargo, area, sort_order)
        VALUES (?, ?, ?, ?,
            (SELECT COALESCE(MAX(t.sort_order), 0) + 1
             FROM (SELECT sort_order, parent_id FROM fs_org_nodes) t
             WHERE t.parent_id <=> ?))`,
		id, parent, req.Name, req.Area, parent)
	if err != nil {
		return nil, fmt.Errorf("%s: error insertando nodo cargo=%s: %w", op, req.Name, err)
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO fs_areas (name, is_active) VALUES (?, TRUE)
        ON DUPLICATE KEY UPDATE is_active = TRUE`, req.Area)
	if err != nil {
		return nil, fmt.Errorf("%s: error registrando área %s: %w", op, req.Area, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return &storage.CreatedNode{ID: id, Cargo: req.Name, Area: req.Area}, nil
}

// BindUser asocia un usuario a un nodo existente (el nodo deja de estar vacante).
func (s *Storage) BindUser(ctx context.Context, nodeID, userID string) error {
	const op = "storage.mysql.BindUser"

	res, err := s.db.ExecContext(ctx,
		`UPDATE fs_org_nodes SET user_id = ? WHERE id = ?`, userID, nodeID)
	if err != nil {
		return fmt.Errorf("%s: error asociando usuario id=%s al nodo id=%s: %w", op, userID, nodeID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: nodo id=%s: %w", op, nodeID, ErrNodeNotFound)
	}

	return nil
}

// UnbindUser libera el usuario del nodo: vuelve a quedar vacante.
func (s *Storage) UnbindUser(ctx context.Context, nodeID, userID string) error {
	const op = "storage.mysql.UnbindUser"

	res, err := s.db.ExecContext(ctx,
		`UPDATE fs_org_nodes SET user_id = NULL WHERE id = ? AND user_id = ?`, nodeID, userID)
	if err != nil {
		return fmt.Errorf("%s: error liberando usuario id=%s del nodo id=%s: %w", op, userID, nodeID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: nodo id=%s usuario id=%s: %w", op, nodeID, userID, ErrUserNotBound)
	}

	return nil
}

// DeleteNode borra un nodo. Si todavía tiene subordinados se rechaza:
// el frontend tiene que reubicarlos o borrarlos primero.
func (s *Storage) DeleteNode(ctx context.Context, nodeID string) error {
	const op = "storage.mysql.DeleteNode"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var children int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM fs_org_nodes WHERE parent_id = ?`, nodeID).Scan(&children)
	if err != nil {
		return fmt.Errorf("%s: error contando subordinados de id=%s: %w", op, nodeID, err)
	}
	if children > 0 {
		return fmt.Errorf("%s: nodo id=%s con %d subordinados: %w", op, nodeID, children, ErrNodeHasChildren)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM fs_node_puestos WHERE node_id = ?`, nodeID)
	if err != nil {
		return fmt.Errorf("%s: error borrando puestos del nodo id=%s: %w", op, nodeID, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM fs_org_nodes WHERE id = ?`, nodeID)
	if err != nil {
		return fmt.Errorf("%s: error borrando nodo id=%s: %w", op, nodeID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: nodo id=%s: %w", op, nodeID, ErrNodeNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

// UpdateNode actualiza cargo y/o área. Campos vacíos no se tocan.
func (s *Storage) UpdateNode(ctx context.Context, nodeID string, req storage.UpdateNodeRequest) error {
	const op = "storage.mysql.UpdateNode"

	var sets []string
	var args []interface{}

	if req.Name != "" {
		sets = append(sets, "cargo = ?")
		args = append(args, req.Name)
	}
	if req.Area != "" {
		sets = append(sets, "area = ?")
		args = append(args, req.Area)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, nodeID)
	query := `UPDATE fs_org_nodes SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: error actualizando nodo id=%s: %w", op, nodeID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: nodo id=%s: %w", op, nodeID, ErrNodeNotFound)
	}

	return nil
}

// GetAreasAdmin trae todas las áreas (activas o no) para el panel admin.
func (s *Storage) GetAreasAdmin(ctx context.Context) ([]*storage.AreaAdmin, error) {
	const op = "storage.mysql.GetAreasAdmin"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, is_active FROM fs_areas ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando áreas admin: %w", op, err)
	}
	defer rows.Close()

	var areas []*storage.AreaAdmin
	for rows.Next() {
		var a storage.AreaAdmin
		if err := rows.Scan(&a.ID, &a.Name, &a.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		areas = append(areas, &a)
	}

	return areas, rows.Err()
}

// SaveAreaAdmin da de alta un área sin nodos (sugerencia para el filtro).
func (s *Storage) SaveAreaAdmin(ctx context.Context, name string) (int64, error) {
	const op = "storage.mysql.SaveAreaAdmin"

	res, err := s.db.ExecContext(ctx, `
        INSERT INTO fs_areas (name, is_active) VALUES (?, TRUE)
        ON DUPLICATE KEY UPDATE is_active = TRUE`, name)
	if err != nil {
		return 0, fmt.Errorf("%s: error guardando área %s: %w", op, name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}
