package mysql

import (
	"context"
	"fmt"

	"fieldservice-golang/internal/storage"
)

// GetWorkOrders trae todas las órdenes de trabajo. El backlog (OT sin
// técnico) lo calcula internal/workorders sobre esta lista completa.
func (s *Storage) GetWorkOrders(ctx context.Context) ([]storage.WorkOrder, error) {
	const op = "storage.mysql.GetWorkOrders"

	query := `
        SELECT o.id,
               o.numero,
               c.name,
               b.name,
               COALESCE(e.tag, ''),
               o.status,
               COALESCE(o.technician_id, ''),
               COALESCE(u.full_name, ''),
               DATE_FORMAT(o.created_at, '%Y-%m-%d'),
               COALESCE(o.description, '')
        FROM fs_work_orders o
        JOIN fs_clients c ON c.id = o.client_id
        JOIN fs_branches b ON b.id = o.branch_id
        LEFT JOIN fs_equipment e ON e.id = o.equipment_id
        LEFT JOIN fs_users u ON u.id = o.technician_id
        ORDER BY o.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando órdenes de trabajo: %w", op, err)
	}
	defer rows.Close()

	var orders []storage.WorkOrder
	for rows.Next() {
		var o storage.WorkOrder
		err := rows.Scan(&o.ID, &o.Numero, &o.ClientName, &o.BranchName,
			&o.EquipmentTag, &o.Status, &o.TechnicianID, &o.Technician,
			&o.CreatedDate, &o.Description)
		if err != nil {
			return nil, fmt.Errorf("%s: error escaneando orden de trabajo: %w", op, err)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}
