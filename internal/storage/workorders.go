package storage

type WorkOrder struct {
	ID           int64  `json:"id"`
	Numero       string `json:"numero"`
	ClientName   string `json:"client_name"`
	BranchName   string `json:"branch_name"`
	EquipmentTag string `json:"equipment_tag,omitempty"`
	Status       string `json:"status"`
	TechnicianID string `json:"technician_id,omitempty"`
	Technician   string `json:"technician,omitempty"`
	CreatedDate  string `json:"created_date"`
	Description  string `json:"description,omitempty"`
}
