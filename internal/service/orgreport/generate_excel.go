package orgreport

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"fieldservice-golang/internal/hierarchy"
	"fieldservice-golang/internal/storage"
)

type OrgReportStorage interface {
	GetHierarchyRows(ctx context.Context) ([]storage.HierarchyRow, error)
}

type OrgReportService struct {
	storage OrgReportStorage
}

func NewOrgReportService(storage OrgReportStorage) *OrgReportService {
	return &OrgReportService{storage: storage}
}

// GenerateExcel arma el reporte del organigrama: una fila por nodo, con el
// cargo indentado por nivel. Mismo filtro área/búsqueda que el endpoint.
func (g *OrgReportService) GenerateExcel(ctx context.Context, areaFilter, searchTerm string) ([]byte, error) {
	rows, err := g.storage.GetHierarchyRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch data: %w", err)
	}

	forest := hierarchy.BuildForest(rows)
	if areaFilter != "" || searchTerm != "" {
		forest = hierarchy.Filter(forest, areaFilter, searchTerm)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Organigrama"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	headers := []string{"Cargo", "Nombre", "Área", "Puestos", "Email", "Teléfono", "Estado"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}

	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	rowIdx := 2
	for _, root := range forest {
		rowIdx = writeNode(f, sheet, root, 0, rowIdx)
	}

	// ancho fijo para que el cargo indentado no quede cortado
	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "C", 25)
	f.SetColWidth(sheet, "D", "F", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

func writeNode(f *excelize.File, sheet string, n storage.HierarchyNode, depth, rowIdx int) int {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "    "
	}

	estado := "Ocupado"
	if !n.User {
		estado = "Vacante"
	}

	values := []interface{}{
		indent + n.Cargo,
		n.FullName,
		n.Area,
		joinPuestos(n.Puesto),
		n.Email,
		n.Phone,
		estado,
	}

	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx)
		f.SetCellValue(sheet, cell, v)
	}

	rowIdx++
	for _, c := range n.Subordinados {
		rowIdx = writeNode(f, sheet, c, depth+1, rowIdx)
	}

	return rowIdx
}

func joinPuestos(puestos []string) string {
	out := ""
	for i, p := range puestos {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
