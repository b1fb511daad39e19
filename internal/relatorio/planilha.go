package relatorio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/KromaEnergia/api-condominio/internal/models"
	"github.com/xuri/excelize/v2"
)

const abaOrdens = "Ordens"

var cabecalhoPlanilha = []string{
	"ID", "Título", "Categoria", "Prioridade", "Status", "Solicitante",
	"Apartamento", "Responsável", "Criada em", "Concluída em",
}

// GerarPlanilha exporta as ordens em XLSX: uma linha de cabeçalho e uma por ordem.
func GerarPlanilha(ordens []models.Ordem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(abaOrdens)
	if err != nil {
		return nil, fmt.Errorf("criar aba: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remover aba padrão: %w", err)
	}

	estilo, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("criar estilo: %w", err)
	}

	cabecalho := make([]interface{}, len(cabecalhoPlanilha))
	for i, c := range cabecalhoPlanilha {
		cabecalho[i] = c
	}
	if err := f.SetSheetRow(abaOrdens, "A1", &cabecalho); err != nil {
		return nil, fmt.Errorf("escrever cabeçalho: %w", err)
	}
	ultima, _ := excelize.CoordinatesToCellName(len(cabecalhoPlanilha), 1)
	if err := f.SetCellStyle(abaOrdens, "A1", ultima, estilo); err != nil {
		return nil, fmt.Errorf("aplicar estilo: %w", err)
	}

	for i, o := range ordens {
		linha := []interface{}{
			o.ID,
			o.Titulo,
			string(o.Categoria),
			string(o.Prioridade),
			string(o.Status),
			o.SolicitanteNome,
			texto(o.Apartamento),
			texto(o.ResponsavelNome),
			o.CriadoEm.Format(time.RFC3339),
			data(o.ConcluidoEm),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(abaOrdens, cell, &linha); err != nil {
			return nil, fmt.Errorf("escrever linha %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(abaOrdens, "A", "A", 38); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(abaOrdens, "B", "J", 20); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("gerar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func texto(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func data(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
