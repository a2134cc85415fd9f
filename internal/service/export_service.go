package service

import (
	"aulaquiz/internal/repository"
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	usersSheet = "Usuarios"

	// UsersFilename is the attachment name of the users export
	UsersFilename = "usuarios.xlsx"
)

var userColumns = []string{"ID", "ID Portal", "Nombre", "Apellidos", "Email", "Rol", "Creado en"}

// ExportService renders admin spreadsheets
type ExportService struct {
	userRepo repository.UserRepo
}

// NewExportService creates a new export service
func NewExportService(userRepo repository.UserRepo) *ExportService {
	return &ExportService{userRepo: userRepo}
}

// WriteUsers writes an xlsx workbook with one row per user
func (s *ExportService) WriteUsers(ctx context.Context, w io.Writer) error {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", usersSheet); err != nil {
		return err
	}
	for i, col := range userColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(usersSheet, cell, col); err != nil {
			return err
		}
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(usersSheet, 1, 1, header); err != nil {
		return err
	}

	for i, u := range users {
		row := []interface{}{u.ID, u.IDPortal, u.Nombre, u.Apellidos, u.Email, string(u.Rol), u.CreadoEn.Format("2006-01-02 15:04")}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(usersSheet, cell, &row); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
