package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"

	"github.com/xuri/excelize/v2"
)

const recentRequestsLimit = 5

type DashboardServiceInterface interface {
	AdminDashboard(ctx context.Context) (*dto.AdminDashboardDTO, error)
	TechnicianDashboard(ctx context.Context, user *dto.AuthUser) (*dto.TechnicianDashboardDTO, error)
	UserDashboard(ctx context.Context, user *dto.AuthUser) (*dto.UserDashboardDTO, error)
	// ExportAdminReport собирает сводку администратора в XLSX-файл.
	ExportAdminReport(ctx context.Context) (*bytes.Buffer, string, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
}

func NewDashboardService(dashboardRepo repositories.DashboardRepositoryInterface) DashboardServiceInterface {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

func (s *DashboardService) AdminDashboard(ctx context.Context) (*dto.AdminDashboardDTO, error) {
	var (
		result dto.AdminDashboardDTO
		err    error
	)

	if result.CriticalEquipment, err = s.dashboardRepo.CountCriticalEquipment(ctx); err != nil {
		return nil, err
	}
	if result.OpenRequests, err = s.dashboardRepo.CountOpenRequests(ctx); err != nil {
		return nil, err
	}
	if result.TechnicianUtilization, err = s.dashboardRepo.TechnicianUtilization(ctx); err != nil {
		return nil, err
	}
	if result.EquipmentByStatus, err = s.dashboardRepo.EquipmentByStatus(ctx); err != nil {
		return nil, err
	}
	if result.RequestsByStatus, err = s.dashboardRepo.RequestsByStatus(ctx, nil); err != nil {
		return nil, err
	}
	if result.RequestsByType, err = s.dashboardRepo.RequestsByType(ctx); err != nil {
		return nil, err
	}
	if result.RecentRequests, err = s.dashboardRepo.RecentRequests(ctx, recentRequestsLimit); err != nil {
		return nil, err
	}
	if result.OverduePreventive, err = s.dashboardRepo.CountOverduePreventive(ctx, time.Now()); err != nil {
		return nil, err
	}
	if result.TotalEquipment, err = s.dashboardRepo.CountEquipment(ctx, nil); err != nil {
		return nil, err
	}
	if result.TotalTeams, err = s.dashboardRepo.CountTeams(ctx); err != nil {
		return nil, err
	}
	if result.TotalUsers, err = s.dashboardRepo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if result.TotalWorkCenters, err = s.dashboardRepo.CountWorkCenters(ctx); err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *DashboardService) TechnicianDashboard(ctx context.Context, user *dto.AuthUser) (*dto.TechnicianDashboardDTO, error) {
	if user.Role != entities.RoleTechnician {
		return nil, apperrors.ErrForbidden
	}

	var (
		result dto.TechnicianDashboardDTO
		err    error
	)

	scope := authz.Scope(user, authz.KindRequest)
	if result.MyRequests, err = s.dashboardRepo.RequestsByStatus(ctx, scope); err != nil {
		return nil, err
	}
	if result.AssignedToMe, err = s.dashboardRepo.CountRequestsByTechnician(ctx, user.ID); err != nil {
		return nil, err
	}
	if user.TeamID != nil {
		if result.TeamRequests, err = s.dashboardRepo.CountRequestsByTeam(ctx, *user.TeamID); err != nil {
			return nil, err
		}
	}

	return &result, nil
}

func (s *DashboardService) UserDashboard(ctx context.Context, user *dto.AuthUser) (*dto.UserDashboardDTO, error) {
	var (
		result dto.UserDashboardDTO
		err    error
	)

	if result.MyRequests, err = s.dashboardRepo.RequestsByStatus(ctx, authz.Scope(user, authz.KindRequest)); err != nil {
		return nil, err
	}
	if result.MyEquipment, err = s.dashboardRepo.CountEquipment(ctx, authz.Scope(user, authz.KindEquipment)); err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *DashboardService) ExportAdminReport(ctx context.Context) (*bytes.Buffer, string, error) {
	summary, err := s.AdminDashboard(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Сводка"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Показатель", "Значение"},
		{"Критичное оборудование", summary.CriticalEquipment},
		{"Открытые заявки", summary.OpenRequests},
		{"Просроченные плановые", summary.OverduePreventive},
		{"Загрузка техников, %", summary.TechnicianUtilization.Percentage},
		{"Всего оборудования", summary.TotalEquipment},
		{"Всего команд", summary.TotalTeams},
		{"Всего пользователей", summary.TotalUsers},
		{"Всего рабочих центров", summary.TotalWorkCenters},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	statusStart := len(rows) + 2
	header := []interface{}{"Статус заявки", "Количество"}
	cell, _ := excelize.CoordinatesToCellName(1, statusStart)
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return nil, "", err
	}
	for i, sc := range summary.RequestsByStatus {
		row := []interface{}{sc.Status, sc.Count}
		cell, _ := excelize.CoordinatesToCellName(1, statusStart+1+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("dashboard_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}
