package authz

import (
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

// EntityKind - вид коллекции, к которой применяется фильтр видимости.
type EntityKind string

const (
	KindEquipment  EntityKind = "equipment"
	KindRequest    EntityKind = "request"
	KindWorkCenter EntityKind = "work_center"
)

// Scope возвращает предикат видимости для роли пользователя. Единственная
// реализация ролевых ограничений: репозитории добавляют результат в WHERE
// через AND вместе с фильтрами вызывающей стороны.
//
// nil означает отсутствие ограничений (ADMIN, MANAGER).
func Scope(user *dto.AuthUser, kind EntityKind) sq.Sqlizer {
	switch user.Role {
	case entities.RoleAdmin, entities.RoleManager:
		return nil
	case entities.RoleUser:
		return userScope(user, kind)
	case entities.RoleTechnician:
		return technicianScope(user, kind)
	}
	// Неизвестная роль не видит ничего.
	return nothing()
}

func userScope(user *dto.AuthUser, kind EntityKind) sq.Sqlizer {
	switch kind {
	case KindEquipment:
		return sq.Eq{"equipment.employee_name": user.Name}
	case KindRequest:
		return sq.Eq{"maintenance_requests.created_by_id": user.ID}
	case KindWorkCenter:
		// Пользователь видит рабочие центры своего закреплённого оборудования.
		return sq.Expr(
			"work_centers.id IN (SELECT work_center_id FROM equipment WHERE employee_name = ? AND work_center_id IS NOT NULL)",
			user.Name,
		)
	}
	return nothing()
}

func technicianScope(user *dto.AuthUser, kind EntityKind) sq.Sqlizer {
	switch kind {
	case KindEquipment:
		if user.TeamID == nil {
			return nothing()
		}
		return sq.Eq{"equipment.team_id": *user.TeamID}
	case KindRequest:
		if user.TeamID == nil {
			return sq.Eq{"maintenance_requests.technician_id": user.ID}
		}
		return sq.Or{
			sq.Eq{"maintenance_requests.team_id": *user.TeamID},
			sq.Eq{"maintenance_requests.technician_id": user.ID},
		}
	case KindWorkCenter:
		if user.TeamID == nil {
			return nothing()
		}
		return sq.Expr(
			"work_centers.id IN (SELECT work_center_id FROM equipment WHERE team_id = ? AND work_center_id IS NOT NULL)",
			*user.TeamID,
		)
	}
	return nothing()
}

func nothing() sq.Sqlizer {
	return sq.Expr("FALSE")
}
