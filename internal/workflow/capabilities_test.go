package workflow

import (
	"testing"

	"github.com/hayder75/clinic-core/internal/models"
)

func TestAdminAllowedEverything(t *testing.T) {
	actions := []Action{
		ActionRegisterPatient, ActionOpenVisit, ActionRecordVitals,
		ActionAssignDoctor, ActionStartVisit, ActionCompleteVisit,
		ActionCancelVisit, ActionCreateOrder, ActionSubmitResult,
		ActionPayBilling, ActionManageAccounts, ActionVerifyRequests,
		ActionRequestLoan, ActionReviewLoan, ActionDisburseLoan,
		ActionManageCatalog, ActionManageTemplates, ActionViewReports,
	}
	for _, a := range actions {
		if !Allowed(models.RoleAdmin, a) {
			t.Errorf("admin must be allowed %s", a)
		}
	}
}

func TestRoleBoundaries(t *testing.T) {
	cases := []struct {
		role   models.Role
		action Action
		want   bool
	}{
		{models.RoleNurse, ActionRecordVitals, true},
		{models.RoleNurse, ActionAssignDoctor, true},
		{models.RoleNurse, ActionPayBilling, false},
		{models.RoleNurse, ActionStartVisit, false},
		{models.RoleDoctor, ActionStartVisit, true},
		{models.RoleDoctor, ActionCreateOrder, true},
		{models.RoleDoctor, ActionRecordVitals, false},
		{models.RoleDoctor, ActionReviewLoan, false},
		{models.RoleBilling, ActionPayBilling, true},
		{models.RoleBilling, ActionManageAccounts, true},
		{models.RoleBilling, ActionDisburseLoan, true},
		{models.RoleBilling, ActionVerifyRequests, false},
		{models.RoleBilling, ActionReviewLoan, false},
		{models.RoleLabTech, ActionSubmitResult, true},
		{models.RoleLabTech, ActionCreateOrder, false},
	}

	for _, c := range cases {
		if got := Allowed(c.role, c.action); got != c.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", c.role, c.action, got, c.want)
		}
	}
}

func TestResultRoleScopedToDepartment(t *testing.T) {
	cases := []struct {
		role     models.Role
		category models.OrderCategory
		want     bool
	}{
		{models.RoleLabTech, models.OrderCategoryLab, true},
		{models.RoleLabTech, models.OrderCategoryRadiology, false},
		{models.RoleRadiologyTech, models.OrderCategoryRadiology, true},
		{models.RoleRadiologyTech, models.OrderCategoryDental, false},
		{models.RoleDentalTech, models.OrderCategoryDental, true},
		{models.RoleDentalTech, models.OrderCategoryLab, false},
		{models.RoleDoctor, models.OrderCategoryLab, false},
		{models.RoleAdmin, models.OrderCategoryLab, true},
	}

	for _, c := range cases {
		if got := ResultRole(c.role, c.category); got != c.want {
			t.Errorf("ResultRole(%s, %s) = %v, want %v", c.role, c.category, got, c.want)
		}
	}
}
