package workflow

import "github.com/hayder75/clinic-core/internal/models"

// Action names a role-gated operation. Routes declare the action they need
// and the capability table decides, server-side only.
type Action string

const (
	ActionRegisterPatient Action = "register_patient"
	ActionOpenVisit       Action = "open_visit"
	ActionRecordVitals    Action = "record_vitals"
	ActionAssignDoctor    Action = "assign_doctor"
	ActionStartVisit      Action = "start_visit"
	ActionCompleteVisit   Action = "complete_visit"
	ActionCancelVisit     Action = "cancel_visit"
	ActionCreateOrder     Action = "create_order"
	ActionSubmitResult    Action = "submit_result"
	ActionPayBilling      Action = "pay_billing"
	ActionManageAccounts  Action = "manage_accounts"
	ActionVerifyRequests  Action = "verify_requests"
	ActionRequestLoan     Action = "request_loan"
	ActionReviewLoan      Action = "review_loan"
	ActionDisburseLoan    Action = "disburse_loan"
	ActionManageCatalog   Action = "manage_catalog"
	ActionManageTemplates Action = "manage_templates"
	ActionViewReports     Action = "view_reports"
)

var capabilities = map[models.Role]map[Action]bool{
	models.RoleNurse: {
		ActionRegisterPatient: true,
		ActionOpenVisit:       true,
		ActionRecordVitals:    true,
		ActionAssignDoctor:    true,
		ActionCancelVisit:     true,
		ActionRequestLoan:     true,
	},
	models.RoleDoctor: {
		ActionStartVisit:    true,
		ActionCreateOrder:   true,
		ActionCompleteVisit: true,
		ActionCancelVisit:   true,
		ActionRequestLoan:   true,
	},
	models.RoleBilling: {
		ActionPayBilling:     true,
		ActionManageAccounts: true,
		ActionDisburseLoan:   true,
		ActionRequestLoan:    true,
	},
	models.RoleLabTech: {
		ActionSubmitResult: true,
		ActionRequestLoan:  true,
	},
	models.RoleRadiologyTech: {
		ActionSubmitResult: true,
		ActionRequestLoan:  true,
	},
	models.RoleDentalTech: {
		ActionSubmitResult: true,
		ActionRequestLoan:  true,
	},
}

// Allowed reports whether role may perform action. Admin may do everything.
func Allowed(role models.Role, action Action) bool {
	if role == models.RoleAdmin {
		return true
	}
	return capabilities[role][action]
}

// ResultRole reports whether role may submit results for the given order
// category. Admin is exempt, technicians are scoped to their own department.
func ResultRole(role models.Role, category models.OrderCategory) bool {
	if role == models.RoleAdmin {
		return true
	}
	switch category {
	case models.OrderCategoryLab:
		return role == models.RoleLabTech
	case models.OrderCategoryRadiology:
		return role == models.RoleRadiologyTech
	case models.OrderCategoryDental:
		return role == models.RoleDentalTech
	}
	return false
}
