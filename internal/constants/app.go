package constants

// Application Information
const (
	AppName    = "Incident Auth Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// System roles. The effective role of a user is computed by
// model.EffectiveSystemRole; these are the only two values it produces.
const (
	SystemRoleGlobalAdmin = "global_admin"
	SystemRoleStandard    = "standard"
)

// Session cookie variants. Both names are checked on every authorization
// attempt; each is signed with its own salt so a token for one cookie name
// never validates against the other.
const (
	SessionCookieName       = "incident_session"
	SecureSessionCookieName = "__Secure-incident_session"

	SessionCookieSalt       = "incident-session-host"
	SecureSessionCookieSalt = "incident-session-secure"
)

// Form type discriminators for capability tokens. Secure form links carry
// one of the document types; the admin handoff value is reserved for
// temporary access tokens and never accepted from link-creation input.
const (
	FormTypeBenefitAffidavit     = "benefit_affidavit"
	FormTypeStatusLog            = "status_log"
	FormTypeMedicalAuthorization = "medical_authorization"
	FormTypePrescriptionCard     = "prescription_card"
	FormTypeMileageReimbursement = "mileage_reimbursement"
	FormTypeModifiedDutyPolicy   = "modified_duty_policy"
	FormTypeRefusalOfTreatment   = "refusal_of_treatment"
	FormTypeTemporaryAdminAccess = "temporary_admin_access"
)

// SecureLinkFormTypes lists the form types creatable through the
// secure-form-link API.
var SecureLinkFormTypes = []string{
	FormTypeBenefitAffidavit,
	FormTypeStatusLog,
	FormTypeMedicalAuthorization,
	FormTypePrescriptionCard,
	FormTypeMileageReimbursement,
	FormTypeModifiedDutyPolicy,
	FormTypeRefusalOfTreatment,
}

// IsSecureLinkFormType reports whether ft is a creatable link form type.
func IsSecureLinkFormType(ft string) bool {
	for _, v := range SecureLinkFormTypes {
		if v == ft {
			return true
		}
	}
	return false
}

// Audit actions
const (
	AuditLoginSucceeded     = "login.succeeded"
	AuditLoginFailed        = "login.failed"
	AuditLogout             = "logout"
	AuditTemporaryIssued    = "temporary_access.issued"
	AuditTemporaryRedeemed  = "temporary_access.redeemed"
	AuditSecureLinkIssued   = "secure_link.issued"
	AuditSecureLinkRevoked  = "secure_link.revoked"
	AuditSecureLinkVerified = "secure_link.verified"
	AuditUserCreated        = "user.created"
	AuditUserRoleChanged    = "user.role_changed"
	AuditUserDeleted        = "user.deleted"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
