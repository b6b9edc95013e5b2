package dto

import "time"

type CreateSecureLinkRequest struct {
	IncidentID        uint   `json:"incident_id" binding:"required"`
	FormType          string `json:"form_type" binding:"required,formtype"`
	FormRecordID      *uint  `json:"form_record_id"`
	RecipientName     string `json:"recipient_name"`
	RecipientContact  string `json:"recipient_contact"`
	DeliveryMethod    string `json:"delivery_method"`
	Expiration        string `json:"expiration"`
	RequireAccessCode bool   `json:"require_access_code"`
}

type VerifySecureLinkRequest struct {
	Token      string `json:"token" binding:"required"`
	AccessCode string `json:"access_code"`
}

// SecureLinkResponse is the full (unlocked) link projection. The raw URL and
// access code are populated only in the creation response and are never
// retrievable again.
type SecureLinkResponse struct {
	ID               uint       `json:"id"`
	IncidentID       *uint      `json:"incident_id,omitempty"`
	FormType         string     `json:"form_type"`
	FormRecordID     *uint      `json:"form_record_id,omitempty"`
	RecipientName    string     `json:"recipient_name,omitempty"`
	RecipientContact string     `json:"recipient_contact,omitempty"`
	DeliveryMethod   string     `json:"delivery_method,omitempty"`
	ExpiresAt        time.Time  `json:"expires_at"`
	CreatedAt        time.Time  `json:"created_at"`
	RevokedAt        *time.Time `json:"revoked_at,omitempty"`
	Locked           bool       `json:"locked"`

	URL        string `json:"url,omitempty"`
	AccessCode string `json:"access_code,omitempty"`
}

// LockedSecureLinkResponse is the minimal projection for access-code-gated
// links before verification: incident and recipient identity are withheld.
type LockedSecureLinkResponse struct {
	FormType  string    `json:"form_type"`
	ExpiresAt time.Time `json:"expires_at"`
	Locked    bool      `json:"locked"`
}
