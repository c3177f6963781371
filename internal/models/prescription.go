package models

const (
	PrescriptionStatusActive = "active"
	NotSpecifiedPlaceholder  = "Not specified, inferred by AI"
)

type Prescription struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	OriginalText string `json:"original_text"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
	Duration     string `json:"duration"`
	Purpose      string `json:"purpose"`
	SideEffects  string `json:"side_effects"`
	FollowUp     string `json:"follow_up"`
	UploadDate   string `json:"upload_date"`
	Status       string `json:"status"`
	SourceDigest string `json:"source_digest"`
}
