package models

// DiaryEntry is one day's record of mood, vitals and symptoms. Vitals are
// nullable; BP keeps the "systolic/diastolic" text as submitted.
type DiaryEntry struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	UserID   uint     `gorm:"not null;index" json:"user_id"`
	Date     string   `gorm:"not null" json:"date"`
	Time     string   `json:"time"`
	Mood     string   `json:"mood"`
	Symptoms string   `json:"symptoms"`
	Sugar    *float64 `json:"sugar"`
	BP       string   `gorm:"column:bp" json:"bp"`
	HR       *float64 `gorm:"column:hr" json:"hr"`
	Temp     *float64 `json:"temp"`
	Notes    string   `json:"notes"`
}

func (DiaryEntry) TableName() string {
	return "health_diary"
}
