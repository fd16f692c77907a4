package model

// Brand is reference data for products. Rows are created on demand by the
// product workflow (lookup-or-insert keyed on the unique name).
type Brand struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
