package model

// AccessGroup is an ordinal authorization tier. Users hold one; equipment
// instances require one. Ranks are totally ordered (guest=0 < student=1 <
// teacher=2 < staff=3 < admin=4 in the stock data set), and the groups
// themselves are data maintained by the management surface.
type AccessGroup struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
	Rank int    `gorm:"not null"`
}
