package model

type UserRole string

const (
	Employee   UserRole = "employee"
	Management UserRole = "management"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Username    string   `gorm:"size:100;unique;not null" json:"username"`
	Password    string   `gorm:"size:100;not null" json:"-"`
	DisplayName string   `gorm:"size:100;not null" json:"displayName"`
	Role        UserRole `gorm:"type:enum('employee','management','admin');default:'employee'" json:"role"`
	Department  string   `gorm:"size:100" json:"department"`
	// 总积分 仅由评审流程加分、逾期扫描扣分，其他路径不得修改
	TotalPoints int `gorm:"default:0" json:"totalPoints"`
}

func (User) TableName() string {
	return "users"
}
