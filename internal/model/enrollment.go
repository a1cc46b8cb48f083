package model

// Enrollment 学生与课程的选课关系。(user_id, course_id) 唯一，
// 重复选课通过 upsert 幂等处理而不是报错。
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID   uint    `gorm:"uniqueIndex:idx_enrollment_user_course;type:bigint unsigned" json:"userId"`
	User     *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CourseID uint    `gorm:"uniqueIndex:idx_enrollment_user_course;type:bigint unsigned" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
