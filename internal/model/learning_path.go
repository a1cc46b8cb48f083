package model

// 学习路径状态机：NOT_STARTED -> IN_PROGRESS。
// 没有回退转换；COMPLETED 由外部流程驱动，本服务不会自动流转。
const (
	PathStatusNotStarted = "NOT_STARTED"
	PathStatusInProgress = "IN_PROGRESS"
	PathStatusCompleted  = "COMPLETED"
)

// LearningPath 由学前测评结果 + AI 推荐生成的个性化课程序列
// swagger:model LearningPath
type LearningPath struct {
	UUIDBase
	UserID      uint                 `gorm:"index;type:bigint unsigned" json:"userId"`
	Title       string               `gorm:"size:255;not null" json:"title"`
	Advice      string               `gorm:"type:text" json:"advice"`
	Explanation string               `gorm:"type:text" json:"explanation"`
	Status      string               `gorm:"size:20;default:'NOT_STARTED'" json:"status"`
	Courses     []LearningPathCourse `gorm:"foreignKey:PathID" json:"courses,omitempty"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// swagger:model LearningPathCourse
type LearningPathCourse struct {
	BaseModel
	PathID   string  `gorm:"index;type:varchar(36)" json:"pathId"`
	CourseID uint    `gorm:"type:bigint unsigned" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Position int     `gorm:"default:0" json:"position"`
}

func (LearningPathCourse) TableName() string {
	return "learning_path_courses"
}
