package model

const (
	ContentTypeVideo    = "video"
	ContentTypeDocument = "document"
	ContentTypeQuiz     = "quiz"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CoverURL    string    `gorm:"size:255" json:"coverUrl"`
	TeacherID   uint      `gorm:"index;type:bigint unsigned" json:"teacherId"`
	Teacher     *User     `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	IsPublished bool      `gorm:"default:false" json:"isPublished"`
	Sections    []Section `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Section
type Section struct {
	BaseModel
	CourseID uint          `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title    string        `gorm:"size:255;not null" json:"title"`
	Order    int           `gorm:"default:0" json:"order"`
	Contents []ContentItem `gorm:"foreignKey:SectionID" json:"contents,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}

// ContentItem 章节下的内容项（视频 / 文档 / 测验）
// swagger:model ContentItem
type ContentItem struct {
	BaseModel
	SectionID   uint   `gorm:"index;type:bigint unsigned" json:"sectionId"`
	ContentType string `gorm:"size:20;not null" json:"contentType"` // video, document, quiz
	Title       string `gorm:"size:255;not null" json:"title"`
	URL         string `gorm:"size:512" json:"url,omitempty"` // 视频/文档的外部地址
	Order       int    `gorm:"default:0" json:"order"`
}

func (ContentItem) TableName() string {
	return "content_items"
}
