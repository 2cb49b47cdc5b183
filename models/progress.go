package models

import (
	"time"

	"gorm.io/gorm"
)

type Enrollment struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	LearnerID string    `gorm:"type:char(24);uniqueIndex:idx_learner_course;not null" json:"learner"`
	CourseID  string    `gorm:"type:char(24);uniqueIndex:idx_learner_course;not null" json:"course"`
	Course    *Course   `gorm:"foreignKey:CourseID" json:"courseDetails,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Progress tracks a learner's attempts within one chapter. Created lazily on
// the first answer submission for that chapter.
type Progress struct {
	ID          string    `gorm:"type:char(24);primaryKey" json:"id"`
	LearnerID   string    `gorm:"type:char(24);index;not null" json:"learner"`
	CourseID    string    `gorm:"type:char(24);index;not null" json:"course"`
	SectionID   string    `gorm:"type:char(24)" json:"section"`
	UnitID      string    `gorm:"type:char(24)" json:"unit"`
	ChapterID   string    `gorm:"type:char(24);index" json:"chapter"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	Score       float64   `gorm:"default:0" json:"score"`
	Attempts    []Attempt `gorm:"foreignKey:ProgressID" json:"attempts"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type Attempt struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	ProgressID  string    `gorm:"type:char(24);index;not null" json:"-"`
	QuestionID  string    `gorm:"type:char(24);not null" json:"question"`
	Answer      string    `json:"answer"`
	IsCorrect   bool      `json:"isCorrect"`
	AttemptedAt time.Time `json:"attemptedAt"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	return nil
}

func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
