package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types accepted by the content API.
const (
	QuestionMCQ        = "mcq"
	QuestionFillBlank  = "fill-in-the-blank"
	QuestionTextBased  = "text-based"
	QuestionAudioBased = "audio-based"
)

var QuestionTypes = []string{QuestionMCQ, QuestionFillBlank, QuestionTextBased, QuestionAudioBased}

type Course struct {
	ID          string    `gorm:"type:char(24);primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	CreatedByID string    `gorm:"type:char(24);index;not null" json:"createdBy"`
	Sections    []Section `gorm:"foreignKey:CourseID" json:"sections"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Section struct {
	ID       string `gorm:"type:char(24);primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	CourseID string `gorm:"type:char(24);index;not null" json:"course"`
	Position int    `json:"-"`
	Units    []Unit `gorm:"foreignKey:SectionID" json:"units"`
}

type Unit struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	SectionID string    `gorm:"type:char(24);index;not null" json:"section"`
	Position  int       `json:"-"`
	Chapters  []Chapter `gorm:"foreignKey:UnitID" json:"chapters"`
}

type Chapter struct {
	ID        string     `gorm:"type:char(24);primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	UnitID    string     `gorm:"type:char(24);index;not null" json:"unit"`
	Position  int        `json:"-"`
	Questions []Question `gorm:"foreignKey:ChapterID" json:"questions"`
}

type Question struct {
	ID            string         `gorm:"type:char(24);primaryKey" json:"id"`
	ChapterID     string         `gorm:"type:char(24);index;not null" json:"chapter"`
	Position      int            `json:"-"`
	Type          string         `gorm:"not null" json:"type"`
	QuestionText  string         `gorm:"not null" json:"questionText"`
	Options       datatypes.JSON `json:"options"` // string array, mcq only
	CorrectAnswer string         `gorm:"not null" json:"correctAnswer"`
	Media         string         `json:"media,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

func (ch *Chapter) BeforeCreate(tx *gorm.DB) error {
	if ch.ID == "" {
		ch.ID = NewID()
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = NewID()
	}
	return nil
}
