package controllers

import (
	"errors"

	"learning-platform/models"

	"gorm.io/gorm"
)

// level identifies a node's depth in the content hierarchy, root first.
type level int

const (
	levelCourse level = iota
	levelSection
	levelUnit
	levelChapter
	levelQuestion
)

type notFoundError struct {
	entity string
}

func (e notFoundError) Error() string {
	return e.entity + " not found"
}

func orderedByPosition(tx *gorm.DB) *gorm.DB {
	return tx.Order("position")
}

// preloadTree loads a course's full content tree in creation order. prefix
// is empty when querying courses directly and "Course." when the course
// hangs off another record (enrollments).
func preloadTree(db *gorm.DB, prefix string) *gorm.DB {
	for _, assoc := range []string{
		"Sections",
		"Sections.Units",
		"Sections.Units.Chapters",
		"Sections.Units.Chapters.Questions",
	} {
		db = db.Preload(prefix+assoc, orderedByPosition)
	}
	return db
}

// ownerCourse resolves the Course owning the entity at the given level by
// walking parent references up the hierarchy. A missing link anywhere in the
// chain surfaces as a notFoundError naming the absent entity.
func ownerCourse(db *gorm.DB, lvl level, id string) (*models.Course, error) {
	switch lvl {
	case levelQuestion:
		var question models.Question
		if err := db.First(&question, "id = ?", id).Error; err != nil {
			return nil, wrapNotFound(err, "Question")
		}
		return ownerCourse(db, levelChapter, question.ChapterID)
	case levelChapter:
		var chapter models.Chapter
		if err := db.First(&chapter, "id = ?", id).Error; err != nil {
			return nil, wrapNotFound(err, "Chapter")
		}
		return ownerCourse(db, levelUnit, chapter.UnitID)
	case levelUnit:
		var unit models.Unit
		if err := db.First(&unit, "id = ?", id).Error; err != nil {
			return nil, wrapNotFound(err, "Unit")
		}
		return ownerCourse(db, levelSection, unit.SectionID)
	case levelSection:
		var section models.Section
		if err := db.First(&section, "id = ?", id).Error; err != nil {
			return nil, wrapNotFound(err, "Section")
		}
		return ownerCourse(db, levelCourse, section.CourseID)
	default:
		var course models.Course
		if err := db.First(&course, "id = ?", id).Error; err != nil {
			return nil, wrapNotFound(err, "Course")
		}
		return &course, nil
	}
}

func wrapNotFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundError{entity: entity}
	}
	return err
}

// deleteSubtree removes the entity at the given level together with every
// descendant. Descendant id-sets are collected top-down with one bulk query
// per level, then rows are deleted bottom-up (questions first) so a partial
// walk can never leave a dangling reference from a surviving parent. The
// whole walk runs in a single transaction.
func deleteSubtree(db *gorm.DB, lvl level, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sectionIDs, unitIDs, chapterIDs []string

		if lvl == levelCourse {
			if err := tx.Model(&models.Section{}).Where("course_id = ?", id).Pluck("id", &sectionIDs).Error; err != nil {
				return err
			}
		} else if lvl == levelSection {
			sectionIDs = []string{id}
		}
		if len(sectionIDs) > 0 {
			if err := tx.Model(&models.Unit{}).Where("section_id IN ?", sectionIDs).Pluck("id", &unitIDs).Error; err != nil {
				return err
			}
		}
		if lvl == levelUnit {
			unitIDs = []string{id}
		}
		if len(unitIDs) > 0 {
			if err := tx.Model(&models.Chapter{}).Where("unit_id IN ?", unitIDs).Pluck("id", &chapterIDs).Error; err != nil {
				return err
			}
		}
		if lvl == levelChapter {
			chapterIDs = []string{id}
		}

		if lvl == levelQuestion {
			return tx.Delete(&models.Question{}, "id = ?", id).Error
		}
		if len(chapterIDs) > 0 {
			if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}
		if lvl == levelChapter {
			return tx.Delete(&models.Chapter{}, "id = ?", id).Error
		}
		if len(unitIDs) > 0 {
			if err := tx.Where("unit_id IN ?", unitIDs).Delete(&models.Chapter{}).Error; err != nil {
				return err
			}
		}
		if lvl == levelUnit {
			return tx.Delete(&models.Unit{}, "id = ?", id).Error
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).Delete(&models.Unit{}).Error; err != nil {
				return err
			}
		}
		if lvl == levelSection {
			return tx.Delete(&models.Section{}, "id = ?", id).Error
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.Section{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Course{}, "id = ?", id).Error
	})
}
