package services

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"quizportal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

type CreateStudentRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
}

type UpdateStudentRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
}

func (s *StudentService) GetStudents() ([]models.Student, error) {
	var students []models.Student
	err := s.db.Order("full_name ASC").Find(&students).Error
	return students, err
}

// CreateStudent adds a student, updating the stored name if the
// national ID is already on file.
func (s *StudentService) CreateStudent(req *CreateStudentRequest) (*models.Student, error) {
	student := models.Student{
		FullName:   req.FullName,
		NationalID: req.NationalID,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "national_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "updated_at"}),
	}).Create(&student).Error
	if err != nil {
		return nil, err
	}

	var persisted models.Student
	if err := s.db.Where("national_id = ?", req.NationalID).First(&persisted).Error; err != nil {
		return nil, err
	}

	return &persisted, nil
}

// ImportStudents reads a CSV stream with full_name and national_id
// columns and upserts each row. Returns the number of rows imported.
func (s *StudentService) ImportStudents(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, ErrInvalidCSV
	}

	nameCol, idCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.ToLower(col)) {
		case "full_name":
			nameCol = i
		case "national_id":
			idCol = i
		}
	}
	if nameCol < 0 || idCol < 0 {
		return 0, ErrInvalidCSV
	}

	imported := 0
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return ErrInvalidCSV
			}
			if record[nameCol] == "" || record[idCol] == "" {
				continue
			}

			student := models.Student{
				FullName:   record[nameCol],
				NationalID: record[idCol],
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "national_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"full_name", "updated_at"}),
			}).Create(&student).Error; err != nil {
				return err
			}
			imported++
		}
	})
	if err != nil {
		return 0, err
	}

	return imported, nil
}

func (s *StudentService) UpdateStudent(studentID uint, req *UpdateStudentRequest) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	student.FullName = req.FullName
	student.NationalID = req.NationalID

	if err := s.db.Save(&student).Error; err != nil {
		return nil, err
	}

	return &student, nil
}

// DeleteStudent refuses to remove a student who has recorded answers or
// submissions; those rows are the quiz history and must go first.
func (s *StudentService) DeleteStudent(studentID uint) error {
	var student models.Student
	if err := s.db.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	var answerCount int64
	if err := s.db.Model(&models.Answer{}).Where("student_id = ?", studentID).Count(&answerCount).Error; err != nil {
		return err
	}
	var submissionCount int64
	if err := s.db.Model(&models.QuizSubmission{}).Where("student_id = ?", studentID).Count(&submissionCount).Error; err != nil {
		return err
	}
	if answerCount > 0 || submissionCount > 0 {
		return ErrStudentHasRecords
	}

	return s.db.Delete(&models.Student{}, studentID).Error
}
