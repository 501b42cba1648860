package services

import (
	"testing"
	"time"

	"trainhub/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseModule{},
		&models.CourseModuleLesson{},
		&models.CourseLesson{},
		&models.Batch{},
		&models.Enrollment{},
		&models.LibraryItem{},
		&models.LibraryPurchase{},
		&models.Certificate{},
		&models.CertificateTemplate{},
		&models.CourseProgress{},
		&models.LessonCompletion{},
	)
	require.NoError(t, err)

	return db
}

func createStudent(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	student := models.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  models.RoleStudent,
	}
	require.NoError(t, db.Create(&student).Error)
	return &student
}

func createCourse(t *testing.T, db *gorm.DB, slug string, price float64) *models.Course {
	t.Helper()

	course := models.Course{
		Title:  "Course " + slug,
		Slug:   slug,
		Price:  price,
		Status: "ACTIVE",
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func createBatch(t *testing.T, db *gorm.DB, courseID uint, seatLimit int) *models.Batch {
	t.Helper()

	batch := models.Batch{
		CourseID:    courseID,
		BatchName:   "Morning Batch",
		BatchNumber: "B-01",
		StartDate:   time.Now().AddDate(0, 0, 7),
		EndDate:     time.Now().AddDate(0, 2, 0),
		Mode:        models.BatchModeOnline,
		SeatLimit:   seatLimit,
		Status:      models.BatchStatusUpcoming,
	}
	require.NoError(t, db.Create(&batch).Error)
	return &batch
}

func batchCounter(t *testing.T, db *gorm.DB, batchID uint) int {
	t.Helper()

	var batch models.Batch
	require.NoError(t, db.First(&batch, batchID).Error)
	return batch.EnrolledCount
}
