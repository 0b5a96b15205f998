package services

import (
	"testing"
	"time"

	"github.com/shiftcal/shiftcal-api/internal/models"
	"github.com/shiftcal/shiftcal-api/internal/repository"
	"github.com/shiftcal/shiftcal-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// VersionResolverTestSuite defines the test suite for version resolution
type VersionResolverTestSuite struct {
	suite.Suite
	db            *gorm.DB
	templateRepo  repository.ShiftTemplateRepository
	shiftTypeRepo repository.ShiftTypeRepository
	template      *models.ShiftTemplate
}

// SetupTest runs before each test
func (suite *VersionResolverTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.ShiftTemplate{},
		&models.ShiftTemplateVersion{},
		&models.ShiftType{},
		&models.ShiftTypeSchedule{},
		&models.WorkShift{},
	)
	suite.Require().NoError(err)

	suite.templateRepo = repository.NewShiftTemplateRepository(suite.db)
	suite.shiftTypeRepo = repository.NewShiftTypeRepository(suite.db)

	suite.template = &models.ShiftTemplate{UserID: 1, Name: "Test Template"}
	suite.db.Create(suite.template)
}

// TearDownTest runs after each test
func (suite *VersionResolverTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *VersionResolverTestSuite) createTestVersion(versionNo int, effectiveFrom string) *models.ShiftTemplateVersion {
	date, err := utils.ParseDate(effectiveFrom)
	suite.Require().NoError(err)

	version := &models.ShiftTemplateVersion{
		ShiftTemplateID: suite.template.ID,
		VersionNo:       versionNo,
		EffectiveFrom:   date,
		CreatedBy:       1,
	}
	suite.db.Create(version)
	return version
}

func (suite *VersionResolverTestSuite) date(value string) time.Time {
	date, err := utils.ParseDate(value)
	suite.Require().NoError(err)
	return date
}

// TestResolve_PicksVersionInForce tests that the greatest effective_from not
// exceeding the date wins
func (suite *VersionResolverTestSuite) TestResolve_PicksVersionInForce() {
	suite.createTestVersion(1, "2025-01-01")
	v2 := suite.createTestVersion(2, "2025-02-01")
	suite.createTestVersion(3, "2025-03-01")

	version, err := resolveVersionForDate(suite.templateRepo, suite.template.ID, suite.date("2025-02-15"), false)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), v2.ID, version.ID)
}

// TestResolve_BoundaryDateIsInclusive tests that a version takes effect on
// its own effective date
func (suite *VersionResolverTestSuite) TestResolve_BoundaryDateIsInclusive() {
	suite.createTestVersion(1, "2025-01-01")
	v2 := suite.createTestVersion(2, "2025-02-01")

	version, err := resolveVersionForDate(suite.templateRepo, suite.template.ID, suite.date("2025-02-01"), false)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), v2.ID, version.ID)
}

// TestResolve_FallsBackToLatest tests non-strict resolution of a date
// earlier than every version
func (suite *VersionResolverTestSuite) TestResolve_FallsBackToLatest() {
	suite.createTestVersion(1, "2025-02-01")
	v2 := suite.createTestVersion(2, "2025-03-01")

	version, err := resolveVersionForDate(suite.templateRepo, suite.template.ID, suite.date("2025-01-15"), false)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), v2.ID, version.ID)
}

// TestResolve_StrictRejectsEarlyDate tests strict resolution of a date
// earlier than every version
func (suite *VersionResolverTestSuite) TestResolve_StrictRejectsEarlyDate() {
	suite.createTestVersion(1, "2025-02-01")
	suite.createTestVersion(2, "2025-03-01")

	_, err := resolveVersionForDate(suite.templateRepo, suite.template.ID, suite.date("2025-01-15"), true)

	var noVersion *NoValidVersionError
	suite.Require().ErrorAs(err, &noVersion)
	assert.Equal(suite.T(), "2025-01-15", utils.FormatDate(noVersion.Date))
	assert.Equal(suite.T(), "2025-02-01", utils.FormatDate(noVersion.EarliestVersionDate))
}

// TestResolve_NoVersions tests a template with no versions at all
func (suite *VersionResolverTestSuite) TestResolve_NoVersions() {
	_, err := resolveVersionForDate(suite.templateRepo, suite.template.ID, suite.date("2025-01-15"), false)

	assert.ErrorIs(suite.T(), err, ErrTemplateNotFound)
}

// TestResolveOrCreateSchedule_ReturnsExisting tests that an existing binding
// is reused
func (suite *VersionResolverTestSuite) TestResolveOrCreateSchedule_ReturnsExisting() {
	version := suite.createTestVersion(1, "2025-01-01")
	shiftType := &models.ShiftType{ShiftTemplateID: suite.template.ID, Code: "DAY", Name: "Day", SortOrder: 1}
	suite.db.Create(shiftType)

	start := "09:00"
	end := "17:00"
	existing := &models.ShiftTypeSchedule{
		ShiftTypeID:            shiftType.ID,
		ShiftTemplateVersionID: version.ID,
		StartTime:              &start,
		EndTime:                &end,
		DurationMinutes:        480,
	}
	suite.db.Create(existing)

	schedule, err := resolveOrCreateSchedule(suite.shiftTypeRepo, shiftType.ID, version.ID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), existing.ID, schedule.ID)
	assert.Equal(suite.T(), 480, schedule.DurationMinutes)
}

// TestResolveOrCreateSchedule_MaterializesUntimed tests lazy creation
func (suite *VersionResolverTestSuite) TestResolveOrCreateSchedule_MaterializesUntimed() {
	version := suite.createTestVersion(1, "2025-01-01")
	shiftType := &models.ShiftType{ShiftTemplateID: suite.template.ID, Code: "DAY", Name: "Day", SortOrder: 1}
	suite.db.Create(shiftType)

	schedule, err := resolveOrCreateSchedule(suite.shiftTypeRepo, shiftType.ID, version.ID)

	suite.Require().NoError(err)
	assert.NotZero(suite.T(), schedule.ID)
	assert.Nil(suite.T(), schedule.StartTime)
	assert.Nil(suite.T(), schedule.EndTime)
	assert.False(suite.T(), schedule.Timed())

	// A second resolution reuses the materialized row
	again, err := resolveOrCreateSchedule(suite.shiftTypeRepo, shiftType.ID, version.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), schedule.ID, again.ID)
}

// TestVersionResolverTestSuite runs the test suite
func TestVersionResolverTestSuite(t *testing.T) {
	suite.Run(t, new(VersionResolverTestSuite))
}
